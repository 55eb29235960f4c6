package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/config"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/api/handler"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/api/middleware"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/jwt"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/redis"
)

// Setup builds the Gin engine with every route and middleware wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// public surface: sign-up form, results, appeals, acknowledgement
		v1.POST("/submit", h.Member.Submit)
		v1.GET("/departments", h.Department.ListGrouped)
		v1.GET("/members/lookup", h.Member.Lookup)
		v1.GET("/results", h.Publication.Results)
		v1.POST("/appeals", h.Appeal.Submit)
		v1.POST("/selections/:id/accept", h.Selection.Accept)
		v1.POST("/auth/login", h.Auth.Login)

		// admin surface
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(jwtMgr, rdb))
		{
			admin.POST("/auth/logout", h.Auth.Logout)

			categories := admin.Group("/categories")
			{
				categories.GET("", h.Category.ListCategories)
				categories.GET("/:id", h.Category.GetCategory)
				categories.POST("", h.Category.CreateCategory)
				categories.PUT("/:id", h.Category.UpdateCategory)
				categories.DELETE("/:id", h.Category.DeleteCategory)
			}

			departments := admin.Group("/departments")
			{
				departments.GET("", h.Department.ListDepartments)
				departments.GET("/:id", h.Department.GetDepartment)
				departments.POST("", h.Department.CreateDepartment)
				departments.PUT("/:id", h.Department.UpdateDepartment)
				departments.DELETE("/:id", h.Department.DeleteDepartment)
			}

			members := admin.Group("/members")
			{
				members.GET("", h.Member.ListMembers)
				members.GET("/:id", h.Member.GetMember)
				members.PUT("/:id", h.Member.UpdateMember)
				members.DELETE("/:id", h.Member.DeleteMember)
				members.POST("/purge", h.Member.PurgeMembers)
			}

			selections := admin.Group("/selections")
			{
				selections.GET("/pending", h.Selection.ListPending)
				selections.PUT("/:id/review", h.Selection.Review)
				selections.POST("/:id/replace", h.Selection.Replace)
				selections.POST("/assign", h.Selection.Assign)
				selections.POST("/bulk-approve", h.Selection.BulkApprove)
			}

			appeals := admin.Group("/appeals")
			{
				appeals.GET("", h.Appeal.ListAppeals)
				appeals.PUT("/:id/resolve", h.Appeal.Resolve)
			}

			admin.POST("/publish", h.Publication.Publish)
			admin.POST("/unpublish", h.Publication.Unpublish)
			admin.PUT("/appeal-window", h.Publication.SetAppealWindow)
			admin.GET("/preview", h.Publication.Preview)

			admin.GET("/settings", h.Settings.GetSettings)
			admin.PUT("/settings", h.Settings.UpdateSetting)
			admin.PUT("/settings/admin-password", h.Settings.SetAdminPassword)

			admin.GET("/export", h.Export.Export)
			admin.POST("/seed", h.Seed.Seed)
		}
	}

	return r
}
