package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/service"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/response"
)

// SeedHandler triggers the one-time default data load.
type SeedHandler struct {
	seedSvc service.SeedService
}

// NewSeedHandler creates a SeedHandler.
func NewSeedHandler(seedSvc service.SeedService) *SeedHandler {
	return &SeedHandler{seedSvc: seedSvc}
}

// Seed
// POST /api/v1/admin/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	seeded, err := h.seedSvc.Seed(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	message := "Database already seeded"
	if seeded {
		message = "Database seeded successfully"
	}
	response.OK(c, gin.H{"seeded": seeded, "message": message})
}
