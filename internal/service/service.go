package service

import (
	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/config"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/jwt"
	"github.com/RevivalFireMinistries/dept-selection-app/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth        AuthService
	Settings    SettingsService
	Category    CategoryService
	Department  DepartmentService
	Member      MemberService
	Selection   SelectionService
	Appeal      AppealService
	Publication PublicationService
	Export      ExportService
	Seed        SeedService
}

// NewService creates the Service aggregate. rdb may be nil when Redis is
// unavailable.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	settings := NewSettingsService(repo, logger)
	return &Service{
		Auth:        NewAuthService(cfg, settings, jwtMgr, rdb, logger),
		Settings:    settings,
		Category:    NewCategoryService(repo, logger),
		Department:  NewDepartmentService(repo, logger),
		Member:      NewMemberService(repo, settings, logger),
		Selection:   NewSelectionService(repo, logger),
		Appeal:      NewAppealService(repo, settings, logger),
		Publication: NewPublicationService(repo, settings, logger),
		Export:      NewExportService(repo, logger),
		Seed:        NewSeedService(repo, settings, logger),
	}
}
