package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// SeedService loads the default configuration and department catalog into an
// empty database.
type SeedService interface {
	// Seed is idempotent: any existing setting row means the database was
	// seeded before, and nothing is written. Returns whether seeding ran.
	Seed(ctx context.Context) (bool, error)
}

type seedService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewSeedService creates a SeedService.
func NewSeedService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) SeedService {
	return &seedService{repo: repo, settings: settings, logger: logger}
}

func (s *seedService) Seed(ctx context.Context) (bool, error) {
	count, err := s.repo.Setting.Count(ctx)
	if err != nil {
		s.logger.Error("count settings failed", zap.Error(err))
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := s.repo.Setting.Upsert(ctx, model.SettingMaxDepartments, "3"); err != nil {
		return false, err
	}
	// The dedicated endpoint stores the admin password hashed.
	if err := s.settings.SetAdminPassword(ctx, defaultAdminPassword); err != nil {
		return false, err
	}

	catalog := []struct {
		category    string
		departments []string
	}{
		{"Music Ministry", []string{"Choir", "Praise Team", "Sound & Media"}},
		{"Children's Ministry", []string{"Sunday School Teachers", "Nursery"}},
		{"Outreach", []string{"Evangelism Team", "Community Service"}},
	}
	for _, entry := range catalog {
		cat := &model.Category{Name: entry.category, MaxSelections: 1}
		if err := s.repo.Category.Create(ctx, cat); err != nil {
			s.logger.Error("seed category failed", zap.String("name", entry.category), zap.Error(err))
			return false, err
		}
		for _, name := range entry.departments {
			dept := &model.Department{Name: name, CategoryID: &cat.ID}
			if err := s.repo.Department.Create(ctx, dept); err != nil {
				s.logger.Error("seed department failed", zap.String("name", name), zap.Error(err))
				return false, err
			}
		}
	}

	for _, name := range []string{"Ushering", "Prayer Team", "Hospitality"} {
		dept := &model.Department{Name: name}
		if err := s.repo.Department.Create(ctx, dept); err != nil {
			s.logger.Error("seed department failed", zap.String("name", name), zap.Error(err))
			return false, err
		}
	}

	s.logger.Info("database seeded")
	return true, nil
}
