package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── settings module errors ──

var (
	ErrBadMaxDepartments = errors.New("maxDepartments setting is not a valid integer")
	ErrSettingKeyEmpty   = errors.New("setting key must not be empty")
	ErrPasswordEmpty     = errors.New("password must not be empty")
)

// Hardcoded defaults applied when a key is absent from the store. The app
// must work before anyone has seeded or configured anything, so every read
// path funnels through these accessors instead of touching raw keys.
const (
	defaultMaxDepartments = 3
	defaultAdminPassword  = "admin123"
	defaultSelectionYear  = "2026"
)

// SettingsService is the typed view over the flat key/value store.
type SettingsService interface {
	// raw operator surface
	GetAll(ctx context.Context) (map[string]string, error)
	Put(ctx context.Context, key, value string) error
	SetAdminPassword(ctx context.Context, password string) error

	// typed accessors with defaults-on-absence
	MaxDepartments(ctx context.Context) (int, error)
	AdminPassword(ctx context.Context) (string, error)
	ResultsPublished(ctx context.Context) (bool, error)
	AppealWindowOpen(ctx context.Context) (bool, error)
	SelectionYear(ctx context.Context) (string, error)
	PublishedAt(ctx context.Context) (string, error)
}

type settingsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(repo *repository.Repository, logger *zap.Logger) SettingsService {
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) GetAll(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.Setting.GetAll(ctx)
	if err != nil {
		s.logger.Error("list settings failed", zap.Error(err))
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *settingsService) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrSettingKeyEmpty
	}
	if err := s.repo.Setting.Upsert(ctx, key, value); err != nil {
		s.logger.Error("upsert setting failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// SetAdminPassword stores a bcrypt hash. Seeded or hand-inserted plaintext
// values are still accepted at login for backwards compatibility.
func (s *settingsService) SetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Put(ctx, model.SettingAdminPassword, string(hash))
}

// get reads one key, returning fallback when the key is absent.
func (s *settingsService) get(ctx context.Context, key, fallback string) (string, error) {
	setting, err := s.repo.Setting.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		s.logger.Error("read setting failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return setting.Value, nil
}

// MaxDepartments returns the global selection cap. An absent key falls back
// to the default; a present but unparsable value is a configuration error
// and is surfaced rather than silently defaulted.
func (s *settingsService) MaxDepartments(ctx context.Context) (int, error) {
	raw, err := s.get(ctx, model.SettingMaxDepartments, strconv.Itoa(defaultMaxDepartments))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.logger.Error("maxDepartments setting unparsable", zap.String("value", raw))
		return 0, ErrBadMaxDepartments
	}
	return n, nil
}

func (s *settingsService) AdminPassword(ctx context.Context) (string, error) {
	return s.get(ctx, model.SettingAdminPassword, defaultAdminPassword)
}

func (s *settingsService) ResultsPublished(ctx context.Context) (bool, error) {
	raw, err := s.get(ctx, model.SettingResultsPublished, "false")
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *settingsService) AppealWindowOpen(ctx context.Context) (bool, error) {
	raw, err := s.get(ctx, model.SettingAppealWindowOpen, "false")
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *settingsService) SelectionYear(ctx context.Context) (string, error) {
	return s.get(ctx, model.SettingSelectionYear, defaultSelectionYear)
}

func (s *settingsService) PublishedAt(ctx context.Context) (string, error) {
	return s.get(ctx, model.SettingPublishedAt, "")
}
