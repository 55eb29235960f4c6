package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// AppealRepository is the appeal data-access interface.
type AppealRepository interface {
	Create(ctx context.Context, appeal *model.Appeal) error
	GetByID(ctx context.Context, id uint) (*model.Appeal, error)
	// List returns appeals newest first, optionally filtered by status.
	List(ctx context.Context, status string) ([]model.Appeal, error)
	Update(ctx context.Context, appeal *model.Appeal) error
	// Resolve persists the resolved appeal together with the selection rows
	// its approval mutates, all in one transaction.
	Resolve(ctx context.Context, appeal *model.Appeal, updates, creates []*model.Selection) error
}

type appealRepo struct {
	db *gorm.DB
}

// NewAppealRepo creates an AppealRepository.
func NewAppealRepo(db *gorm.DB) AppealRepository {
	return &appealRepo{db: db}
}

func (r *appealRepo) Create(ctx context.Context, appeal *model.Appeal) error {
	return r.db.WithContext(ctx).Create(appeal).Error
}

func (r *appealRepo) GetByID(ctx context.Context, id uint) (*model.Appeal, error) {
	var appeal model.Appeal
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("UnwantedDepartment").
		Preload("WantedDepartment").
		First(&appeal, id).Error
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (r *appealRepo) List(ctx context.Context, status string) ([]model.Appeal, error) {
	q := r.db.WithContext(ctx).
		Preload("Member").
		Preload("UnwantedDepartment").
		Preload("WantedDepartment").
		Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var appeals []model.Appeal
	err := q.Find(&appeals).Error
	return appeals, err
}

func (r *appealRepo) Update(ctx context.Context, appeal *model.Appeal) error {
	return r.db.WithContext(ctx).Save(appeal).Error
}

func (r *appealRepo) Resolve(ctx context.Context, appeal *model.Appeal, updates, creates []*model.Selection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sel := range updates {
			if err := tx.Save(sel).Error; err != nil {
				return err
			}
		}
		for _, sel := range creates {
			if err := tx.Create(sel).Error; err != nil {
				return err
			}
		}
		return tx.Save(appeal).Error
	})
}
