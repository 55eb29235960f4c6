package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// CategoryRepository is the category data-access interface.
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, cat *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo creates a CategoryRepository.
func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&cat, id).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) ListByIDs(ctx context.Context, ids []uint) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) Update(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete removes the category. Departments are detached, not deleted:
// the FK is ON DELETE SET NULL, so they become uncategorized.
func (r *categoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}
