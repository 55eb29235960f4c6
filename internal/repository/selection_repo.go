package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// SelectionRepository is the selection (member_departments) data-access
// interface.
type SelectionRepository interface {
	Create(ctx context.Context, sel *model.Selection) error
	GetByID(ctx context.Context, id uint) (*model.Selection, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.Selection, error)
	ListByDepartment(ctx context.Context, departmentID uint) ([]model.Selection, error)
	ListPending(ctx context.Context) ([]model.Selection, error)
	ListApproved(ctx context.Context) ([]model.Selection, error)
	// ExistsPair reports whether the member already holds a selection row for
	// the department, in any status.
	ExistsPair(ctx context.Context, memberID, departmentID uint) (bool, error)
	// GetApprovedPair fetches the member's approved row for the department.
	GetApprovedPair(ctx context.Context, memberID, departmentID uint) (*model.Selection, error)
	Update(ctx context.Context, sel *model.Selection) error
	// Replace persists the replacement row and links the original to it in
	// one transaction. The caller mutates the original's workflow fields
	// beforehand.
	Replace(ctx context.Context, original, replacement *model.Selection) error
	// BulkApprove flips every pending (or NULL-status) row to approved in a
	// single UPDATE and returns the number of rows affected.
	BulkApprove(ctx context.Context, at time.Time) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type selectionRepo struct {
	db *gorm.DB
}

// NewSelectionRepo creates a SelectionRepository.
func NewSelectionRepo(db *gorm.DB) SelectionRepository {
	return &selectionRepo{db: db}
}

func (r *selectionRepo) Create(ctx context.Context, sel *model.Selection) error {
	return r.db.WithContext(ctx).Create(sel).Error
}

func (r *selectionRepo) GetByID(ctx context.Context, id uint) (*model.Selection, error) {
	var sel model.Selection
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Department").
		First(&sel, id).Error
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

func (r *selectionRepo) ListByMember(ctx context.Context, memberID uint) ([]model.Selection, error) {
	var sels []model.Selection
	err := r.db.WithContext(ctx).
		Preload("Department.Category").
		Where("member_id = ?", memberID).
		Order("created_at ASC").
		Find(&sels).Error
	return sels, err
}

func (r *selectionRepo) ListByDepartment(ctx context.Context, departmentID uint) ([]model.Selection, error) {
	var sels []model.Selection
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("department_id = ?", departmentID).
		Order("created_at ASC").
		Find(&sels).Error
	return sels, err
}

func (r *selectionRepo) ListPending(ctx context.Context) ([]model.Selection, error) {
	var sels []model.Selection
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Department.Category").
		Where("status IS NULL OR status = ?", model.StatusPending).
		Order("created_at ASC").
		Find(&sels).Error
	return sels, err
}

func (r *selectionRepo) ListApproved(ctx context.Context) ([]model.Selection, error) {
	var sels []model.Selection
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Department").
		Where("status = ?", model.StatusApproved).
		Order("created_at ASC").
		Find(&sels).Error
	return sels, err
}

func (r *selectionRepo) ExistsPair(ctx context.Context, memberID, departmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Selection{}).
		Where("member_id = ? AND department_id = ?", memberID, departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *selectionRepo) GetApprovedPair(ctx context.Context, memberID, departmentID uint) (*model.Selection, error) {
	var sel model.Selection
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND department_id = ? AND status = ?", memberID, departmentID, model.StatusApproved).
		First(&sel).Error
	if err != nil {
		return nil, err
	}
	return &sel, nil
}

func (r *selectionRepo) Update(ctx context.Context, sel *model.Selection) error {
	return r.db.WithContext(ctx).Save(sel).Error
}

func (r *selectionRepo) Replace(ctx context.Context, original, replacement *model.Selection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(replacement).Error; err != nil {
			return err
		}
		original.ReplacedByID = &replacement.ID
		return tx.Save(original).Error
	})
}

func (r *selectionRepo) BulkApprove(ctx context.Context, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Selection{}).
		Where("status IS NULL OR status = ?", model.StatusPending).
		Updates(map[string]interface{}{
			"status":            model.StatusApproved,
			"status_changed_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *selectionRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Selection{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *selectionRepo) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Selection{}).
		Where("status IS NULL OR status = ?", model.StatusPending).
		Count(&count).Error
	return count, err
}
