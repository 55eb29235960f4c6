package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// MemberRepository is the member data-access interface.
type MemberRepository interface {
	// CreateWithSelections persists a member together with their initial
	// selection rows in one transaction.
	CreateWithSelections(ctx context.Context, m *model.Member, departmentIDs []uint) error
	GetByID(ctx context.Context, id uint) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	// ListAll returns bare member rows, no preloads. Used by the normalized
	// phone scan, which cannot be expressed as a WHERE clause.
	ListAll(ctx context.Context) ([]model.Member, error)
	GetByPhone(ctx context.Context, phone string) (*model.Member, error)
	Update(ctx context.Context, m *model.Member) error
	// ReplaceSelections deletes every selection row of the member and
	// inserts fresh ones, all in one transaction.
	ReplaceSelections(ctx context.Context, memberID uint, departmentIDs []uint) error
	Delete(ctx context.Context, id uint) error
	PurgeAll(ctx context.Context) (int64, error)
}

type memberRepo struct {
	db *gorm.DB
}

// NewMemberRepo creates a MemberRepository.
func NewMemberRepo(db *gorm.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) CreateWithSelections(ctx context.Context, m *model.Member, departmentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		for _, deptID := range departmentIDs {
			sel := model.Selection{MemberID: m.ID, DepartmentID: deptID, Source: model.SourceMember}
			if err := tx.Create(&sel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *memberRepo) GetByID(ctx context.Context, id uint) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).
		Preload("Selections.Department.Category").
		First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("Selections.Department.Category").
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

func (r *memberRepo) ListAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Find(&members).Error
	return members, err
}

func (r *memberRepo) GetByPhone(ctx context.Context, phone string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memberRepo) Update(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *memberRepo) ReplaceSelections(ctx context.Context, memberID uint, departmentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", memberID).Delete(&model.Selection{}).Error; err != nil {
			return err
		}
		for _, deptID := range departmentIDs {
			sel := model.Selection{MemberID: memberID, DepartmentID: deptID, Source: model.SourceMember}
			if err := tx.Create(&sel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the member; selections and appeals cascade at the FK level.
func (r *memberRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, id).Error
}

func (r *memberRepo) PurgeAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Member{}).Count(&count).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&model.Selection{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.Member{}).Error
	})
	return count, err
}
