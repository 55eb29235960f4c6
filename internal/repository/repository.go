package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	Category   CategoryRepository
	Department DepartmentRepository
	Member     MemberRepository
	Selection  SelectionRepository
	Appeal     AppealRepository
	Setting    SettingRepository
}

// NewRepository wires the GORM implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Category:   NewCategoryRepo(db),
		Department: NewDepartmentRepo(db),
		Member:     NewMemberRepo(db),
		Selection:  NewSelectionRepo(db),
		Appeal:     NewAppealRepo(db),
		Setting:    NewSettingRepo(db),
	}
}
