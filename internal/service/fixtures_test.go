package service

import (
	"time"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

// Fixture helpers writing straight into the mock store.

func seedCategory(db *mockDB, name string, maxSelections int) *model.Category {
	db.nextCategoryID++
	cat := &model.Category{
		ID:            db.nextCategoryID,
		Name:          name,
		MaxSelections: maxSelections,
		CreatedAt:     time.Now(),
	}
	db.categories[cat.ID] = cat
	return cat
}

func seedDepartment(db *mockDB, name string, categoryID *uint) *model.Department {
	db.nextDepartmentID++
	dept := &model.Department{
		ID:         db.nextDepartmentID,
		Name:       name,
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
	}
	db.departments[dept.ID] = dept
	return dept
}

func seedMember(db *mockDB, fullName, phone string) *model.Member {
	db.nextMemberID++
	m := &model.Member{
		ID:        db.nextMemberID,
		FullName:  fullName,
		Phone:     phone,
		Address:   "12 Test Lane",
		CreatedAt: time.Now(),
	}
	db.members[m.ID] = m
	return m
}

// seedSelection inserts a selection row. status may be "" for a legacy
// NULL-status row.
func seedSelection(db *mockDB, memberID, departmentID uint, source, status string) *model.Selection {
	db.nextSelectionID++
	sel := &model.Selection{
		ID:           db.nextSelectionID,
		MemberID:     memberID,
		DepartmentID: departmentID,
		Source:       source,
		CreatedAt:    time.Now(),
	}
	if status != "" {
		s := status
		sel.Status = &s
		now := time.Now()
		sel.StatusChangedAt = &now
	}
	db.selections[sel.ID] = sel
	return sel
}

func uintPtr(v uint) *uint { return &v }
