package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
)

func setupTestDepartmentService() (DepartmentService, *mockDB) {
	repo, db := newMockRepository()
	return NewDepartmentService(repo, zap.NewNop()), db
}

func TestDepartmentService_Create(t *testing.T) {
	svc, db := setupTestDepartmentService()
	music := seedCategory(db, "Music Ministry", 1)

	got, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{
		Name:       "  Choir ",
		CategoryID: &music.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.Name != "Choir" {
		t.Errorf("name = %q, want trimmed 'Choir'", got.Name)
	}
	if got.CategoryName == nil || *got.CategoryName != "Music Ministry" {
		t.Errorf("category name = %v, want Music Ministry", got.CategoryName)
	}
}

func TestDepartmentService_Create_Validation(t *testing.T) {
	svc, _ := setupTestDepartmentService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateDepartmentRequest{Name: "  "}); !errors.Is(err, ErrDepartmentNameRequired) {
		t.Errorf("err = %v, want ErrDepartmentNameRequired", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateDepartmentRequest{Name: "Choir", CategoryID: uintPtr(99)}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestDepartmentService_Update_DetachesCategory(t *testing.T) {
	svc, db := setupTestDepartmentService()
	music := seedCategory(db, "Music Ministry", 1)
	choir := seedDepartment(db, "Choir", &music.ID)

	got, err := svc.Update(context.Background(), choir.ID, &dto.UpdateDepartmentRequest{Name: "Chancel Choir"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.Name != "Chancel Choir" {
		t.Errorf("name = %q", got.Name)
	}
	// CategoryID nil in the request detaches the department.
	if got.CategoryID != nil {
		t.Error("department must be uncategorized after update without category")
	}
}

func TestDepartmentService_Delete_CascadesSelections(t *testing.T) {
	svc, db := setupTestDepartmentService()
	choir := seedDepartment(db, "Choir", nil)
	member := seedMember(db, "Tendai Moyo", "0711234456")
	seedSelection(db, member.ID, choir.ID, "member", "")

	if err := svc.Delete(context.Background(), choir.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(db.selections) != 0 {
		t.Error("selections pointing at the department must be removed")
	}

	if err := svc.Delete(context.Background(), choir.ID); !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("err = %v, want ErrDepartmentNotFound", err)
	}
}

func TestDepartmentService_ListGrouped(t *testing.T) {
	svc, db := setupTestDepartmentService()
	music := seedCategory(db, "Music Ministry", 1)
	seedDepartment(db, "Choir", &music.ID)
	seedDepartment(db, "Praise Team", &music.ID)
	seedDepartment(db, "Ushering", nil)

	got, err := svc.ListGrouped(context.Background())
	if err != nil {
		t.Fatalf("ListGrouped failed: %v", err)
	}
	if len(got.Categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(got.Categories))
	}
	if len(got.Categories[0].Departments) != 2 {
		t.Errorf("got %d music departments, want 2", len(got.Categories[0].Departments))
	}
	if len(got.Uncategorized) != 1 || got.Uncategorized[0].Name != "Ushering" {
		t.Errorf("uncategorized bucket wrong: %+v", got.Uncategorized)
	}
}

func setupTestCategoryService() (CategoryService, *mockDB) {
	repo, db := newMockRepository()
	return NewCategoryService(repo, zap.NewNop()), db
}

func TestCategoryService_Create_Validation(t *testing.T) {
	svc, _ := setupTestCategoryService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{Name: "", MaxSelections: 1}); !errors.Is(err, ErrCategoryNameRequired) {
		t.Errorf("err = %v, want ErrCategoryNameRequired", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateCategoryRequest{Name: "Music", MaxSelections: 0}); !errors.Is(err, ErrBadMaxSelections) {
		t.Errorf("err = %v, want ErrBadMaxSelections", err)
	}

	got, err := svc.Create(ctx, &dto.CreateCategoryRequest{Name: "Music Ministry", MaxSelections: 2})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got.MaxSelections != 2 {
		t.Errorf("max_selections = %d, want 2", got.MaxSelections)
	}
}

func TestCategoryService_Update_Cap(t *testing.T) {
	svc, db := setupTestCategoryService()
	music := seedCategory(db, "Music Ministry", 2)

	got, err := svc.Update(context.Background(), music.ID, &dto.UpdateCategoryRequest{MaxSelections: 1})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.MaxSelections != 1 {
		t.Errorf("max_selections = %d, want 1", got.MaxSelections)
	}
	if got.Name != "Music Ministry" {
		t.Error("name must be unchanged when the request omits it")
	}

	if _, err := svc.Update(context.Background(), music.ID, &dto.UpdateCategoryRequest{MaxSelections: -1}); !errors.Is(err, ErrBadMaxSelections) {
		t.Errorf("err = %v, want ErrBadMaxSelections", err)
	}
}

func TestCategoryService_Delete_LeavesDepartments(t *testing.T) {
	svc, db := setupTestCategoryService()
	music := seedCategory(db, "Music Ministry", 1)
	choir := seedDepartment(db, "Choir", &music.ID)

	if err := svc.Delete(context.Background(), music.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := db.departments[choir.ID]; !ok {
		t.Fatal("department must survive its category")
	}
	if db.departments[choir.ID].CategoryID != nil {
		t.Error("surviving department must be uncategorized")
	}

	if err := svc.Delete(context.Background(), music.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}
