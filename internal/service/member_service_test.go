package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
)

func setupTestMemberService() (MemberService, *mockDB) {
	repo, db := newMockRepository()
	settings := NewSettingsService(repo, zap.NewNop())
	return NewMemberService(repo, settings, zap.NewNop()), db
}

func submitRequest(departmentIDs ...uint) *dto.SubmitSelectionRequest {
	return &dto.SubmitSelectionRequest{
		FullName:            "Tendai Moyo",
		Phone:               "0711234456",
		Email:               "tendai@example.com",
		Address:             "12 Test Lane",
		SelectedDepartments: departmentIDs,
	}
}

func TestMemberService_Submit_Success(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)
	ushering := seedDepartment(db, "Ushering", nil)

	id, err := svc.Submit(context.Background(), submitRequest(choir.ID, ushering.ID))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a member id")
	}

	if len(db.selections) != 2 {
		t.Fatalf("got %d selection rows, want 2", len(db.selections))
	}
	for _, sel := range db.selections {
		if sel.MemberID != id {
			t.Errorf("selection member = %d, want %d", sel.MemberID, id)
		}
		if sel.Source != model.SourceMember {
			t.Errorf("selection source = %q, want member", sel.Source)
		}
		if sel.EffectiveStatus() != model.StatusPending {
			t.Errorf("new selection status = %q, want pending", sel.EffectiveStatus())
		}
	}
}

func TestMemberService_Submit_MissingFields(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)

	req := submitRequest(choir.ID)
	req.Address = ""
	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, ErrMissingRequiredFields) {
		t.Fatalf("err = %v, want ErrMissingRequiredFields", err)
	}
	if len(db.members) != 0 {
		t.Error("no member may be created on validation failure")
	}
}

func TestMemberService_Submit_InvalidPhone(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)

	req := submitRequest(choir.ID)
	req.Phone = "12345"
	_, err := svc.Submit(context.Background(), req)
	if !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("err = %v, want ErrInvalidPhone", err)
	}
}

func TestMemberService_Submit_EmptySelection(t *testing.T) {
	svc, _ := setupTestMemberService()

	_, err := svc.Submit(context.Background(), submitRequest())
	var qerr *QuotaError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QuotaError", err)
	}
	if qerr.Error() != "Please select at least one department" {
		t.Errorf("unexpected message: %q", qerr.Error())
	}
}

func TestMemberService_Submit_DuplicateDepartments(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)

	_, err := svc.Submit(context.Background(), submitRequest(choir.ID, choir.ID))
	if !errors.Is(err, ErrDuplicateDepartments) {
		t.Fatalf("err = %v, want ErrDuplicateDepartments", err)
	}
	if len(db.members) != 0 {
		t.Error("no member may be created for a duplicated proposal")
	}
}

func TestMemberService_Submit_UnknownDepartment(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)

	_, err := svc.Submit(context.Background(), submitRequest(choir.ID, 999))
	if !errors.Is(err, ErrUnknownDepartment) {
		t.Fatalf("err = %v, want ErrUnknownDepartment", err)
	}
}

func TestMemberService_Submit_GlobalQuotaMessage(t *testing.T) {
	svc, db := setupTestMemberService()
	db.settings[model.SettingMaxDepartments] = "2"
	a := seedDepartment(db, "A", nil)
	b := seedDepartment(db, "B", nil)
	c := seedDepartment(db, "C", nil)

	_, err := svc.Submit(context.Background(), submitRequest(a.ID, b.ID, c.ID))
	var qerr *QuotaError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QuotaError", err)
	}
	want := "You can only select up to 2 departments"
	if qerr.Error() != want {
		t.Errorf("message = %q, want %q", qerr.Error(), want)
	}
}

func TestMemberService_Submit_CategoryQuotaMessage(t *testing.T) {
	svc, db := setupTestMemberService()
	music := seedCategory(db, "Music Ministry", 1)
	choir := seedDepartment(db, "Choir", &music.ID)
	praise := seedDepartment(db, "Praise Team", &music.ID)

	_, err := svc.Submit(context.Background(), submitRequest(choir.ID, praise.ID))
	var qerr *QuotaError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QuotaError", err)
	}
	want := "You can only select up to 1 department(s) from 'Music Ministry'"
	if qerr.Error() != want {
		t.Errorf("message = %q, want %q", qerr.Error(), want)
	}
}

// Lowering a category cap makes new submissions fail even though earlier
// ones passed under the old cap.
func TestMemberService_Submit_CapLoweredAfterEarlierSubmission(t *testing.T) {
	svc, db := setupTestMemberService()
	ctx := context.Background()
	music := seedCategory(db, "Music Ministry", 2)
	choir := seedDepartment(db, "Choir", &music.ID)
	praise := seedDepartment(db, "Praise Team", &music.ID)

	if _, err := svc.Submit(ctx, submitRequest(choir.ID, praise.ID)); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	db.categories[music.ID].MaxSelections = 1

	req := submitRequest(choir.ID, praise.ID)
	req.Phone = "0722334455"
	_, err := svc.Submit(ctx, req)
	var qerr *QuotaError
	if !errors.As(err, &qerr) {
		t.Fatalf("err = %v, want *QuotaError after cap lowered", err)
	}
}

func TestMemberService_Update_ReplacesSelections(t *testing.T) {
	svc, db := setupTestMemberService()
	ctx := context.Background()
	choir := seedDepartment(db, "Choir", nil)
	ushering := seedDepartment(db, "Ushering", nil)
	member := seedMember(db, "Tendai Moyo", "0711234456")
	old := seedSelection(db, member.ID, choir.ID, model.SourceMember, model.StatusApproved)

	newName := "Tendai M. Moyo"
	newSet := []uint{ushering.ID}
	err := svc.Update(ctx, member.ID, &dto.UpdateMemberRequest{
		FullName:            &newName,
		SelectedDepartments: &newSet,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if db.members[member.ID].FullName != newName {
		t.Errorf("full name = %q, want %q", db.members[member.ID].FullName, newName)
	}
	if _, ok := db.selections[old.ID]; ok {
		t.Error("old selection row must be deleted")
	}
	if len(db.selections) != 1 {
		t.Fatalf("got %d selection rows, want 1", len(db.selections))
	}
	for _, sel := range db.selections {
		if sel.DepartmentID != ushering.ID {
			t.Errorf("replaced selection department = %d, want %d", sel.DepartmentID, ushering.ID)
		}
		if sel.EffectiveStatus() != model.StatusPending {
			t.Errorf("replaced selection status = %q, want pending", sel.EffectiveStatus())
		}
	}
}

func TestMemberService_Update_InvalidSetRejectedBeforeWrite(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)
	member := seedMember(db, "Tendai Moyo", "0711234456")
	seedSelection(db, member.ID, choir.ID, model.SourceMember, "")

	newName := "Changed"
	badSet := []uint{999}
	err := svc.Update(context.Background(), member.ID, &dto.UpdateMemberRequest{
		FullName:            &newName,
		SelectedDepartments: &badSet,
	})
	if !errors.Is(err, ErrUnknownDepartment) {
		t.Fatalf("err = %v, want ErrUnknownDepartment", err)
	}
	if db.members[member.ID].FullName != "Tendai Moyo" {
		t.Error("member must not be mutated when the new set is invalid")
	}
	if len(db.selections) != 1 {
		t.Error("selections must not be touched when the new set is invalid")
	}
}

func TestMemberService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestMemberService()
	name := "X"
	err := svc.Update(context.Background(), 42, &dto.UpdateMemberRequest{FullName: &name})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestMemberService_Lookup_ExactMatch(t *testing.T) {
	svc, db := setupTestMemberService()
	member := seedMember(db, "Tendai Moyo", "0711234456")

	got, err := svc.Lookup(context.Background(), "0711234456")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.ID != member.ID || got.FullName != "Tendai Moyo" {
		t.Errorf("unexpected lookup result: %+v", got)
	}
}

func TestMemberService_Lookup_NormalizedFallback(t *testing.T) {
	svc, db := setupTestMemberService()
	member := seedMember(db, "Tendai Moyo", "0711 234-456")

	got, err := svc.Lookup(context.Background(), "0711234456")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got.ID != member.ID {
		t.Errorf("lookup id = %d, want %d", got.ID, member.ID)
	}
}

func TestMemberService_Lookup_NotFound(t *testing.T) {
	svc, _ := setupTestMemberService()
	_, err := svc.Lookup(context.Background(), "0799999999")
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestMemberService_Delete(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)
	member := seedMember(db, "Tendai Moyo", "0711234456")
	seedSelection(db, member.ID, choir.ID, model.SourceMember, "")

	if err := svc.Delete(context.Background(), member.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(db.members) != 0 || len(db.selections) != 0 {
		t.Error("member and their selections must be gone")
	}

	if err := svc.Delete(context.Background(), member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestMemberService_PurgeAll(t *testing.T) {
	svc, db := setupTestMemberService()
	choir := seedDepartment(db, "Choir", nil)
	m1 := seedMember(db, "A", "0711111111")
	m2 := seedMember(db, "B", "0722222222")
	seedSelection(db, m1.ID, choir.ID, model.SourceMember, "")
	seedSelection(db, m2.ID, choir.ID, model.SourceMember, "")

	count, err := svc.PurgeAll(context.Background())
	if err != nil {
		t.Fatalf("PurgeAll failed: %v", err)
	}
	if count != 2 {
		t.Errorf("purged = %d, want 2", count)
	}
	if len(db.members) != 0 || len(db.selections) != 0 {
		t.Error("purge must clear members and selections")
	}
	if len(db.departments) != 1 {
		t.Error("purge must not touch departments")
	}
}
