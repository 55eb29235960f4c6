package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── selection module errors ──

var (
	ErrSelectionNotFound    = errors.New("selection not found")
	ErrInvalidReviewStatus  = errors.New("review status must be approved or rejected")
	ErrSelectionInactive    = errors.New("selection is already rejected or replaced")
	ErrSameDepartment       = errors.New("replacement department must differ from the current one")
	ErrDuplicateSelection   = errors.New("member already has a selection for this department")
	ErrNotAdminAssigned     = errors.New("only admin-assigned selections can be accepted")
)

const acceptedMarker = "Acknowledged by member"

// SelectionService is the approval workflow over selection rows.
//
// Lifecycle per row: pending (includes NULL status) → approved | rejected.
// A rejected row may additionally be linked forward via replaced_by_id to a
// fresh admin-assigned row; that link is terminal, the original row never
// re-enters the workflow.
type SelectionService interface {
	ListPending(ctx context.Context) ([]dto.SelectionResponse, error)
	// Review sets status to approved or rejected and stamps the transition.
	Review(ctx context.Context, id uint, req *dto.ReviewSelectionRequest) (*dto.SelectionResponse, error)
	// Replace rejects the row and creates an approved admin-assigned row for
	// the target department, linking the two.
	Replace(ctx context.Context, id uint, req *dto.ReplaceSelectionRequest) (*dto.SelectionResponse, error)
	// Assign creates an approved admin-assigned row for a member.
	Assign(ctx context.Context, req *dto.AssignSelectionRequest) (*dto.SelectionResponse, error)
	// BulkApprove sweeps every pending row to approved. One-time legacy
	// cleanup for rows that predate the approval workflow.
	BulkApprove(ctx context.Context) (int64, error)
	// Accept records a member's acknowledgement of an admin assignment.
	// Audit-only: status is not changed, admin-assigned rows are already
	// approved.
	Accept(ctx context.Context, id uint, phone string) error
}

type selectionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSelectionService creates a SelectionService.
func NewSelectionService(repo *repository.Repository, logger *zap.Logger) SelectionService {
	return &selectionService{repo: repo, logger: logger}
}

// ────────────────────── ListPending ──────────────────────

func (s *selectionService) ListPending(ctx context.Context) ([]dto.SelectionResponse, error) {
	sels, err := s.repo.Selection.ListPending(ctx)
	if err != nil {
		s.logger.Error("list pending selections failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SelectionResponse, 0, len(sels))
	for i := range sels {
		result = append(result, toSelectionResponse(&sels[i]))
	}
	return result, nil
}

// ────────────────────── Review ──────────────────────

func (s *selectionService) Review(ctx context.Context, id uint, req *dto.ReviewSelectionRequest) (*dto.SelectionResponse, error) {
	if req.Status != model.StatusApproved && req.Status != model.StatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	sel, err := s.getSelection(ctx, id)
	if err != nil {
		return nil, err
	}

	// A superseded row is terminal: replaced_by_id only ever annotates a
	// rejected row, so it must not be reviewed back into the workflow.
	if sel.Superseded() {
		return nil, ErrSelectionInactive
	}

	status := req.Status
	sel.Status = &status
	if req.AdminNote != "" {
		note := req.AdminNote
		sel.AdminNote = &note
	}
	stamp(sel)

	if err := s.repo.Selection.Update(ctx, sel); err != nil {
		s.logger.Error("review selection failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSelectionResponse(sel)
	return &resp, nil
}

// ────────────────────── Replace ──────────────────────

func (s *selectionService) Replace(ctx context.Context, id uint, req *dto.ReplaceSelectionRequest) (*dto.SelectionResponse, error) {
	original, err := s.getSelection(ctx, id)
	if err != nil {
		return nil, err
	}

	// A row can be replaced at most once: once rejected or superseded it is
	// no longer the current selection and a second replace is a conflict.
	if !original.Active() {
		return nil, ErrSelectionInactive
	}

	target, err := s.repo.Department.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("load replacement department failed", zap.Uint("id", req.DepartmentID), zap.Error(err))
		return nil, err
	}
	if target.ID == original.DepartmentID {
		return nil, ErrSameDepartment
	}

	exists, err := s.repo.Selection.ExistsPair(ctx, original.MemberID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSelection
	}

	originalDeptName := ""
	if original.Department != nil {
		originalDeptName = original.Department.Name
	}

	rejected := model.StatusRejected
	original.Status = &rejected
	note := req.AdminNote
	if note == "" {
		note = fmt.Sprintf("Replaced with %s", target.Name)
	}
	original.AdminNote = &note
	stamp(original)

	approved := model.StatusApproved
	now := time.Now()
	replacementNote := fmt.Sprintf("Replacement for %s", originalDeptName)
	replacement := &model.Selection{
		MemberID:        original.MemberID,
		DepartmentID:    target.ID,
		Source:          model.SourceAdmin,
		Status:          &approved,
		AdminNote:       &replacementNote,
		StatusChangedAt: &now,
	}

	if err := s.repo.Selection.Replace(ctx, original, replacement); err != nil {
		s.logger.Error("replace selection failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	replacement.Department = target
	replacement.Member = original.Member
	resp := toSelectionResponse(replacement)
	return &resp, nil
}

// ────────────────────── Assign ──────────────────────

func (s *selectionService) Assign(ctx context.Context, req *dto.AssignSelectionRequest) (*dto.SelectionResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	dept, err := s.repo.Department.GetByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Selection.ExistsPair(ctx, member.ID, dept.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSelection
	}

	approved := model.StatusApproved
	now := time.Now()
	sel := &model.Selection{
		MemberID:        member.ID,
		DepartmentID:    dept.ID,
		Source:          model.SourceAdmin,
		Status:          &approved,
		StatusChangedAt: &now,
	}
	if req.AdminNote != "" {
		note := req.AdminNote
		sel.AdminNote = &note
	}

	if err := s.repo.Selection.Create(ctx, sel); err != nil {
		s.logger.Error("assign selection failed",
			zap.Uint("member_id", member.ID),
			zap.Uint("department_id", dept.ID),
			zap.Error(err),
		)
		return nil, err
	}

	sel.Member = member
	sel.Department = dept
	resp := toSelectionResponse(sel)
	return &resp, nil
}

// ────────────────────── BulkApprove ──────────────────────

func (s *selectionService) BulkApprove(ctx context.Context) (int64, error) {
	count, err := s.repo.Selection.BulkApprove(ctx, time.Now())
	if err != nil {
		s.logger.Error("bulk approve failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("bulk approve completed", zap.Int64("approved", count))
	return count, nil
}

// ────────────────────── Accept ──────────────────────

func (s *selectionService) Accept(ctx context.Context, id uint, phone string) error {
	sel, err := s.getSelection(ctx, id)
	if err != nil {
		return err
	}

	if sel.Member == nil || !PhonesMatch(phone, sel.Member.Phone) {
		return ErrPhoneMismatch
	}
	// Self-selected rows have nothing to accept.
	if sel.Source != model.SourceAdmin {
		return ErrNotAdminAssigned
	}

	if sel.AdminNote == nil || *sel.AdminNote == "" {
		note := acceptedMarker
		sel.AdminNote = &note
	} else {
		note := *sel.AdminNote + "; " + acceptedMarker
		sel.AdminNote = &note
	}
	stamp(sel)

	if err := s.repo.Selection.Update(ctx, sel); err != nil {
		s.logger.Error("accept selection failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── helpers ──

func (s *selectionService) getSelection(ctx context.Context, id uint) (*model.Selection, error) {
	sel, err := s.repo.Selection.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSelectionNotFound
		}
		s.logger.Error("load selection failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return sel, nil
}

func stamp(sel *model.Selection) {
	now := time.Now()
	sel.StatusChangedAt = &now
}

func toSelectionResponse(sel *model.Selection) dto.SelectionResponse {
	resp := dto.SelectionResponse{
		ID:           sel.ID,
		MemberID:     sel.MemberID,
		DepartmentID: sel.DepartmentID,
		Source:       sel.Source,
		Status:       sel.EffectiveStatus(),
		ReplacedByID: sel.ReplacedByID,
		AdminNote:    sel.AdminNote,
		CreatedAt:    sel.CreatedAt.Format(time.RFC3339),
	}
	if sel.Member != nil {
		resp.MemberName = sel.Member.FullName
	}
	if sel.Department != nil {
		resp.DepartmentName = sel.Department.Name
		if sel.Department.Category != nil {
			name := sel.Department.Category.Name
			resp.CategoryName = &name
		}
	}
	if sel.StatusChangedAt != nil {
		changed := sel.StatusChangedAt.Format(time.RFC3339)
		resp.StatusChangedAt = &changed
	}
	return resp
}
