package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── appeal module errors ──

var (
	ErrAppealNotFound        = errors.New("appeal not found")
	ErrResultsNotPublished   = errors.New("appeals can only be submitted after results are published")
	ErrAppealWindowClosed    = errors.New("the appeal window is closed")
	ErrAmbiguousPhone        = errors.New("several members share this phone number, member id is required")
	ErrEmptyAppeal           = errors.New("appeal must name a department to remove or to add")
	ErrAppealAlreadyResolved = errors.New("appeal has already been resolved")
	ErrInvalidAppealStatus   = errors.New("appeal resolution must be approved or rejected")
)

// Selection notes written by appeal resolution.
const (
	appealRemovedNote = "Removed via approved appeal"
	appealAddedNote   = "Added via approved appeal"
)

// AppealService handles post-publication appeals and applies approved ones
// onto the selection workflow.
type AppealService interface {
	// Submit files an appeal. Requires published results and an open appeal
	// window. The member is either the given id (phone-verified) or resolved
	// by normalized phone; a shared phone without an explicit id is an error
	// rather than a silent first match.
	Submit(ctx context.Context, req *dto.SubmitAppealRequest) (*dto.AppealResponse, error)
	List(ctx context.Context, status string) ([]dto.AppealResponse, error)
	// Resolve approves or rejects a pending appeal. Approval removes the
	// unwanted department from the member's approved set (no-op when absent)
	// and adds the wanted one (silently skipped when any-status row exists).
	Resolve(ctx context.Context, id uint, req *dto.ResolveAppealRequest) (*dto.AppealResponse, error)
}

type appealService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewAppealService creates an AppealService.
func NewAppealService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) AppealService {
	return &appealService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *appealService) Submit(ctx context.Context, req *dto.SubmitAppealRequest) (*dto.AppealResponse, error) {
	published, err := s.settings.ResultsPublished(ctx)
	if err != nil {
		return nil, err
	}
	if !published {
		return nil, ErrResultsNotPublished
	}
	windowOpen, err := s.settings.AppealWindowOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !windowOpen {
		return nil, ErrAppealWindowClosed
	}

	if req.UnwantedDepartmentID == nil && req.WantedDepartmentID == nil {
		return nil, ErrEmptyAppeal
	}

	member, err := s.resolveMember(ctx, req.MemberID, req.Phone)
	if err != nil {
		return nil, err
	}

	for _, deptID := range []*uint{req.UnwantedDepartmentID, req.WantedDepartmentID} {
		if deptID == nil {
			continue
		}
		if _, err := s.repo.Department.GetByID(ctx, *deptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}

	appeal := &model.Appeal{
		MemberID:             member.ID,
		UnwantedDepartmentID: req.UnwantedDepartmentID,
		WantedDepartmentID:   req.WantedDepartmentID,
		Status:               model.AppealPending,
	}
	if req.Reason != "" {
		reason := req.Reason
		appeal.Reason = &reason
	}

	if err := s.repo.Appeal.Create(ctx, appeal); err != nil {
		s.logger.Error("create appeal failed", zap.Uint("member_id", member.ID), zap.Error(err))
		return nil, err
	}

	appeal.Member = member
	resp := toAppealResponse(appeal)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *appealService) List(ctx context.Context, status string) ([]dto.AppealResponse, error) {
	appeals, err := s.repo.Appeal.List(ctx, status)
	if err != nil {
		s.logger.Error("list appeals failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.AppealResponse, 0, len(appeals))
	for i := range appeals {
		result = append(result, toAppealResponse(&appeals[i]))
	}
	return result, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *appealService) Resolve(ctx context.Context, id uint, req *dto.ResolveAppealRequest) (*dto.AppealResponse, error) {
	if req.Status != model.AppealApproved && req.Status != model.AppealRejected {
		return nil, ErrInvalidAppealStatus
	}

	appeal, err := s.repo.Appeal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppealNotFound
		}
		s.logger.Error("load appeal failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if appeal.Status != model.AppealPending {
		return nil, ErrAppealAlreadyResolved
	}

	var updates, creates []*model.Selection
	if req.Status == model.AppealApproved {
		updates, creates, err = s.approvalMutations(ctx, appeal)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	appeal.Status = req.Status
	appeal.ResolvedAt = &now
	if req.AdminResponse != "" {
		response := req.AdminResponse
		appeal.AdminResponse = &response
	}

	// The selection mutations and the appeal stamp land in one transaction,
	// so a failed resolution never leaves half-applied selections behind.
	if err := s.repo.Appeal.Resolve(ctx, appeal, updates, creates); err != nil {
		s.logger.Error("resolve appeal failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("appeal resolved",
		zap.Uint("id", appeal.ID),
		zap.String("status", appeal.Status),
	)
	resp := toAppealResponse(appeal)
	return &resp, nil
}

// approvalMutations computes the selection rows an approved appeal touches,
// without writing anything; the caller commits them together with the appeal.
// Both sides are tolerant: a missing approved row and an already-linked
// wanted department are no-ops, not errors.
func (s *appealService) approvalMutations(ctx context.Context, appeal *model.Appeal) (updates, creates []*model.Selection, err error) {
	if appeal.UnwantedDepartmentID != nil {
		sel, err := s.repo.Selection.GetApprovedPair(ctx, appeal.MemberID, *appeal.UnwantedDepartmentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		if sel != nil {
			rejected := model.StatusRejected
			note := appealRemovedNote
			sel.Status = &rejected
			sel.AdminNote = &note
			stamp(sel)
			updates = append(updates, sel)
		}
	}

	if appeal.WantedDepartmentID != nil {
		exists, err := s.repo.Selection.ExistsPair(ctx, appeal.MemberID, *appeal.WantedDepartmentID)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			approved := model.StatusApproved
			note := appealAddedNote
			now := time.Now()
			creates = append(creates, &model.Selection{
				MemberID:        appeal.MemberID,
				DepartmentID:    *appeal.WantedDepartmentID,
				Source:          model.SourceAdmin,
				Status:          &approved,
				AdminNote:       &note,
				StatusChangedAt: &now,
			})
		}
	}

	return updates, creates, nil
}

// resolveMember finds the appealing member. With an explicit id the phone
// must verify; without one the normalized phone must match exactly one
// member.
func (s *appealService) resolveMember(ctx context.Context, memberID *uint, phone string) (*model.Member, error) {
	if memberID != nil {
		member, err := s.repo.Member.GetByID(ctx, *memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
		if !PhonesMatch(phone, member.Phone) {
			return nil, ErrPhoneMismatch
		}
		return member, nil
	}

	members, err := s.repo.Member.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var matches []*model.Member
	for i := range members {
		if PhonesMatch(members[i].Phone, phone) {
			matches = append(matches, &members[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, ErrMemberNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, ErrAmbiguousPhone
	}
}

func toAppealResponse(a *model.Appeal) dto.AppealResponse {
	resp := dto.AppealResponse{
		ID:                   a.ID,
		MemberID:             a.MemberID,
		UnwantedDepartmentID: a.UnwantedDepartmentID,
		WantedDepartmentID:   a.WantedDepartmentID,
		Reason:               a.Reason,
		Status:               a.Status,
		AdminResponse:        a.AdminResponse,
		CreatedAt:            a.CreatedAt.Format(time.RFC3339),
	}
	if a.Member != nil {
		resp.MemberName = a.Member.FullName
	}
	if a.UnwantedDepartment != nil {
		name := a.UnwantedDepartment.Name
		resp.UnwantedDepartmentName = &name
	}
	if a.WantedDepartment != nil {
		name := a.WantedDepartment.Name
		resp.WantedDepartmentName = &name
	}
	if a.ResolvedAt != nil {
		resolved := a.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolved
	}
	return resp
}
