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

// ── member module errors ──

var (
	ErrMemberNotFound        = errors.New("member not found")
	ErrMissingRequiredFields = errors.New("full name, phone, and address are required")
	ErrInvalidPhone          = errors.New("phone number must contain exactly 10 digits")
	ErrUnknownDepartment     = errors.New("one or more selected departments do not exist")
	ErrDuplicateDepartments  = errors.New("the same department is selected more than once")
	ErrPhoneMismatch         = errors.New("phone number does not match our records")
)

// MemberService handles the public submission flow and member admin CRUD.
type MemberService interface {
	// Submit validates the form and creates the member together with their
	// pending selection rows. Validation completes fully before any write.
	Submit(ctx context.Context, req *dto.SubmitSelectionRequest) (uint, error)
	// Update patches member info; when a selection set is supplied it is
	// re-validated against quotas and then replaced wholesale, resetting any
	// workflow state the old rows carried.
	Update(ctx context.Context, id uint, req *dto.UpdateMemberRequest) error
	GetByID(ctx context.Context, id uint) (*dto.MemberResponse, error)
	List(ctx context.Context) ([]dto.MemberResponse, error)
	// Lookup finds one member by phone: exact match first, then a normalized
	// scan, first match wins.
	Lookup(ctx context.Context, phone string) (*dto.MemberLookupResponse, error)
	Delete(ctx context.Context, id uint) error
	PurgeAll(ctx context.Context) (int64, error)
}

type memberService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewMemberService creates a MemberService.
func NewMemberService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *memberService) Submit(ctx context.Context, req *dto.SubmitSelectionRequest) (uint, error) {
	if req.FullName == "" || req.Phone == "" || req.Address == "" {
		return 0, ErrMissingRequiredFields
	}
	if !ValidSubmissionPhone(req.Phone) {
		return 0, ErrInvalidPhone
	}

	if err := s.validateProposal(ctx, req.SelectedDepartments); err != nil {
		return 0, err
	}

	member := &model.Member{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	}
	if err := s.repo.Member.CreateWithSelections(ctx, member, req.SelectedDepartments); err != nil {
		s.logger.Error("create member failed", zap.Error(err))
		return 0, err
	}

	s.logger.Info("selection submitted",
		zap.Uint("member_id", member.ID),
		zap.Int("departments", len(req.SelectedDepartments)),
	)
	return member.ID, nil
}

// ────────────────────── Update ──────────────────────

func (s *memberService) Update(ctx context.Context, id uint, req *dto.UpdateMemberRequest) error {
	member, err := s.getMember(ctx, id)
	if err != nil {
		return err
	}

	// Validate the new selection set before mutating anything.
	if req.SelectedDepartments != nil {
		if err := s.validateProposal(ctx, *req.SelectedDepartments); err != nil {
			return err
		}
	}

	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}
	if req.Address != nil {
		member.Address = *req.Address
	}
	member.Selections = nil // saved separately below

	if err := s.repo.Member.Update(ctx, member); err != nil {
		s.logger.Error("update member failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if req.SelectedDepartments != nil {
		if err := s.repo.Member.ReplaceSelections(ctx, id, *req.SelectedDepartments); err != nil {
			s.logger.Error("replace selections failed", zap.Uint("id", id), zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── reads ──────────────────────

func (s *memberService) GetByID(ctx context.Context, id uint) (*dto.MemberResponse, error) {
	member, err := s.getMember(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *memberService) List(ctx context.Context) ([]dto.MemberResponse, error) {
	members, err := s.repo.Member.List(ctx)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, toMemberResponse(&members[i]))
	}
	return result, nil
}

func (s *memberService) Lookup(ctx context.Context, phone string) (*dto.MemberLookupResponse, error) {
	member, err := s.repo.Member.GetByPhone(ctx, phone)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup member failed", zap.Error(err))
		return nil, err
	}

	if member == nil {
		members, err := s.repo.Member.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		for i := range members {
			if PhonesMatch(members[i].Phone, phone) {
				member = &members[i]
				break
			}
		}
	}

	if member == nil {
		return nil, ErrMemberNotFound
	}

	return &dto.MemberLookupResponse{
		ID:       member.ID,
		FullName: member.FullName,
		Phone:    member.Phone,
	}, nil
}

// ────────────────────── Delete / PurgeAll ──────────────────────

func (s *memberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getMember(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Member.Delete(ctx, id); err != nil {
		s.logger.Error("delete member failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *memberService) PurgeAll(ctx context.Context) (int64, error) {
	count, err := s.repo.Member.PurgeAll(ctx)
	if err != nil {
		s.logger.Error("purge members failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("all member submissions purged", zap.Int64("deleted", count))
	return count, nil
}

// ── helpers ──

func (s *memberService) getMember(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("load member failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return member, nil
}

// validateProposal resolves the proposed departments and runs the quota
// checks. Returns a *QuotaError for quota failures so handlers can surface
// the message verbatim.
func (s *memberService) validateProposal(ctx context.Context, proposedIDs []uint) error {
	if len(proposedIDs) == 0 {
		return ErrNoDepartmentsSelected
	}

	maxDepartments, err := s.settings.MaxDepartments(ctx)
	if err != nil {
		return err
	}

	unique := make(map[uint]struct{}, len(proposedIDs))
	for _, id := range proposedIDs {
		unique[id] = struct{}{}
	}
	// The pair carries a unique constraint; catch repeats here instead of
	// surfacing a constraint violation.
	if len(unique) != len(proposedIDs) {
		return ErrDuplicateDepartments
	}

	departments, err := s.repo.Department.ListByIDs(ctx, proposedIDs)
	if err != nil {
		s.logger.Error("resolve proposed departments failed", zap.Error(err))
		return err
	}
	if len(departments) != len(unique) {
		return ErrUnknownDepartment
	}

	if qerr := ValidateProposal(proposedIDs, departments, maxDepartments); qerr != nil {
		return qerr
	}
	return nil
}

func toMemberResponse(m *model.Member) dto.MemberResponse {
	resp := dto.MemberResponse{
		ID:        m.ID,
		FullName:  m.FullName,
		Phone:     m.Phone,
		Email:     m.Email,
		Address:   m.Address,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	resp.Selections = make([]dto.SelectionResponse, 0, len(m.Selections))
	for i := range m.Selections {
		resp.Selections = append(resp.Selections, toSelectionResponse(&m.Selections[i]))
	}
	return resp
}
