package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// PublicationService controls when the approved selections become visible
// to members and answers the public results lookup.
type PublicationService interface {
	Publish(ctx context.Context) (*dto.PublishResponse, error)
	// Unpublish hides results again without clearing publishedAt, so the
	// original publication time survives a re-publish cycle.
	Unpublish(ctx context.Context) (*dto.PublishResponse, error)
	SetAppealWindow(ctx context.Context, open bool) error
	// Preview summarizes the approved state before publishing. Read-only.
	Preview(ctx context.Context) (*dto.PreviewResponse, error)
	// Results returns every member sharing the normalized phone with their
	// selections partitioned by workflow state. Redaction of unpublished
	// results is the caller's concern; the flags carry enough to decide.
	Results(ctx context.Context, phone string) (*dto.ResultsResponse, error)
}

type publicationService struct {
	repo     *repository.Repository
	settings SettingsService
	logger   *zap.Logger
}

// NewPublicationService creates a PublicationService.
func NewPublicationService(repo *repository.Repository, settings SettingsService, logger *zap.Logger) PublicationService {
	return &publicationService{repo: repo, settings: settings, logger: logger}
}

// ────────────────────── publish / unpublish ──────────────────────

func (s *publicationService) Publish(ctx context.Context) (*dto.PublishResponse, error) {
	now := time.Now().Format(time.RFC3339)
	if err := s.settings.Put(ctx, model.SettingResultsPublished, "true"); err != nil {
		return nil, err
	}
	if err := s.settings.Put(ctx, model.SettingPublishedAt, now); err != nil {
		return nil, err
	}
	s.logger.Info("results published", zap.String("published_at", now))
	return &dto.PublishResponse{Published: true, PublishedAt: now}, nil
}

func (s *publicationService) Unpublish(ctx context.Context) (*dto.PublishResponse, error) {
	if err := s.settings.Put(ctx, model.SettingResultsPublished, "false"); err != nil {
		return nil, err
	}
	publishedAt, err := s.settings.PublishedAt(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("results unpublished")
	return &dto.PublishResponse{Published: false, PublishedAt: publishedAt}, nil
}

func (s *publicationService) SetAppealWindow(ctx context.Context, open bool) error {
	value := "false"
	if open {
		value = "true"
	}
	if err := s.settings.Put(ctx, model.SettingAppealWindowOpen, value); err != nil {
		return err
	}
	s.logger.Info("appeal window set", zap.Bool("open", open))
	return nil
}

// ────────────────────── preview ──────────────────────

func (s *publicationService) Preview(ctx context.Context) (*dto.PreviewResponse, error) {
	pending, err := s.repo.Selection.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	approved, err := s.repo.Selection.CountByStatus(ctx, model.StatusApproved)
	if err != nil {
		return nil, err
	}

	selections, err := s.repo.Selection.ListApproved(ctx)
	if err != nil {
		s.logger.Error("list approved selections failed", zap.Error(err))
		return nil, err
	}

	// Group approved department names by member, keeping first-seen order.
	byMember := make(map[uint]*dto.PreviewMember)
	var order []uint
	for i := range selections {
		sel := &selections[i]
		entry, ok := byMember[sel.MemberID]
		if !ok {
			entry = &dto.PreviewMember{MemberID: sel.MemberID}
			if sel.Member != nil {
				entry.FullName = sel.Member.FullName
			}
			byMember[sel.MemberID] = entry
			order = append(order, sel.MemberID)
		}
		if sel.Department != nil {
			entry.ApprovedDepartments = append(entry.ApprovedDepartments, sel.Department.Name)
		}
	}

	members := make([]dto.PreviewMember, 0, len(order))
	for _, id := range order {
		members = append(members, *byMember[id])
	}

	return &dto.PreviewResponse{
		PendingCount:  pending,
		ApprovedCount: approved,
		Members:       members,
	}, nil
}

// ────────────────────── results lookup ──────────────────────

func (s *publicationService) Results(ctx context.Context, phone string) (*dto.ResultsResponse, error) {
	published, err := s.settings.ResultsPublished(ctx)
	if err != nil {
		return nil, err
	}
	windowOpen, err := s.settings.AppealWindowOpen(ctx)
	if err != nil {
		return nil, err
	}
	year, err := s.settings.SelectionYear(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResultsResponse{
		Published:        published,
		AppealWindowOpen: windowOpen,
		Year:             year,
		Members:          []dto.MemberResults{},
	}

	all, err := s.repo.Member.ListAll(ctx)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, err
	}

	for i := range all {
		member := &all[i]
		if !PhonesMatch(member.Phone, phone) {
			continue
		}
		selections, err := s.repo.Selection.ListByMember(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		resp.Members = append(resp.Members, partitionSelections(member, selections))
	}

	return resp, nil
}

// partitionSelections splits a member's rows by workflow state. Superseded
// rows stay in the rejected bucket so the replacement chain is visible.
func partitionSelections(member *model.Member, selections []model.Selection) dto.MemberResults {
	result := dto.MemberResults{
		MemberID:              member.ID,
		FullName:              member.FullName,
		ApprovedDepartments:   []dto.SelectionResponse{},
		PendingDepartments:    []dto.SelectionResponse{},
		RejectedDepartments:   []dto.SelectionResponse{},
		AdminAddedDepartments: []dto.SelectionResponse{},
	}
	for i := range selections {
		sel := &selections[i]
		view := toSelectionResponse(sel)
		switch sel.EffectiveStatus() {
		case model.StatusApproved:
			if sel.Source == model.SourceAdmin {
				result.AdminAddedDepartments = append(result.AdminAddedDepartments, view)
			} else {
				result.ApprovedDepartments = append(result.ApprovedDepartments, view)
			}
		case model.StatusRejected:
			result.RejectedDepartments = append(result.RejectedDepartments, view)
		default:
			result.PendingDepartments = append(result.PendingDepartments, view)
		}
	}
	return result
}
