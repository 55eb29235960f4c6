package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── department module errors ──

var (
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDepartmentNameRequired = errors.New("department name is required")
)

// DepartmentService manages departments and serves the public grouped
// listing the sign-up form renders.
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	// ListGrouped returns categories with their departments plus the
	// uncategorized bucket.
	ListGrouped(ctx context.Context) (*dto.GroupedDepartmentsResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	// Delete removes the department and, via the schema cascade, every
	// selection row pointing at it.
	Delete(ctx context.Context, id uint) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService creates a DepartmentService.
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrDepartmentNameRequired
	}
	if req.CategoryID != nil {
		if _, err := s.repo.Category.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	dept := &model.Department{Name: name, CategoryID: req.CategoryID}
	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("create department failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("department created", zap.Uint("id", dept.ID), zap.String("name", dept.Name))
	return s.GetByID(ctx, dept.ID)
}

func (s *departmentService) GetByID(ctx context.Context, id uint) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		result = append(result, toDepartmentResponse(&departments[i]))
	}
	return result, nil
}

func (s *departmentService) ListGrouped(ctx context.Context) (*dto.GroupedDepartmentsResponse, error) {
	categories, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	uncategorized, err := s.repo.Department.ListUncategorized(ctx)
	if err != nil {
		s.logger.Error("list uncategorized departments failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.GroupedDepartmentsResponse{
		Categories:    make([]dto.CategoryResponse, 0, len(categories)),
		Uncategorized: make([]dto.DepartmentResponse, 0, len(uncategorized)),
	}
	for i := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(&categories[i]))
	}
	for i := range uncategorized {
		resp.Uncategorized = append(resp.Uncategorized, toDepartmentResponse(&uncategorized[i]))
	}
	return resp, nil
}

func (s *departmentService) Update(ctx context.Context, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		dept.Name = name
	}
	if req.CategoryID != nil {
		if _, err := s.repo.Category.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}
	dept.CategoryID = req.CategoryID
	dept.Category = nil

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("update department failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *departmentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("department deleted", zap.Uint("id", id))
	return nil
}

func toDepartmentResponse(dept *model.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:         dept.ID,
		Name:       dept.Name,
		CategoryID: dept.CategoryID,
	}
	if dept.Category != nil {
		name := dept.Category.Name
		resp.CategoryName = &name
	}
	return resp
}
