package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/dto"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── category module errors ──

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrBadMaxSelections     = errors.New("max_selections must be at least 1")
)

// CategoryService manages selection categories and their per-category caps.
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	// Delete removes the category; its departments survive uncategorized
	// (the schema sets category_id NULL on delete).
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if req.MaxSelections < 1 {
		return nil, ErrBadMaxSelections
	}

	cat := &model.Category{Name: name, MaxSelections: req.MaxSelections}
	if err := s.repo.Category.Create(ctx, cat); err != nil {
		s.logger.Error("create category failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("category created", zap.Uint("id", cat.ID), zap.String("name", cat.Name))
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, toCategoryResponse(&categories[i]))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		cat.Name = name
	}
	if req.MaxSelections != 0 {
		if req.MaxSelections < 1 {
			return nil, ErrBadMaxSelections
		}
		cat.MaxSelections = req.MaxSelections
	}

	if err := s.repo.Category.Update(ctx, cat); err != nil {
		s.logger.Error("update category failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Category.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.logger.Error("delete category failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("category deleted", zap.Uint("id", id))
	return nil
}

func toCategoryResponse(cat *model.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:            cat.ID,
		Name:          cat.Name,
		MaxSelections: cat.MaxSelections,
		CreatedAt:     cat.CreatedAt.Format(time.RFC3339),
		Departments:   []dto.DepartmentResponse{},
	}
	for i := range cat.Departments {
		resp.Departments = append(resp.Departments, toDepartmentResponse(&cat.Departments[i]))
	}
	return resp
}
