package dto

// ── category DTOs ──

// CreateCategoryRequest creates a category.
type CreateCategoryRequest struct {
	Name          string `json:"name"`
	MaxSelections int    `json:"max_selections"`
}

// UpdateCategoryRequest updates a category.
type UpdateCategoryRequest struct {
	Name          string `json:"name"`
	MaxSelections int    `json:"max_selections"`
}

// CategoryResponse is a category with its departments.
type CategoryResponse struct {
	ID            uint                 `json:"id"`
	Name          string               `json:"name"`
	MaxSelections int                  `json:"max_selections"`
	CreatedAt     string               `json:"created_at"`
	Departments   []DepartmentResponse `json:"departments"`
}
