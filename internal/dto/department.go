package dto

// ── department DTOs ──

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name       string `json:"name"`
	CategoryID *uint  `json:"category_id"`
}

// UpdateDepartmentRequest updates a department. CategoryID nil detaches it
// from any category.
type UpdateDepartmentRequest struct {
	Name       string `json:"name"`
	CategoryID *uint  `json:"category_id"`
}

// DepartmentResponse is a single department.
type DepartmentResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName *string `json:"category_name,omitempty"`
}

// GroupedDepartmentsResponse is the public department listing: categories
// with their departments plus the uncategorized bucket.
type GroupedDepartmentsResponse struct {
	Categories    []CategoryResponse   `json:"categories"`
	Uncategorized []DepartmentResponse `json:"uncategorized"`
}
