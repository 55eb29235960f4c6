package dto

// ── selection workflow DTOs ──

// ReviewSelectionRequest sets a selection's status to approved or rejected.
type ReviewSelectionRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}

// ReplaceSelectionRequest substitutes a selection with another department.
type ReplaceSelectionRequest struct {
	DepartmentID uint   `json:"department_id"`
	AdminNote    string `json:"admin_note"`
}

// AssignSelectionRequest creates an admin-assigned approved selection.
type AssignSelectionRequest struct {
	MemberID     uint   `json:"member_id"`
	DepartmentID uint   `json:"department_id"`
	AdminNote    string `json:"admin_note"`
}

// AcceptSelectionRequest is a member acknowledging an admin assignment.
type AcceptSelectionRequest struct {
	Phone string `json:"phone"`
}

// SelectionResponse is one selection row with its workflow state.
type SelectionResponse struct {
	ID              uint    `json:"id"`
	MemberID        uint    `json:"member_id"`
	MemberName      string  `json:"member_name,omitempty"`
	DepartmentID    uint    `json:"department_id"`
	DepartmentName  string  `json:"department_name,omitempty"`
	CategoryName    *string `json:"category_name,omitempty"`
	Source          string  `json:"source"`
	Status          string  `json:"status"`
	ReplacedByID    *uint   `json:"replaced_by_id,omitempty"`
	AdminNote       *string `json:"admin_note,omitempty"`
	CreatedAt       string  `json:"created_at"`
	StatusChangedAt *string `json:"status_changed_at,omitempty"`
}

// BulkApproveResponse reports how many rows a bulk approval touched.
type BulkApproveResponse struct {
	Approved int64 `json:"approved"`
}
