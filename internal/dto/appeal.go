package dto

// ── appeal DTOs ──

// SubmitAppealRequest is the member-facing appeal form. MemberID is optional;
// without it the member is resolved by normalized phone.
type SubmitAppealRequest struct {
	MemberID             *uint  `json:"member_id"`
	Phone                string `json:"phone"`
	UnwantedDepartmentID *uint  `json:"unwanted_department_id"`
	WantedDepartmentID   *uint  `json:"wanted_department_id"`
	Reason               string `json:"reason"`
}

// ResolveAppealRequest approves or rejects a pending appeal.
type ResolveAppealRequest struct {
	Status        string `json:"status"`
	AdminResponse string `json:"admin_response"`
}

// AppealResponse is an appeal with resolved names.
type AppealResponse struct {
	ID                     uint    `json:"id"`
	MemberID               uint    `json:"member_id"`
	MemberName             string  `json:"member_name,omitempty"`
	UnwantedDepartmentID   *uint   `json:"unwanted_department_id,omitempty"`
	UnwantedDepartmentName *string `json:"unwanted_department_name,omitempty"`
	WantedDepartmentID     *uint   `json:"wanted_department_id,omitempty"`
	WantedDepartmentName   *string `json:"wanted_department_name,omitempty"`
	Reason                 *string `json:"reason,omitempty"`
	Status                 string  `json:"status"`
	AdminResponse          *string `json:"admin_response,omitempty"`
	CreatedAt              string  `json:"created_at"`
	ResolvedAt             *string `json:"resolved_at,omitempty"`
}
