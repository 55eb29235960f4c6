package dto

// ── member DTOs ──

// SubmitSelectionRequest is the public sign-up form payload. Field presence
// is validated in the service so that each failure carries its own message.
type SubmitSelectionRequest struct {
	FullName            string `json:"full_name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Address             string `json:"address"`
	SelectedDepartments []uint `json:"selected_departments"`
}

// UpdateMemberRequest is a partial patch. SelectedDepartments present (even
// empty) triggers a full re-validation and replacement of the selection set.
type UpdateMemberRequest struct {
	FullName            *string `json:"full_name"`
	Email               *string `json:"email"`
	Address             *string `json:"address"`
	SelectedDepartments *[]uint `json:"selected_departments"`
}

// MemberResponse is a member with their selections.
type MemberResponse struct {
	ID         uint                `json:"id"`
	FullName   string              `json:"full_name"`
	Phone      string              `json:"phone"`
	Email      string              `json:"email"`
	Address    string              `json:"address"`
	CreatedAt  string              `json:"created_at"`
	Selections []SelectionResponse `json:"selections"`
}

// MemberLookupResponse is the minimal identity returned by phone lookup.
type MemberLookupResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
