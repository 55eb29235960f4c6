package dto

// ── publication DTOs ──

// SetAppealWindowRequest opens or closes the appeal window.
type SetAppealWindowRequest struct {
	Open bool `json:"open"`
}

// PublishResponse reports the publication state after a publish/unpublish.
type PublishResponse struct {
	Published   bool   `json:"published"`
	PublishedAt string `json:"published_at,omitempty"`
}

// PreviewMember is one member's currently-approved department names.
type PreviewMember struct {
	MemberID            uint     `json:"member_id"`
	FullName            string   `json:"full_name"`
	ApprovedDepartments []string `json:"approved_departments"`
}

// PreviewResponse is the read-only pre-publish sanity check.
type PreviewResponse struct {
	PendingCount  int64           `json:"pending_count"`
	ApprovedCount int64           `json:"approved_count"`
	Members       []PreviewMember `json:"members"`
}

// MemberResults is one member's selections partitioned by workflow state.
type MemberResults struct {
	MemberID              uint                `json:"member_id"`
	FullName              string              `json:"full_name"`
	ApprovedDepartments   []SelectionResponse `json:"approved_departments"`
	PendingDepartments    []SelectionResponse `json:"pending_departments"`
	RejectedDepartments   []SelectionResponse `json:"rejected_departments"`
	AdminAddedDepartments []SelectionResponse `json:"admin_added_departments"`
}

// ResultsResponse is the phone lookup result: every member sharing the
// phone, plus the global publication flags. The core does not redact
// unpublished data; the presentation layer keys off Published.
type ResultsResponse struct {
	Published        bool            `json:"published"`
	AppealWindowOpen bool            `json:"appeal_window_open"`
	Year             string          `json:"year"`
	Members          []MemberResults `json:"members"`
}
