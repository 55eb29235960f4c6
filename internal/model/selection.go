package model

import "time"

// Selection sources.
const (
	SourceMember = "member" // self-selected on the public form
	SourceAdmin  = "admin"  // assigned by an admin or an approved appeal
)

// Selection statuses. A NULL status in the database predates the approval
// workflow migration and is read as pending everywhere.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Selection links one member to one department. It is the central mutable
// record of the approval workflow. Stored in member_departments.
type Selection struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	MemberID     uint      `gorm:"not null;uniqueIndex:unique_member_department" json:"member_id"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:unique_member_department" json:"department_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// Approval workflow fields, added by migration 000002 and therefore
	// nullable with defaults.
	Source          string     `gorm:"type:varchar(20);not null;default:'member'" json:"source"`
	Status          *string    `gorm:"type:varchar(20)" json:"status"`
	ReplacedByID    *uint      `json:"replaced_by_id"`
	AdminNote       *string    `gorm:"type:text" json:"admin_note"`
	StatusChangedAt *time.Time `json:"status_changed_at"`

	Member     *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName sets the table name.
func (Selection) TableName() string { return "member_departments" }

// EffectiveStatus maps the nullable column onto the workflow state.
func (s *Selection) EffectiveStatus() string {
	if s.Status == nil || *s.Status == "" {
		return StatusPending
	}
	return *s.Status
}

// Superseded reports whether this row was replaced by another selection.
// A superseded row is terminal: it is rejected and points forward at its
// replacement, never the other way around.
func (s *Selection) Superseded() bool {
	return s.ReplacedByID != nil
}

// Active reports whether the row can still be reviewed or replaced.
func (s *Selection) Active() bool {
	return !s.Superseded() && s.EffectiveStatus() != StatusRejected
}
