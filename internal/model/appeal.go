package model

import "time"

// Appeal statuses.
const (
	AppealPending  = "pending"
	AppealApproved = "approved"
	AppealRejected = "rejected"
)

// Appeal is a member's post-publication request to drop the unwanted
// department and/or join the wanted one. Either side may be unset.
type Appeal struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	MemberID             uint       `gorm:"not null;index" json:"member_id"`
	UnwantedDepartmentID *uint      `json:"unwanted_department_id"`
	WantedDepartmentID   *uint      `json:"wanted_department_id"`
	Reason               *string    `gorm:"type:text" json:"reason"`
	Status               string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AdminResponse        *string    `gorm:"type:text" json:"admin_response"`
	CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ResolvedAt           *time.Time `json:"resolved_at"`

	Member             *Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	UnwantedDepartment *Department `gorm:"foreignKey:UnwantedDepartmentID" json:"unwanted_department,omitempty"`
	WantedDepartment   *Department `gorm:"foreignKey:WantedDepartmentID" json:"wanted_department,omitempty"`
}

// TableName sets the table name.
func (Appeal) TableName() string { return "appeals" }
