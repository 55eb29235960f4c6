package model

import "time"

// Member is a person who submitted the selection form. Phone is free text
// and deliberately not unique: family members may share one number and are
// looked up together.
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone     string    `gorm:"type:varchar(50);not null;index" json:"phone"`
	Email     string    `gorm:"type:varchar(200);not null;default:''" json:"email"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Selections []Selection `gorm:"foreignKey:MemberID" json:"selections,omitempty"`
}

// TableName sets the table name.
func (Member) TableName() string { return "members" }
