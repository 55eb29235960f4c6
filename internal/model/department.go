package model

import "time"

// Department is a unit members sign up for. CategoryID is nullable:
// deleting a category leaves its departments uncategorized.
type Department struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	CategoryID *uint     `json:"category_id"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Department) TableName() string { return "departments" }
