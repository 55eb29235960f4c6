package model

import "time"

// Category groups departments and caps how many of them a member may pick.
type Category struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(100);not null"  json:"name"`
	MaxSelections int       `gorm:"not null;default:1"          json:"max_selections"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Departments []Department `gorm:"foreignKey:CategoryID" json:"departments,omitempty"`
}

// TableName sets the table name.
func (Category) TableName() string { return "categories" }
