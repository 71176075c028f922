package models

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	BranchID  uint      `gorm:"not null;index" json:"branch_id"`
	Branch    Branch    `gorm:"foreignKey:BranchID" json:"branch"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
