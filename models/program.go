package models

import "time"

const (
	ProgramTypeZiswaf = "ZISWAF"
	ProgramTypeQurban = "QURBAN"
)

// Program adalah program donasi. VolunteerRate/BranchRate adalah persentase
// komisi (0-100) yang disalin ke transaksi saat transaksi dibuat.
type Program struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Type          string    `gorm:"type:varchar(10);not null;index" json:"type"` // ZISWAF / QURBAN
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Code          string    `gorm:"type:varchar(50);unique;not null" json:"code"`
	Description   string    `gorm:"type:text" json:"description"`
	VolunteerRate float64   `gorm:"type:decimal(5,2);not null;default:0" json:"volunteer_rate"`
	BranchRate    float64   `gorm:"type:decimal(5,2);not null;default:0" json:"branch_rate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func IsValidProgramType(t string) bool {
	return t == ProgramTypeZiswaf || t == ProgramTypeQurban
}
