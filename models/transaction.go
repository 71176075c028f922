package models

import "time"

const (
	StatusPending      = "pending"
	StatusValid        = "valid"
	StatusDoubleDuta   = "double_duta"
	StatusDoubleInput  = "double_input"
	StatusNotInAccount = "not_in_account"
	StatusOther        = "other"
)

// Transaction adalah catatan donasi. Kolom rate adalah salinan (snapshot)
// dari rate Program pada saat transaksi dibuat/diubah; mengubah rate Program
// tidak pernah mengubah transaksi yang sudah ada. ZiswafVolunteerRate dan
// ZiswafBranchRate terisi jika dan hanya jika ZiswafProgramID terisi.
type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	DonorName   string  `gorm:"type:varchar(255);not null" json:"donor_name"`
	ProgramType string  `gorm:"type:varchar(10);not null;index" json:"program_type"` // ZISWAF / QURBAN
	ProgramID   uint    `gorm:"not null;index" json:"program_id"`
	Program     Program `gorm:"foreignKey:ProgramID" json:"program"`

	Amount          float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"amount"`
	QurbanAmount    float64 `gorm:"type:decimal(15,2);not null;default:0.00" json:"qurban_amount"`
	QurbanOwnerName string  `gorm:"type:varchar(255)" json:"qurban_owner_name"`

	ZiswafProgramID *uint    `gorm:"index" json:"ziswaf_program_id,omitempty"`
	ZiswafProgram   *Program `gorm:"foreignKey:ZiswafProgramID" json:"ziswaf_program,omitempty"`

	VolunteerRate       float64  `gorm:"type:decimal(5,2);not null;default:0" json:"volunteer_rate"`
	BranchRate          float64  `gorm:"type:decimal(5,2);not null;default:0" json:"branch_rate"`
	ZiswafVolunteerRate *float64 `gorm:"type:decimal(5,2)" json:"ziswaf_volunteer_rate,omitempty"`
	ZiswafBranchRate    *float64 `gorm:"type:decimal(5,2)" json:"ziswaf_branch_rate,omitempty"`

	BranchID    uint   `gorm:"not null;index" json:"branch_id"`
	Branch      Branch `gorm:"foreignKey:BranchID" json:"branch"`
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	Team        Team   `gorm:"foreignKey:TeamID" json:"team"`
	VolunteerID uint   `gorm:"not null;index" json:"volunteer_id"`
	Volunteer   User   `gorm:"foreignKey:VolunteerID" json:"volunteer"`

	PaymentMethodID uint          `gorm:"not null" json:"payment_method_id"`
	PaymentMethod   PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method"`
	TransactionDate time.Time     `gorm:"not null;index" json:"transaction_date"`
	ProofImage      *string       `gorm:"type:varchar(255)" json:"proof_image,omitempty"`

	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StatusReason string     `gorm:"type:text" json:"status_reason"`
	ValidatedAt  *time.Time `json:"validated_at,omitempty"`
	ValidatedBy  *uint      `json:"validated_by,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsValidationStatus memeriksa status tujuan transisi validasi.
func IsValidationStatus(s string) bool {
	switch s {
	case StatusValid, StatusDoubleDuta, StatusDoubleInput, StatusNotInAccount, StatusOther:
		return true
	}
	return false
}

func IsValidStatus(s string) bool {
	return s == StatusPending || IsValidationStatus(s)
}
