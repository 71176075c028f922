package models

import "time"

const (
	RoleAdmin     = "admin"
	RoleValidator = "validator"
	RoleVolunteer = "volunteer"
	RoleBranch    = "branch"
)

// User mencakup semua role: admin, validator, relawan (volunteer), dan akun
// cabang (branch). Relawan terikat pada satu cabang dan satu tim.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	BranchID  *uint     `gorm:"index" json:"branch_id,omitempty"`
	Branch    *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	TeamID    *uint     `gorm:"index" json:"team_id,omitempty"`
	Team      *Team     `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleValidator, RoleVolunteer, RoleBranch:
		return true
	}
	return false
}
