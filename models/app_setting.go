package models

import "time"

// AppSetting adalah satu baris pengaturan tampilan aplikasi (judul, tema).
// Diambil lewat GET /settings dan dibawa oleh klien per sesi, bukan state
// global di server.
type AppSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AppName   string    `gorm:"type:varchar(255);not null;default:'Amanah Berbagi'" json:"app_name"`
	Theme     string    `gorm:"type:varchar(30);not null;default:'light'" json:"theme"`
	LogoURL   string    `gorm:"type:varchar(255)" json:"logo_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
