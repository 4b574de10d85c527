package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlatformConfigID is the fixed primary key of the singleton config row.
// At most one row exists; its absence means the setup wizard has not run.
const PlatformConfigID = 1

// ThemePalette holds the CSS color variables for one display mode.
type ThemePalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
}

type PlatformConfig struct {
	ID uint `json:"id" gorm:"primaryKey"`

	// Branding
	PlatformName string         `json:"platform_name" gorm:"not null;size:200"`
	LogoURL      *string        `json:"logo_url" gorm:"size:500"`
	LightTheme   datatypes.JSON `json:"light_theme" gorm:"type:jsonb"` // ThemePalette
	DarkTheme    datatypes.JSON `json:"dark_theme" gorm:"type:jsonb"`  // ThemePalette

	// Mail settings (delivery itself handled elsewhere)
	SMTPHost   string `json:"smtp_host" gorm:"size:255"`
	SMTPPort   int    `json:"smtp_port" gorm:"default:587"`
	SMTPSender string `json:"smtp_sender" gorm:"size:255"`

	// Access
	RegistrationOpen bool `json:"registration_open" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformConfig) TableName() string {
	return "platform_config"
}
