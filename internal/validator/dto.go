package validator

import (
	"time"

	"github.com/InternLink-2025/placement-service/internal/models"
)

// ===== AUTH =====

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	FullName string          `json:"full_name" validate:"required,min=2,max=100"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`

	// Role-specific profile payloads; exactly the one matching Role is read.
	Student      *StudentProfileRequest      `json:"student,omitempty"`
	Coordinator  *CoordinatorProfileRequest  `json:"coordinator,omitempty"`
	Organization *OrganizationProfileRequest `json:"organization,omitempty"`
}

type StudentProfileRequest struct {
	StudyProgram   string   `json:"study_program" validate:"omitempty,max=200"`
	GraduationYear int      `json:"graduation_year" validate:"omitempty,min=2000,max=2100"`
	Skills         []string `json:"skills" validate:"omitempty,dive,min=1,max=100"`
}

type CoordinatorProfileRequest struct {
	Department        string `json:"department" validate:"omitempty,max=200"`
	MaxActiveProjects int    `json:"max_active_projects" validate:"omitempty,min=1,max=100"`
}

type OrganizationProfileRequest struct {
	Website      *string `json:"website" validate:"omitempty,url,max=500"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=50"`
	Industry     string  `json:"industry" validate:"omitempty,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// ===== USERS =====

type UserUpdateRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=500"`

	Student      *StudentProfileRequest      `json:"student,omitempty"`
	Coordinator  *CoordinatorProfileRequest  `json:"coordinator,omitempty"`
	Organization *OrganizationProfileRequest `json:"organization,omitempty"`
}

// ===== PROJECTS =====

type ProjectCreateRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Description    string     `json:"description" validate:"omitempty,max=5000"`
	RequiredSkills []string   `json:"required_skills" validate:"omitempty,dive,min=1,max=100"`
	Capacity       int        `json:"capacity" validate:"omitempty,min=1,max=100"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

type ProjectUpdateRequest struct {
	Title          *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	RequiredSkills []string   `json:"required_skills" validate:"omitempty,dive,min=1,max=100"`
	Capacity       *int       `json:"capacity" validate:"omitempty,min=1,max=100"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

type AssignCoordinatorRequest struct {
	CoordinatorID string `json:"coordinator_id" binding:"required,uuid4"`
}

// ===== APPLICATIONS =====

type ApplicationCreateRequest struct {
	ProjectID  uint   `json:"project_id" validate:"required"`
	Motivation string `json:"motivation" validate:"omitempty,max=5000"`
}

type ApplicationDecisionRequest struct {
	Accept bool `json:"accept"`
}

// ===== PLATFORM CONFIG =====

type ThemePaletteRequest struct {
	Primary    string `json:"primary" validate:"required,hex_color"`
	Secondary  string `json:"secondary" validate:"required,hex_color"`
	Background string `json:"background" validate:"required,hex_color"`
	Surface    string `json:"surface" validate:"required,hex_color"`
	Text       string `json:"text" validate:"required,hex_color"`
}

type SetupRequest struct {
	PlatformName string               `json:"platform_name" validate:"required,min=2,max=200"`
	LogoURL      *string              `json:"logo_url" validate:"omitempty,url,max=500"`
	LightTheme   *ThemePaletteRequest `json:"light_theme" validate:"omitempty"`
	DarkTheme    *ThemePaletteRequest `json:"dark_theme" validate:"omitempty"`

	SMTPHost   string `json:"smtp_host" validate:"omitempty,hostname_rfc1123|ip"`
	SMTPPort   int    `json:"smtp_port" validate:"omitempty,min=1,max=65535"`
	SMTPSender string `json:"smtp_sender" validate:"omitempty,email"`

	RegistrationOpen bool `json:"registration_open"`

	// First administrator account, created with the config row.
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8,max=72"`
	AdminName     string `json:"admin_name" validate:"required,min=2,max=100"`
}

type ConfigUpdateRequest struct {
	PlatformName *string              `json:"platform_name" validate:"omitempty,min=2,max=200"`
	LogoURL      *string              `json:"logo_url" validate:"omitempty,url,max=500"`
	LightTheme   *ThemePaletteRequest `json:"light_theme" validate:"omitempty"`
	DarkTheme    *ThemePaletteRequest `json:"dark_theme" validate:"omitempty"`

	SMTPHost   *string `json:"smtp_host" validate:"omitempty,hostname_rfc1123|ip"`
	SMTPPort   *int    `json:"smtp_port" validate:"omitempty,min=1,max=65535"`
	SMTPSender *string `json:"smtp_sender" validate:"omitempty,email"`

	RegistrationOpen *bool `json:"registration_open"`
}
