package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent       UserRole = "STUDENT"
	RoleCoordinator   UserRole = "COORDINATOR"
	RoleOrganization  UserRole = "ORGANIZATION"
	RoleAdministrator UserRole = "ADMINISTRATOR"
)

// AllUserRoles lists every role the platform knows about. Aggregation maps
// are keyed over this slice so that roles with zero users still appear.
var AllUserRoles = []UserRole{
	RoleStudent,
	RoleCoordinator,
	RoleOrganization,
	RoleAdministrator,
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleCoordinator, RoleOrganization, RoleAdministrator:
		return true
	}
	return false
}

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:36"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName     string   `json:"full_name" gorm:"not null;size:100"`
	PasswordHash string   `json:"-" gorm:"not null;size:100"`
	Role         UserRole `json:"role" gorm:"not null;index;size:20"`

	// Profile info
	Bio       *string `json:"bio" gorm:"type:text"`
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	// Status
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Suspended       bool       `json:"suspended" gorm:"default:false;index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
