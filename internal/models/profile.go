package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role profile tables. Each row extends exactly one User and shares its
// lifecycle: created alongside the user, removed when the user is removed.
// The owning user's Role must match the table the row lives in; that
// invariant is enforced by the repository create path, not by a constraint.

type StudentProfile struct {
	UserID         string         `json:"user_id" gorm:"primaryKey;size:36"`
	StudyProgram   string         `json:"study_program" gorm:"size:200"`
	GraduationYear int            `json:"graduation_year"`
	Skills         datatypes.JSON `json:"skills" gorm:"type:jsonb"` // []string
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

type CoordinatorProfile struct {
	UserID            string    `json:"user_id" gorm:"primaryKey;size:36"`
	Department        string    `json:"department" gorm:"size:200"`
	MaxActiveProjects int       `json:"max_active_projects" gorm:"default:10"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (CoordinatorProfile) TableName() string {
	return "coordinator_profiles"
}

type OrganizationProfile struct {
	UserID       string    `json:"user_id" gorm:"primaryKey;size:36"`
	Verified     bool      `json:"verified" gorm:"default:false"`
	Website      *string   `json:"website" gorm:"size:500"`
	ContactPhone *string   `json:"contact_phone" gorm:"size:50"`
	Industry     string    `json:"industry" gorm:"size:200"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (OrganizationProfile) TableName() string {
	return "organization_profiles"
}

type AdministratorProfile struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:36"`
	Title     string    `json:"title" gorm:"size:200"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdministratorProfile) TableName() string {
	return "administrator_profiles"
}

// Profile is the tagged union produced by role resolution. Kind mirrors the
// user's role discriminator and selects which variant pointer is set; the
// other pointers stay nil. Kind is empty for roles the resolver does not
// recognize, in which case no variant is populated.
type Profile struct {
	Kind          UserRole              `json:"kind,omitempty"`
	Student       *StudentProfile       `json:"student,omitempty"`
	Coordinator   *CoordinatorProfile   `json:"coordinator,omitempty"`
	Organization  *OrganizationProfile  `json:"organization,omitempty"`
	Administrator *AdministratorProfile `json:"administrator,omitempty"`
}

// None reports whether no profile variant is attached.
func (p Profile) None() bool {
	return p.Kind == ""
}

// UserWithProfile bundles a user with the one profile matching its role.
// Consumers narrow on Profile.Kind rather than probing individual pointers.
type UserWithProfile struct {
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}
