package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

var AllApplicationStatuses = []ApplicationStatus{
	ApplicationPending,
	ApplicationAccepted,
	ApplicationRejected,
	ApplicationWithdrawn,
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected, ApplicationWithdrawn:
		return true
	}
	return false
}

// Application links a student to a project. A student has at most one
// application per project (unique index on the pair).
type Application struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	StudentID string            `json:"student_id" gorm:"not null;size:36;uniqueIndex:idx_applications_student_project"`
	ProjectID uint              `json:"project_id" gorm:"not null;uniqueIndex:idx_applications_student_project;index"`
	Status    ApplicationStatus `json:"status" gorm:"not null;default:PENDING;index;size:20"`

	Motivation string     `json:"motivation" gorm:"type:text"`
	DecidedAt  *time.Time `json:"decided_at"`
	DecidedBy  *string    `json:"decided_by" gorm:"size:36"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Student User    `json:"student" gorm:"foreignKey:StudentID"`
	Project Project `json:"project" gorm:"foreignKey:ProjectID"`
}

func (Application) TableName() string {
	return "applications"
}
