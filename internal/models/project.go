package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectDraft               ProjectStatus = "DRAFT"
	ProjectPendingReview       ProjectStatus = "PENDING_REVIEW"
	ProjectCoordinatorAssigned ProjectStatus = "COORDINATOR_ASSIGNED"
	ProjectPublished           ProjectStatus = "PUBLISHED"
	ProjectInProgress          ProjectStatus = "IN_PROGRESS"
	ProjectCompleted           ProjectStatus = "COMPLETED"
	ProjectArchived            ProjectStatus = "ARCHIVED"
)

// AllProjectStatuses is the complete enum, in lifecycle order. Dashboard
// aggregation maps are keyed over this slice.
var AllProjectStatuses = []ProjectStatus{
	ProjectDraft,
	ProjectPendingReview,
	ProjectCoordinatorAssigned,
	ProjectPublished,
	ProjectInProgress,
	ProjectCompleted,
	ProjectArchived,
}

// projectTransitions encodes the legal status graph. ARCHIVED is reachable
// from every non-terminal state; COMPLETED and ARCHIVED are terminal.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectDraft:               {ProjectPendingReview, ProjectArchived},
	ProjectPendingReview:       {ProjectCoordinatorAssigned, ProjectArchived},
	ProjectCoordinatorAssigned: {ProjectPublished, ProjectArchived},
	ProjectPublished:           {ProjectInProgress, ProjectArchived},
	ProjectInProgress:          {ProjectCompleted, ProjectArchived},
	ProjectCompleted:           {},
	ProjectArchived:            {},
}

// CanTransition reports whether a project may move from one status to another.
func (s ProjectStatus) CanTransition(to ProjectStatus) bool {
	for _, next := range projectTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Editable reports whether a project in this status accepts field updates.
// Archived and completed projects are frozen.
func (s ProjectStatus) Editable() bool {
	return s != ProjectArchived && s != ProjectCompleted
}

func (s ProjectStatus) Valid() bool {
	_, ok := projectTransitions[s]
	return ok
}

type Project struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Title       string        `json:"title" gorm:"not null;size:200;index"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"not null;default:DRAFT;index;size:30"`

	// Ownership
	OrganizationID string  `json:"organization_id" gorm:"not null;index;size:36"`
	CoordinatorID  *string `json:"coordinator_id" gorm:"index;size:36"`

	// Placement details
	RequiredSkills datatypes.JSON `json:"required_skills" gorm:"type:jsonb"` // []string
	Capacity       int            `json:"capacity" gorm:"default:1"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Organization User  `json:"organization" gorm:"foreignKey:OrganizationID"`
	Coordinator  *User `json:"coordinator,omitempty" gorm:"foreignKey:CoordinatorID"`
}

func (Project) TableName() string {
	return "projects"
}
