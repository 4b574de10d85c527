package repositories

import (
	"context"

	"github.com/InternLink-2025/placement-service/internal/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetByIDWithRelations(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) error
	AssignCoordinator(ctx context.Context, id uint, coordinatorID string) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ProjectFilters) ([]*models.Project, int64, error)

	// CountActiveByCoordinator counts projects a coordinator currently
	// supervises in non-terminal states.
	CountActiveByCoordinator(ctx context.Context, coordinatorID string) (int64, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	GetByStudentAndProject(ctx context.Context, studentID string, projectID uint) (*models.Application, error)
	Update(ctx context.Context, application *models.Application) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ApplicationFilters) ([]*models.Application, int64, error)

	// CountAcceptedByProject counts accepted applications, used to enforce
	// project capacity on decisions.
	CountAcceptedByProject(ctx context.Context, projectID uint) (int64, error)
}

// ConfigRepository manages the singleton platform config row.
type ConfigRepository interface {
	// Get returns the config row, or ErrSetupMissing when it does not exist.
	Get(ctx context.Context) (*models.PlatformConfig, error)
	// Save upserts the singleton row (id is forced to PlatformConfigID).
	Save(ctx context.Context, config *models.PlatformConfig) error
}
