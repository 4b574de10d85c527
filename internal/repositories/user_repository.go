package repositories

import (
	"context"

	"github.com/InternLink-2025/placement-service/internal/models"
)

// UserRepository covers user rows and their role profile tables.
type UserRepository interface {
	// Basic CRUD
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// List and search operations
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)

	// Role resolution: the user joined with exactly the profile table
	// selected by its role discriminator. Two round trips; unrelated
	// profile tables are never loaded.
	GetByIDWithProfile(ctx context.Context, id string) (*models.UserWithProfile, error)

	// Profile sub-records. Create enforces that the owning user's role
	// matches the profile table being written.
	CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	CreateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error
	CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error
	CreateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error
	UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error
	UpdateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error
	UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error
	UpdateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error
}
