package services

import (
	"context"
	"time"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request shapes live with the validation rules
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type UserUpdateRequest = validator.UserUpdateRequest
type ProjectCreateRequest = validator.ProjectCreateRequest
type ProjectUpdateRequest = validator.ProjectUpdateRequest
type ApplicationCreateRequest = validator.ApplicationCreateRequest
type ApplicationDecisionRequest = validator.ApplicationDecisionRequest
type SetupRequest = validator.SetupRequest
type ConfigUpdateRequest = validator.ConfigUpdateRequest

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *models.User `json:"user"`
}

type UserListResponse struct {
	Users []*models.User        `json:"users"`
	Pages repositories.PageInfo `json:"pages"`
}

type ProjectListResponse struct {
	Projects []*models.Project     `json:"projects"`
	Pages    repositories.PageInfo `json:"pages"`
}

type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Pages        repositories.PageInfo `json:"pages"`
}

// DashboardOverview bundles platform totals with a registration trend.
type DashboardOverview struct {
	TotalUsers          int64 `json:"total_users"`
	TotalProjects       int64 `json:"total_projects"`
	TotalApplications   int64 `json:"total_applications"`
	RecentRegistrations int64 `json:"recent_registrations"`
}

type SetupStatusResponse struct {
	SetupComplete bool `json:"setup_complete"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	VerifyEmail(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetWithProfile resolves the user together with exactly the profile
	// matching its role.
	GetWithProfile(ctx context.Context, id string) (*models.UserWithProfile, error)
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	Update(ctx context.Context, id string, req *UserUpdateRequest, actorID string, actorRole models.UserRole) (*models.User, error)
	SetSuspended(ctx context.Context, id string, suspended bool, actorRole models.UserRole) error
	Delete(ctx context.Context, id string, actorRole models.UserRole) error
}

type ProjectService interface {
	Create(ctx context.Context, req *ProjectCreateRequest, organizationID string) (*models.Project, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Update(ctx context.Context, id uint, req *ProjectUpdateRequest, actorID string, actorRole models.UserRole) (*models.Project, error)
	Delete(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
	List(ctx context.Context, filters repositories.ProjectFilters) (*ProjectListResponse, error)

	// Lifecycle
	Submit(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
	AssignCoordinator(ctx context.Context, id uint, coordinatorID string, actorRole models.UserRole) error
	Publish(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
	Start(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
	Complete(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
	Archive(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error
}

type ApplicationService interface {
	Apply(ctx context.Context, req *ApplicationCreateRequest, studentID string) (*models.Application, error)
	GetByID(ctx context.Context, id uint, actorID string, actorRole models.UserRole) (*models.Application, error)
	Withdraw(ctx context.Context, id uint, studentID string) error
	Decide(ctx context.Context, id uint, req *ApplicationDecisionRequest, actorID string, actorRole models.UserRole) (*models.Application, error)
	List(ctx context.Context, filters repositories.ApplicationFilters, actorID string, actorRole models.UserRole) (*ApplicationListResponse, error)
}

// DashboardService exposes aggregation maps for the admin dashboard. Every
// map contains all enum members; categories with no rows report zero.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
	UsersByRole(ctx context.Context) (map[models.UserRole]int64, error)
	ProjectsByStatus(ctx context.Context, organizationID *string) (map[models.ProjectStatus]int64, error)
	ApplicationsByStatus(ctx context.Context, projectID *uint) (map[models.ApplicationStatus]int64, error)
}

// ConfigService manages the platform config singleton and the setup flow.
type ConfigService interface {
	// Get returns the config, or ErrSetupRequired when setup has not run.
	Get(ctx context.Context) (*models.PlatformConfig, error)
	SetupStatus(ctx context.Context) (*SetupStatusResponse, error)
	// Setup performs the first-run configuration, creating the config row
	// and the initial administrator in one transaction.
	Setup(ctx context.Context, req *SetupRequest) (*models.PlatformConfig, error)
	Update(ctx context.Context, req *ConfigUpdateRequest) (*models.PlatformConfig, error)
}

// ReportService renders platform aggregates into downloadable workbooks.
type ReportService interface {
	BuildPlatformReport(ctx context.Context) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Project() ProjectService
	Application() ApplicationService
	Dashboard() DashboardService
	Config() ConfigService
	Report() ReportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// nowFunc is swapped in tests that assert on decision timestamps.
var nowFunc = time.Now
