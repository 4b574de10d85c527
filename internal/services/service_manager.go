package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/InternLink-2025/placement-service/internal/auth"
	"github.com/InternLink-2025/placement-service/internal/cache"
	"github.com/InternLink-2025/placement-service/internal/events"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

// ServiceManagerDeps bundles everything the services need.
type ServiceManagerDeps struct {
	Repo       repositories.Repository
	JWTService *auth.JWTService
	Publisher  *events.Publisher
	Cache      *cache.CacheManager
	Logger     *slog.Logger
	Validator  *validator.Validator
}

// serviceManager wires and owns all service instances.
type serviceManager struct {
	deps ServiceManagerDeps

	authService        AuthService
	userService        UserService
	projectService     ProjectService
	applicationService ApplicationService
	dashboardService   DashboardService
	configService      ConfigService
	reportService      ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize constructs all services and verifies their dependencies.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.deps.Logger == nil {
		sm.deps.Logger = slog.Default()
	}
	if sm.deps.Validator == nil {
		sm.deps.Validator = validator.New()
	}
	if sm.deps.Cache == nil {
		sm.deps.Cache = cache.NewCacheManager(nil)
	}

	sm.deps.Logger.Info("Initializing service manager")

	sm.authService = NewAuthService(sm.deps.Repo, sm.deps.JWTService, sm.deps.Logger, sm.deps.Validator)
	sm.userService = NewUserService(sm.deps.Repo, sm.deps.Logger, sm.deps.Validator)
	sm.projectService = NewProjectService(sm.deps.Repo, sm.deps.Publisher, sm.deps.Logger, sm.deps.Validator)
	sm.applicationService = NewApplicationService(sm.deps.Repo, sm.deps.Publisher, sm.deps.Logger, sm.deps.Validator)
	sm.dashboardService = NewDashboardService(sm.deps.Repo, sm.deps.Cache.Stats, sm.deps.Logger)
	sm.configService = NewConfigService(sm.deps.Repo, sm.deps.Cache.Config, sm.deps.Logger, sm.deps.Validator)
	sm.reportService = NewReportService(sm.dashboardService, sm.deps.Logger)

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.authService
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.userService
}

func (sm *serviceManager) Project() ProjectService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.projectService
}

func (sm *serviceManager) Application() ApplicationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.applicationService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.dashboardService
}

func (sm *serviceManager) Config() ConfigService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.configService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeInitialized()
	return sm.reportService
}

func (sm *serviceManager) mustBeInitialized() {
	if !sm.initialized {
		panic("service manager not initialized")
	}
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down")

	return nil
}
