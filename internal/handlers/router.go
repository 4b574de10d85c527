package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/auth"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	userHandler        *UserHandler
	projectHandler     *ProjectHandler
	applicationHandler *ApplicationHandler
	dashboardHandler   *DashboardHandler
	configHandler      *ConfigHandler
	authMiddleware     *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	jwtService *auth.JWTService,
	logger utils.Logger,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:        NewUserHandler(serviceManager.User(), logger),
		projectHandler:     NewProjectHandler(serviceManager.Project(), logger),
		applicationHandler: NewApplicationHandler(serviceManager.Application(), logger),
		dashboardHandler:   NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Report(), logger),
		configHandler:      NewConfigHandler(serviceManager.Config(), logger),
		authMiddleware:     NewJWTAuthMiddleware(jwtService, userRepo),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	// Public routes: setup flow and authentication
	setup := v1.Group("/setup")
	{
		setup.GET("/status", hm.configHandler.GetSetupStatus)
		setup.POST("", hm.configHandler.Setup)
	}

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)

		// Account maintenance requires a valid token
		authRoutes.POST("/verify-email", hm.authMiddleware.AuthMiddleware(), hm.authHandler.VerifyEmail)
		authRoutes.POST("/change-password", hm.authMiddleware.AuthMiddleware(), hm.authHandler.ChangePassword)
	}

	// Authenticated routes
	authenticated := v1.Group("")
	authenticated.Use(hm.authMiddleware.AuthMiddleware())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", hm.userHandler.GetMe)
			users.PUT("/me", hm.userHandler.UpdateMe)
			users.GET("/:id", hm.userHandler.GetUser)

			// Account administration
			users.GET("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.ListUsers)
			users.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.UpdateUser)
			users.PUT("/:id/suspend", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.SuspendUser)
			users.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.userHandler.DeleteUser)
		}

		projects := authenticated.Group("/projects")
		{
			projects.GET("", hm.projectHandler.ListProjects)
			projects.GET("/:id", hm.projectHandler.GetProject)

			// Organizations manage their own projects
			projects.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization), hm.projectHandler.CreateProject)
			projects.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization), hm.projectHandler.UpdateProject)
			projects.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization), hm.projectHandler.DeleteProject)
			projects.POST("/:id/submit", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization), hm.projectHandler.SubmitProject)
			projects.POST("/:id/archive", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization), hm.projectHandler.ArchiveProject)

			// Coordinators drive review and publication
			projects.POST("/:id/assign-coordinator", hm.authMiddleware.RequireRoleMiddleware(models.RoleCoordinator), hm.projectHandler.AssignCoordinator)
			projects.POST("/:id/publish", hm.authMiddleware.RequireRoleMiddleware(models.RoleCoordinator, models.RoleOrganization), hm.projectHandler.PublishProject)
			projects.POST("/:id/start", hm.authMiddleware.RequireRoleMiddleware(models.RoleCoordinator, models.RoleOrganization), hm.projectHandler.StartProject)
			projects.POST("/:id/complete", hm.authMiddleware.RequireRoleMiddleware(models.RoleCoordinator, models.RoleOrganization), hm.projectHandler.CompleteProject)
		}

		applications := authenticated.Group("/applications")
		{
			applications.GET("", hm.applicationHandler.ListApplications)
			applications.GET("/:id", hm.applicationHandler.GetApplication)
			applications.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.applicationHandler.Apply)
			applications.POST("/:id/withdraw", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.applicationHandler.WithdrawApplication)
			applications.POST("/:id/decide", hm.authMiddleware.RequireRoleMiddleware(models.RoleOrganization, models.RoleCoordinator), hm.applicationHandler.DecideApplication)
		}

		// Dashboard routes - Administrators only
		dashboard := authenticated.Group("/dashboard")
		dashboard.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator))
		{
			dashboard.GET("/overview", hm.dashboardHandler.GetOverview)
			dashboard.GET("/users-by-role", hm.dashboardHandler.GetUsersByRole)
			dashboard.GET("/projects-by-status", hm.dashboardHandler.GetProjectsByStatus)
			dashboard.GET("/applications-by-status", hm.dashboardHandler.GetApplicationsByStatus)
			dashboard.GET("/report", hm.dashboardHandler.DownloadReport)
		}

		// Platform config - read for all authenticated, write for admins
		config := authenticated.Group("/config")
		{
			config.GET("", hm.configHandler.GetConfig)
			config.PUT("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdministrator), hm.configHandler.UpdateConfig)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "placement-service",
		})
	})
}
