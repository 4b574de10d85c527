package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/InternLink-2025/placement-service/internal/cache"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

const registrationTrendDays = 7

type dashboardService struct {
	repo   repositories.Repository
	cache  *cache.CacheHelper
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, statsCache *cache.CacheHelper, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cache:  statsCache,
		logger: logger,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	var overview DashboardOverview
	err := s.cache.CacheOrExecute(ctx, "overview", &overview, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		totalUsers, err := s.repo.Dashboard().GetTotalUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		totalProjects, err := s.repo.Dashboard().GetTotalProjects(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count projects: %w", err)
		}
		totalApplications, err := s.repo.Dashboard().GetTotalApplications(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications: %w", err)
		}
		recent, err := s.repo.Dashboard().CountRecentRegistrations(ctx, registrationTrendDays)
		if err != nil {
			return nil, fmt.Errorf("failed to count recent registrations: %w", err)
		}

		return &DashboardOverview{
			TotalUsers:          totalUsers,
			TotalProjects:       totalProjects,
			TotalApplications:   totalApplications,
			RecentRegistrations: recent,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// UsersByRole returns a count for every role the platform recognizes.
// Roles with no users report zero rather than a missing key.
func (s *dashboardService) UsersByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	var result map[models.UserRole]int64
	err := s.cache.CacheOrExecute(ctx, "users_by_role", &result, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		counts, err := s.repo.Dashboard().CountUsersByRole(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count users by role: %w", err)
		}
		return zeroFill(models.AllUserRoles, counts), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *dashboardService) ProjectsByStatus(ctx context.Context, organizationID *string) (map[models.ProjectStatus]int64, error) {
	// Scoped queries bypass the cache; the shared key would mix scopes
	if organizationID != nil {
		counts, err := s.repo.Dashboard().CountProjectsByStatus(ctx, organizationID)
		if err != nil {
			return nil, fmt.Errorf("failed to count projects by status: %w", err)
		}
		return zeroFill(models.AllProjectStatuses, counts), nil
	}

	var result map[models.ProjectStatus]int64
	err := s.cache.CacheOrExecute(ctx, "projects_by_status", &result, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		counts, err := s.repo.Dashboard().CountProjectsByStatus(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to count projects by status: %w", err)
		}
		return zeroFill(models.AllProjectStatuses, counts), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *dashboardService) ApplicationsByStatus(ctx context.Context, projectID *uint) (map[models.ApplicationStatus]int64, error) {
	if projectID != nil {
		counts, err := s.repo.Dashboard().CountApplicationsByStatus(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications by status: %w", err)
		}
		return zeroFill(models.AllApplicationStatuses, counts), nil
	}

	var result map[models.ApplicationStatus]int64
	err := s.cache.CacheOrExecute(ctx, "applications_by_status", &result, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		counts, err := s.repo.Dashboard().CountApplicationsByStatus(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to count applications by status: %w", err)
		}
		return zeroFill(models.AllApplicationStatuses, counts), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// zeroFill overlays sparse grouped counts onto the full enum domain so
// consumers can index any member without existence checks.
func zeroFill[K comparable](domain []K, counts map[K]int64) map[K]int64 {
	result := make(map[K]int64, len(domain))
	for _, key := range domain {
		result[key] = counts[key]
	}
	return result
}
