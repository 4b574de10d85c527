package repositories

import (
	"context"

	"github.com/InternLink-2025/placement-service/internal/models"
)

// DashboardRepository issues the grouped-count queries behind dashboard
// analytics. The maps it returns contain only categories present in the
// data; the dashboard service overlays them onto zero-filled maps so every
// enum member appears in the final result.
type DashboardRepository interface {
	// Totals
	GetTotalUsers(ctx context.Context) (int64, error)
	GetTotalProjects(ctx context.Context) (int64, error)
	GetTotalApplications(ctx context.Context) (int64, error)

	// Grouped counts (sparse: absent categories are missing keys)
	CountUsersByRole(ctx context.Context) (map[models.UserRole]int64, error)
	CountProjectsByStatus(ctx context.Context, organizationID *string) (map[models.ProjectStatus]int64, error)
	CountApplicationsByStatus(ctx context.Context, projectID *uint) (map[models.ApplicationStatus]int64, error)

	// Trend data
	CountRecentRegistrations(ctx context.Context, days int) (int64, error)
}
