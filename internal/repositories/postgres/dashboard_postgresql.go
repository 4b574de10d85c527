package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

// ===== TOTALS =====

func (r *dashboardRepository) GetTotalUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "get total users")
	}
	return count, nil
}

func (r *dashboardRepository) GetTotalProjects(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "get total projects")
	}
	return count, nil
}

func (r *dashboardRepository) GetTotalApplications(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "get total applications")
	}
	return count, nil
}

// ===== GROUPED COUNTS =====

// The grouped queries return sparse maps: a category with no rows is simply
// absent. Zero-filling over the full enum happens in the dashboard service.

func (r *dashboardRepository) CountUsersByRole(ctx context.Context) (map[models.UserRole]int64, error) {
	var rows []struct {
		Role  models.UserRole
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count users by role")
	}

	counts := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) CountProjectsByStatus(ctx context.Context, organizationID *string) (map[models.ProjectStatus]int64, error) {
	var rows []struct {
		Status models.ProjectStatus
		Count  int64
	}
	query := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count projects by status")
	}

	counts := make(map[models.ProjectStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) CountApplicationsByStatus(ctx context.Context, projectID *uint) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	query := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, handleDBError(err, "count applications by status")
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ===== TRENDS =====

func (r *dashboardRepository) CountRecentRegistrations(ctx context.Context, days int) (int64, error) {
	var count int64
	startDate := time.Now().AddDate(0, 0, -days)
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("created_at >= ?", startDate).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count recent registrations")
	}
	return count, nil
}
