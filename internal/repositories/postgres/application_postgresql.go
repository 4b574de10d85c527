package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) repositories.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return handleDBError(err, "create application")
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Project").
		First(&application, id).Error; err != nil {
		return nil, handleDBError(err, "get application by id")
	}
	return &application, nil
}

func (r *applicationRepository) GetByStudentAndProject(ctx context.Context, studentID string, projectID uint) (*models.Application, error) {
	var application models.Application
	if err := r.db.WithContext(ctx).
		First(&application, "student_id = ? AND project_id = ?", studentID, projectID).Error; err != nil {
		return nil, handleDBError(err, "get application by student and project")
	}
	return &application, nil
}

func (r *applicationRepository) Update(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Save(application).Error; err != nil {
		return handleDBError(err, "update application")
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Application{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete application")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete application")
	}
	return nil
}

func (r *applicationRepository) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	var applications []*models.Application
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Application{}).
		Preload("Student").
		Preload("Project")
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ProjectID != nil {
		query = query.Where("project_id = ?", *filters.ProjectID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count applications")
	}

	allowedSort := map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"status":     "status",
		"decided_at": "decided_at",
	}
	query = applyPaginationAndSorting(query, allowedSort, filters.SortBy, filters.SortOrder, filters.Page, filters.PageSize)

	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, handleDBError(err, "list applications")
	}

	return applications, total, nil
}

func (r *applicationRepository) CountAcceptedByProject(ctx context.Context, projectID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("project_id = ? AND status = ?", projectID, models.ApplicationAccepted).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count accepted applications")
	}
	return count, nil
}
