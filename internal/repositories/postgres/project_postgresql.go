package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return handleDBError(err, "create project")
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, handleDBError(err, "get project by id")
	}
	return &project, nil
}

func (r *projectRepository) GetByIDWithRelations(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Coordinator").
		First(&project, id).Error; err != nil {
		return nil, handleDBError(err, "get project with relations")
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return handleDBError(err, "update project")
	}
	return nil
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return handleDBError(result.Error, "update project status")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update project status")
	}
	return nil
}

func (r *projectRepository) AssignCoordinator(ctx context.Context, id uint, coordinatorID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("coordinator_id", coordinatorID)
	if result.Error != nil {
		return handleDBError(result.Error, "assign coordinator")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "assign coordinator")
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete project")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete project")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *projectRepository) List(ctx context.Context, filters repositories.ProjectFilters) ([]*models.Project, int64, error) {
	var projects []*models.Project
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Project{}).Preload("Organization")
	query = applySearch(query, filters.Search, "title", "description")
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filters.OrganizationID)
	}
	if filters.CoordinatorID != nil {
		query = query.Where("coordinator_id = ?", *filters.CoordinatorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count projects")
	}

	allowedSort := map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"title":      "title",
		"status":     "status",
		"start_date": "start_date",
	}
	query = applyPaginationAndSorting(query, allowedSort, filters.SortBy, filters.SortOrder, filters.Page, filters.PageSize)

	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, handleDBError(err, "list projects")
	}

	return projects, total, nil
}

func (r *projectRepository) CountActiveByCoordinator(ctx context.Context, coordinatorID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("coordinator_id = ?", coordinatorID).
		Where("status NOT IN ?", []models.ProjectStatus{models.ProjectCompleted, models.ProjectArchived}).
		Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count active projects by coordinator")
	}
	return count, nil
}
