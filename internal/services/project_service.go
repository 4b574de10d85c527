package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/InternLink-2025/placement-service/internal/events"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

type projectService struct {
	repo      repositories.Repository
	publisher *events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProjectService(repo repositories.Repository, publisher *events.Publisher, logger *slog.Logger, validator *validator.Validator) ProjectService {
	return &projectService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// ===== CRUD =====

func (s *projectService) Create(ctx context.Context, req *ProjectCreateRequest, organizationID string) (*models.Project, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	isOrg, err := s.repo.User().HasRole(ctx, organizationID, models.RoleOrganization)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization role: %w", err)
	}
	if !isOrg {
		return nil, NewPermissionError(organizationID, "project", "create", "organization role required")
	}

	project := &models.Project{
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.ProjectDraft,
		OrganizationID: organizationID,
		Capacity:       1,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if req.Capacity > 0 {
		project.Capacity = req.Capacity
	}
	if len(req.RequiredSkills) > 0 {
		skills, err := json.Marshal(req.RequiredSkills)
		if err != nil {
			return nil, fmt.Errorf("failed to encode required skills: %w", err)
		}
		project.RequiredSkills = datatypes.JSON(skills)
	}

	if err := s.repo.Project().Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", "project_id", project.ID, "organization_id", organizationID)
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Project().GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, req *ProjectUpdateRequest, actorID string, actorRole models.UserRole) (*models.Project, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	project, err := s.getOwned(ctx, id, actorID, actorRole, "update")
	if err != nil {
		return nil, err
	}

	// Frozen statuses reject edits
	if !project.Status.Editable() {
		return nil, ErrProjectNotEditable
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Capacity != nil {
		project.Capacity = *req.Capacity
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.RequiredSkills != nil {
		skills, err := json.Marshal(req.RequiredSkills)
		if err != nil {
			return nil, fmt.Errorf("failed to encode required skills: %w", err)
		}
		project.RequiredSkills = datatypes.JSON(skills)
	}

	if err := s.repo.Project().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("Project updated", "project_id", id, "actor_id", actorID)
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	if _, err := s.getOwned(ctx, id, actorID, actorRole, "delete"); err != nil {
		return err
	}

	if err := s.repo.Project().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("Project deleted", "project_id", id, "actor_id", actorID)
	return nil
}

func (s *projectService) List(ctx context.Context, filters repositories.ProjectFilters) (*ProjectListResponse, error) {
	filters.Page, filters.PageSize = repositories.NormalizePage(filters.Page, filters.PageSize)

	projects, total, err := s.repo.Project().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &ProjectListResponse{
		Projects: projects,
		Pages:    repositories.NewPageInfo(total, filters.Page, filters.PageSize),
	}, nil
}

// ===== LIFECYCLE =====

func (s *projectService) Submit(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	project, err := s.getOwned(ctx, id, actorID, actorRole, "submit")
	if err != nil {
		return err
	}
	return s.transition(ctx, project, models.ProjectPendingReview)
}

func (s *projectService) AssignCoordinator(ctx context.Context, id uint, coordinatorID string, actorRole models.UserRole) error {
	if actorRole != models.RoleCoordinator && actorRole != models.RoleAdministrator {
		return NewPermissionError("", "project", "assign_coordinator", "coordinator or administrator role required")
	}

	project, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if !project.Status.CanTransition(models.ProjectCoordinatorAssigned) {
		return NewTransitionError(string(project.Status), string(models.ProjectCoordinatorAssigned))
	}

	coordinator, err := s.repo.User().GetByIDWithProfile(ctx, coordinatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load coordinator: %w", err)
	}
	if coordinator.Profile.Kind != models.RoleCoordinator || coordinator.Profile.Coordinator == nil {
		return NewPermissionError(coordinatorID, "project", "assign_coordinator", "assignee is not a coordinator")
	}

	active, err := s.repo.Project().CountActiveByCoordinator(ctx, coordinatorID)
	if err != nil {
		return fmt.Errorf("failed to count active projects: %w", err)
	}
	if limit := coordinator.Profile.Coordinator.MaxActiveProjects; limit > 0 && active >= int64(limit) {
		return ErrCoordinatorOverload
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Project().AssignCoordinator(ctx, id, coordinatorID); err != nil {
			return fmt.Errorf("failed to assign coordinator: %w", err)
		}
		if err := tx.Project().UpdateStatus(ctx, id, models.ProjectCoordinatorAssigned); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Coordinator assigned", "project_id", id, "coordinator_id", coordinatorID)
	return nil
}

func (s *projectService) Publish(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	project, err := s.getSupervised(ctx, id, actorID, actorRole, "publish")
	if err != nil {
		return err
	}

	if err := s.transition(ctx, project, models.ProjectPublished); err != nil {
		return err
	}

	if s.publisher != nil {
		event := events.ProjectEvent{
			ProjectID:      project.ID,
			OrganizationID: project.OrganizationID,
			Title:          project.Title,
			Status:         models.ProjectPublished,
			OccurredAt:     nowFunc(),
		}
		if err := s.publisher.ProjectPublished(event); err != nil {
			s.logger.Error("Failed to publish project event", "project_id", id, "error", err)
		}
	}

	return nil
}

func (s *projectService) Start(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	project, err := s.getSupervised(ctx, id, actorID, actorRole, "start")
	if err != nil {
		return err
	}
	return s.transition(ctx, project, models.ProjectInProgress)
}

func (s *projectService) Complete(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	project, err := s.getSupervised(ctx, id, actorID, actorRole, "complete")
	if err != nil {
		return err
	}
	return s.transition(ctx, project, models.ProjectCompleted)
}

func (s *projectService) Archive(ctx context.Context, id uint, actorID string, actorRole models.UserRole) error {
	project, err := s.getOwned(ctx, id, actorID, actorRole, "archive")
	if err != nil {
		return err
	}
	return s.transition(ctx, project, models.ProjectArchived)
}

// ===== HELPERS =====

func (s *projectService) load(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Project().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

// getOwned loads a project and checks that the actor owns it or is an
// administrator.
func (s *projectService) getOwned(ctx context.Context, id uint, actorID string, actorRole models.UserRole, action string) (*models.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.OrganizationID != actorID && actorRole != models.RoleAdministrator {
		return nil, NewPermissionError(actorID, "project", action, "not the owning organization")
	}
	return project, nil
}

// getSupervised additionally admits the assigned coordinator.
func (s *projectService) getSupervised(ctx context.Context, id uint, actorID string, actorRole models.UserRole, action string) (*models.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole == models.RoleAdministrator || project.OrganizationID == actorID {
		return project, nil
	}
	if project.CoordinatorID != nil && *project.CoordinatorID == actorID {
		return project, nil
	}
	return nil, NewPermissionError(actorID, "project", action, "not the owner or assigned coordinator")
}

func (s *projectService) transition(ctx context.Context, project *models.Project, to models.ProjectStatus) error {
	if !project.Status.CanTransition(to) {
		return NewTransitionError(string(project.Status), string(to))
	}

	if err := s.repo.Project().UpdateStatus(ctx, project.ID, to); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update status: %w", err)
	}

	s.logger.Info("Project status changed", "project_id", project.ID, "from", project.Status, "to", to)
	project.Status = to
	return nil
}
