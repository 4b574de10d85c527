package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/InternLink-2025/placement-service/internal/events"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

type applicationService struct {
	repo      repositories.Repository
	publisher *events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewApplicationService(repo repositories.Repository, publisher *events.Publisher, logger *slog.Logger, validator *validator.Validator) ApplicationService {
	return &applicationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *applicationService) Apply(ctx context.Context, req *ApplicationCreateRequest, studentID string) (*models.Application, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	isStudent, err := s.repo.User().HasRole(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to check student role: %w", err)
	}
	if !isStudent {
		return nil, NewPermissionError(studentID, "application", "apply", "student role required")
	}

	project, err := s.repo.Project().GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project.Status != models.ProjectPublished {
		return nil, ErrProjectNotPublished
	}

	if _, err := s.repo.Application().GetByStudentAndProject(ctx, studentID, req.ProjectID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	application := &models.Application{
		StudentID:  studentID,
		ProjectID:  req.ProjectID,
		Status:     models.ApplicationPending,
		Motivation: req.Motivation,
	}

	if err := s.repo.Application().Create(ctx, application); err != nil {
		// Unique pair index backs the duplicate check under concurrency
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.publishEvent(s.publisher.ApplicationSubmitted, application, nil)
	s.logger.Info("Application submitted", "application_id", application.ID, "student_id", studentID, "project_id", req.ProjectID)

	return application, nil
}

func (s *applicationService) GetByID(ctx context.Context, id uint, actorID string, actorRole models.UserRole) (*models.Application, error) {
	application, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canView(ctx, application, actorID, actorRole); err != nil {
		return nil, err
	}
	return application, nil
}

func (s *applicationService) Withdraw(ctx context.Context, id uint, studentID string) error {
	application, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if application.StudentID != studentID {
		return NewPermissionError(studentID, "application", "withdraw", "not the applicant")
	}
	if application.Status != models.ApplicationPending {
		return ErrApplicationNotOpen
	}

	application.Status = models.ApplicationWithdrawn
	if err := s.repo.Application().Update(ctx, application); err != nil {
		return fmt.Errorf("failed to withdraw application: %w", err)
	}

	s.publishEvent(s.publisher.ApplicationWithdrawn, application, nil)
	s.logger.Info("Application withdrawn", "application_id", id, "student_id", studentID)

	return nil
}

func (s *applicationService) Decide(ctx context.Context, id uint, req *ApplicationDecisionRequest, actorID string, actorRole models.UserRole) (*models.Application, error) {
	application, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.Project().GetByID(ctx, application.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}

	if !s.canDecide(project, actorID, actorRole) {
		return nil, NewPermissionError(actorID, "application", "decide", "not the owner or assigned coordinator")
	}
	if application.Status != models.ApplicationPending {
		return nil, ErrApplicationNotOpen
	}

	if req.Accept {
		accepted, err := s.repo.Application().CountAcceptedByProject(ctx, application.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to count accepted applications: %w", err)
		}
		if accepted >= int64(project.Capacity) {
			return nil, ErrProjectCapacityFull
		}
		application.Status = models.ApplicationAccepted
	} else {
		application.Status = models.ApplicationRejected
	}

	now := nowFunc()
	application.DecidedAt = &now
	application.DecidedBy = &actorID

	if err := s.repo.Application().Update(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	s.publishEvent(s.publisher.ApplicationDecided, application, &actorID)
	s.logger.Info("Application decided",
		"application_id", id,
		"status", application.Status,
		"decided_by", actorID)

	return application, nil
}

func (s *applicationService) List(ctx context.Context, filters repositories.ApplicationFilters, actorID string, actorRole models.UserRole) (*ApplicationListResponse, error) {
	filters.Page, filters.PageSize = repositories.NormalizePage(filters.Page, filters.PageSize)

	// Students only ever see their own applications
	if actorRole == models.RoleStudent {
		filters.StudentID = &actorID
	}

	applications, total, err := s.repo.Application().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return &ApplicationListResponse{
		Applications: applications,
		Pages:        repositories.NewPageInfo(total, filters.Page, filters.PageSize),
	}, nil
}

// ===== HELPERS =====

func (s *applicationService) load(ctx context.Context, id uint) (*models.Application, error) {
	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return application, nil
}

func (s *applicationService) canView(ctx context.Context, application *models.Application, actorID string, actorRole models.UserRole) error {
	if actorRole == models.RoleAdministrator || application.StudentID == actorID {
		return nil
	}

	project, err := s.repo.Project().GetByID(ctx, application.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if s.canDecide(project, actorID, actorRole) {
		return nil
	}
	return NewPermissionError(actorID, "application", "read", "not a participant")
}

func (s *applicationService) canDecide(project *models.Project, actorID string, actorRole models.UserRole) bool {
	if actorRole == models.RoleAdministrator {
		return true
	}
	if project.OrganizationID == actorID {
		return true
	}
	return project.CoordinatorID != nil && *project.CoordinatorID == actorID
}

func (s *applicationService) publishEvent(publish func(events.ApplicationEvent) error, application *models.Application, decidedBy *string) {
	if s.publisher == nil {
		return
	}

	event := events.ApplicationEvent{
		ApplicationID: application.ID,
		ProjectID:     application.ProjectID,
		StudentID:     application.StudentID,
		Status:        application.Status,
		DecidedBy:     decidedBy,
		OccurredAt:    nowFunc(),
	}
	if err := publish(event); err != nil {
		s.logger.Error("Failed to publish application event",
			"application_id", application.ID,
			"status", application.Status,
			"error", err)
	}
}
