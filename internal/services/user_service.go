package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *userService) GetWithProfile(ctx context.Context, id string) (*models.UserWithProfile, error) {
	result, err := s.repo.User().GetByIDWithProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user profile: %w", err)
	}
	return result, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	filters.Page, filters.PageSize = repositories.NormalizePage(filters.Page, filters.PageSize)

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Pages: repositories.NewPageInfo(total, filters.Page, filters.PageSize),
	}, nil
}

func (s *userService) Update(ctx context.Context, id string, req *UserUpdateRequest, actorID string, actorRole models.UserRole) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Users edit themselves; administrators edit anyone
	if actorID != id && actorRole != models.RoleAdministrator {
		return nil, NewPermissionError(actorID, "user", "update", "not the account owner")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return s.updateProfile(ctx, tx, user, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "user_id", id, "actor_id", actorID)
	return user, nil
}

// updateProfile merges the request into the stored profile row. Omitted
// fields keep their stored values; only the variant matching the user's
// role is ever touched.
func (s *userService) updateProfile(ctx context.Context, tx repositories.Repository, user *models.User, req *UserUpdateRequest) error {
	wantsUpdate := (user.Role == models.RoleStudent && req.Student != nil) ||
		(user.Role == models.RoleCoordinator && req.Coordinator != nil) ||
		(user.Role == models.RoleOrganization && req.Organization != nil)
	if !wantsUpdate {
		return nil
	}

	resolved, err := tx.User().GetByIDWithProfile(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	switch user.Role {
	case models.RoleStudent:
		profile := resolved.Profile.Student
		if profile == nil {
			profile = &models.StudentProfile{UserID: user.ID}
		}
		if req.Student.StudyProgram != "" {
			profile.StudyProgram = req.Student.StudyProgram
		}
		if req.Student.GraduationYear > 0 {
			profile.GraduationYear = req.Student.GraduationYear
		}
		if len(req.Student.Skills) > 0 {
			skills, err := json.Marshal(req.Student.Skills)
			if err != nil {
				return fmt.Errorf("failed to encode skills: %w", err)
			}
			profile.Skills = datatypes.JSON(skills)
		}
		return tx.User().UpdateStudentProfile(ctx, profile)

	case models.RoleCoordinator:
		profile := resolved.Profile.Coordinator
		if profile == nil {
			profile = &models.CoordinatorProfile{UserID: user.ID}
		}
		if req.Coordinator.Department != "" {
			profile.Department = req.Coordinator.Department
		}
		if req.Coordinator.MaxActiveProjects > 0 {
			profile.MaxActiveProjects = req.Coordinator.MaxActiveProjects
		}
		return tx.User().UpdateCoordinatorProfile(ctx, profile)

	case models.RoleOrganization:
		profile := resolved.Profile.Organization
		if profile == nil {
			profile = &models.OrganizationProfile{UserID: user.ID}
		}
		if req.Organization.Website != nil {
			profile.Website = req.Organization.Website
		}
		if req.Organization.ContactPhone != nil {
			profile.ContactPhone = req.Organization.ContactPhone
		}
		if req.Organization.Industry != "" {
			profile.Industry = req.Organization.Industry
		}
		return tx.User().UpdateOrganizationProfile(ctx, profile)
	}

	return nil
}

func (s *userService) SetSuspended(ctx context.Context, id string, suspended bool, actorRole models.UserRole) error {
	if actorRole != models.RoleAdministrator {
		return NewPermissionError("", "user", "suspend", "administrator role required")
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.Suspended == suspended {
		return nil
	}

	user.Suspended = suspended
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update suspension: %w", err)
	}

	s.logger.Info("User suspension changed", "user_id", id, "suspended", suspended)
	return nil
}

func (s *userService) Delete(ctx context.Context, id string, actorRole models.UserRole) error {
	if actorRole != models.RoleAdministrator {
		return NewPermissionError("", "user", "delete", "administrator role required")
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted", "user_id", id)
	return nil
}
