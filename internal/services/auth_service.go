package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/InternLink-2025/placement-service/internal/auth"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

// burnHash is a genuine bcrypt hash of a throwaway password, compared
// against on unknown-email logins so that path costs as much as a real
// credential check. A malformed literal would short-circuit inside bcrypt
// and reopen the timing oracle.
var burnHash = func() string {
	hash, err := auth.HashPassword("unknown-account-burn-password")
	if err != nil {
		panic(fmt.Sprintf("compute login burn hash: %v", err))
	}
	return hash
}()

type authService struct {
	repo       repositories.Repository
	jwtService *auth.JWTService
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewAuthService(repo repositories.Repository, jwtService *auth.JWTService, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:       repo,
		jwtService: jwtService,
		logger:     logger,
		validator:  validator,
	}
}

// ===== REGISTRATION =====

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// Self-registration never grants the administrator role
	if req.Role == models.RoleAdministrator {
		return nil, NewPermissionError("", "user", "register", "administrator accounts are created during setup")
	}

	cfg, err := s.repo.Config().Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSetupMissing) {
			return nil, ErrSetupRequired
		}
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}
	if !cfg.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
	}

	// User row and role profile commit together
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.User().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.createProfile(ctx, tx, user, req)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *authService) createProfile(ctx context.Context, tx repositories.Repository, user *models.User, req *RegisterRequest) error {
	switch user.Role {
	case models.RoleStudent:
		profile := &models.StudentProfile{UserID: user.ID}
		if req.Student != nil {
			profile.StudyProgram = req.Student.StudyProgram
			profile.GraduationYear = req.Student.GraduationYear
			if len(req.Student.Skills) > 0 {
				skills, err := json.Marshal(req.Student.Skills)
				if err != nil {
					return fmt.Errorf("failed to encode skills: %w", err)
				}
				profile.Skills = datatypes.JSON(skills)
			}
		}
		return tx.User().CreateStudentProfile(ctx, profile)

	case models.RoleCoordinator:
		profile := &models.CoordinatorProfile{UserID: user.ID}
		if req.Coordinator != nil {
			profile.Department = req.Coordinator.Department
			if req.Coordinator.MaxActiveProjects > 0 {
				profile.MaxActiveProjects = req.Coordinator.MaxActiveProjects
			}
		}
		return tx.User().CreateCoordinatorProfile(ctx, profile)

	case models.RoleOrganization:
		profile := &models.OrganizationProfile{UserID: user.ID}
		if req.Organization != nil {
			profile.Website = req.Organization.Website
			profile.ContactPhone = req.Organization.ContactPhone
			profile.Industry = req.Organization.Industry
		}
		return tx.User().CreateOrganizationProfile(ctx, profile)

	default:
		return fmt.Errorf("unsupported registration role: %s", user.Role)
	}
}

// ===== LOGIN =====

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Burn a full hash comparison so the response time does not
			// reveal whether the email exists.
			auth.CheckPassword(burnHash, req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Login failed", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	if user.Suspended {
		return nil, ErrAccountSuspended
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}

// ===== ACCOUNT MAINTENANCE =====

func (s *authService) VerifyEmail(ctx context.Context, userID string) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if user.EmailVerifiedAt != nil {
		return ErrEmailVerified
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *ChangePasswordRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", "user_id", userID)
	return nil
}
