package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/InternLink-2025/placement-service/internal/auth"
	"github.com/InternLink-2025/placement-service/internal/cache"
	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

type configService struct {
	repo      repositories.Repository
	cache     *cache.CacheHelper
	logger    *slog.Logger
	validator *validator.Validator
}

func NewConfigService(repo repositories.Repository, configCache *cache.CacheHelper, logger *slog.Logger, validator *validator.Validator) ConfigService {
	return &configService{
		repo:      repo,
		cache:     configCache,
		logger:    logger,
		validator: validator,
	}
}

// Get returns the platform config, reading through the cache. Cached
// entries are keyed by the invalidation generation, so writers only bump
// the counter and stale entries become unreachable.
func (s *configService) Get(ctx context.Context) (*models.PlatformConfig, error) {
	key := s.cache.GenerationKey(ctx, "platform")

	var config models.PlatformConfig
	if err := s.cache.Get(ctx, key, &config); err == nil {
		return &config, nil
	}

	cfg, err := s.repo.Config().Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSetupMissing) {
			return nil, ErrSetupRequired
		}
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}

	if err := s.cache.Set(ctx, key, cfg, cache.ConfigCacheConfig.TTL); err != nil {
		s.logger.Error("Failed to cache platform config", "error", err)
	}

	return cfg, nil
}

func (s *configService) SetupStatus(ctx context.Context) (*SetupStatusResponse, error) {
	_, err := s.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrSetupRequired) {
			return &SetupStatusResponse{SetupComplete: false}, nil
		}
		return nil, err
	}
	return &SetupStatusResponse{SetupComplete: true}, nil
}

// Setup runs the first-time configuration: the config row and the initial
// administrator account commit in one transaction. A second setup attempt
// is rejected.
func (s *configService) Setup(ctx context.Context, req *SetupRequest) (*models.PlatformConfig, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Config().Get(ctx); err == nil {
		return nil, ErrAlreadySetup
	} else if !errors.Is(err, repositories.ErrSetupMissing) {
		return nil, fmt.Errorf("failed to check platform config: %w", err)
	}

	config := &models.PlatformConfig{
		ID:               models.PlatformConfigID,
		PlatformName:     req.PlatformName,
		LogoURL:          req.LogoURL,
		SMTPHost:         req.SMTPHost,
		SMTPPort:         req.SMTPPort,
		SMTPSender:       req.SMTPSender,
		RegistrationOpen: req.RegistrationOpen,
	}

	if req.LightTheme != nil {
		theme, err := marshalTheme(req.LightTheme)
		if err != nil {
			return nil, err
		}
		config.LightTheme = theme
	}
	if req.DarkTheme != nil {
		theme, err := marshalTheme(req.DarkTheme)
		if err != nil {
			return nil, err
		}
		config.DarkTheme = theme
	}

	hash, err := auth.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        req.AdminEmail,
		FullName:     req.AdminName,
		PasswordHash: hash,
		Role:         models.RoleAdministrator,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Config().Save(ctx, config); err != nil {
			return fmt.Errorf("failed to save platform config: %w", err)
		}
		if err := tx.User().Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create administrator: %w", err)
		}
		return tx.User().CreateAdministratorProfile(ctx, &models.AdministratorProfile{
			UserID: admin.ID,
			Title:  "Platform Administrator",
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("Platform setup completed", "platform_name", config.PlatformName, "admin_id", admin.ID)

	return config, nil
}

func (s *configService) Update(ctx context.Context, req *ConfigUpdateRequest) (*models.PlatformConfig, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	config, err := s.repo.Config().Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSetupMissing) {
			return nil, ErrSetupRequired
		}
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}

	if req.PlatformName != nil {
		config.PlatformName = *req.PlatformName
	}
	if req.LogoURL != nil {
		config.LogoURL = req.LogoURL
	}
	if req.LightTheme != nil {
		theme, err := marshalTheme(req.LightTheme)
		if err != nil {
			return nil, err
		}
		config.LightTheme = theme
	}
	if req.DarkTheme != nil {
		theme, err := marshalTheme(req.DarkTheme)
		if err != nil {
			return nil, err
		}
		config.DarkTheme = theme
	}
	if req.SMTPHost != nil {
		config.SMTPHost = *req.SMTPHost
	}
	if req.SMTPPort != nil {
		config.SMTPPort = *req.SMTPPort
	}
	if req.SMTPSender != nil {
		config.SMTPSender = *req.SMTPSender
	}
	if req.RegistrationOpen != nil {
		config.RegistrationOpen = *req.RegistrationOpen
	}

	if err := s.repo.Config().Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save platform config: %w", err)
	}

	s.invalidate(ctx)
	s.logger.Info("Platform config updated")

	return config, nil
}

func (s *configService) invalidate(ctx context.Context) {
	if err := s.cache.BumpGeneration(ctx); err != nil {
		s.logger.Error("Failed to bump config cache generation", "error", err)
	}
}

func marshalTheme(theme *validator.ThemePaletteRequest) (datatypes.JSON, error) {
	palette := models.ThemePalette{
		Primary:    theme.Primary,
		Secondary:  theme.Secondary,
		Background: theme.Background,
		Surface:    theme.Surface,
		Text:       theme.Text,
	}
	data, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme palette: %w", err)
	}
	return datatypes.JSON(data), nil
}
