package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) repositories.ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context) (*models.PlatformConfig, error) {
	var config models.PlatformConfig
	err := r.db.WithContext(ctx).First(&config, "id = ?", models.PlatformConfigID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get platform config: %w", repositories.ErrSetupMissing)
		}
		return nil, handleDBError(err, "get platform config")
	}
	return &config, nil
}

// Save upserts the singleton row. The id is forced so that no code path can
// ever create a second config row.
func (r *configRepository) Save(ctx context.Context, config *models.PlatformConfig) error {
	config.ID = models.PlatformConfigID
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(config).Error; err != nil {
		return handleDBError(err, "save platform config")
	}
	return nil
}
