package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	return nil
}

// Delete removes the user together with its role profile row. Profiles are
// lifecycle-bound to their user, so both go in one transaction.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id", "role").First(&user, "id = ?", id).Error; err != nil {
			return err
		}

		switch user.Role {
		case models.RoleStudent:
			if err := tx.Delete(&models.StudentProfile{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		case models.RoleCoordinator:
			if err := tx.Delete(&models.CoordinatorProfile{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		case models.RoleOrganization:
			if err := tx.Delete(&models.OrganizationProfile{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		case models.RoleAdministrator:
			if err := tx.Delete(&models.AdministratorProfile{}, "user_id = ?", id).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
	if err != nil {
		return handleDBError(err, "delete user")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{})
	query = applySearch(query, filters.Search, "full_name", "email")
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Suspended != nil {
		query = query.Where("suspended = ?", *filters.Suspended)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	allowedSort := map[string]string{
		"created_at": "created_at",
		"full_name":  "full_name",
		"email":      "email",
		"role":       "role",
	}
	query = applyPaginationAndSorting(query, allowedSort, filters.SortBy, filters.SortOrder, filters.Page, filters.PageSize)

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check email exists")
	}
	return count > 0, nil
}

func (r *userRepository) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, role).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check user role")
	}
	return count > 0, nil
}

// ===== ROLE RESOLUTION =====

// GetByIDWithProfile resolves a user together with exactly the profile
// matching its role. Two queries: the user row carries the role
// discriminator, the second loads the one relevant profile table. Roles
// outside the enum yield the bare user with an empty profile, which
// callers treat as the None variant.
func (r *userRepository) GetByIDWithProfile(ctx context.Context, id string) (*models.UserWithProfile, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resolve user profile: %w", repositories.ErrNotFound)
		}
		return nil, handleDBError(err, "get user by id")
	}

	result := &models.UserWithProfile{User: user}

	switch user.Role {
	case models.RoleStudent:
		var profile models.StudentProfile
		if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, handleDBError(err, "get student profile")
			}
		} else {
			result.Profile = models.Profile{Kind: models.RoleStudent, Student: &profile}
		}
	case models.RoleCoordinator:
		var profile models.CoordinatorProfile
		if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, handleDBError(err, "get coordinator profile")
			}
		} else {
			result.Profile = models.Profile{Kind: models.RoleCoordinator, Coordinator: &profile}
		}
	case models.RoleOrganization:
		var profile models.OrganizationProfile
		if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, handleDBError(err, "get organization profile")
			}
		} else {
			result.Profile = models.Profile{Kind: models.RoleOrganization, Organization: &profile}
		}
	case models.RoleAdministrator:
		var profile models.AdministratorProfile
		if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", id).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, handleDBError(err, "get administrator profile")
			}
		} else {
			result.Profile = models.Profile{Kind: models.RoleAdministrator, Administrator: &profile}
		}
	}

	return result, nil
}

// ===== PROFILE OPERATIONS =====

// ensureRole verifies the owning user carries the role matching the profile
// table about to be written. The database has no constraint for this; the
// create path is where the invariant lives.
func (r *userRepository) ensureRole(ctx context.Context, userID string, role models.UserRole) error {
	ok, err := r.HasRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %s does not have role %s: %w", userID, role, repositories.ErrNotFound)
	}
	return nil
}

func (r *userRepository) CreateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	if err := r.ensureRole(ctx, profile.UserID, models.RoleStudent); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create student profile")
	}
	return nil
}

func (r *userRepository) CreateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error {
	if err := r.ensureRole(ctx, profile.UserID, models.RoleCoordinator); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create coordinator profile")
	}
	return nil
}

func (r *userRepository) CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	if err := r.ensureRole(ctx, profile.UserID, models.RoleOrganization); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create organization profile")
	}
	return nil
}

func (r *userRepository) CreateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error {
	if err := r.ensureRole(ctx, profile.UserID, models.RoleAdministrator); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return handleDBError(err, "create administrator profile")
	}
	return nil
}

func (r *userRepository) UpdateStudentProfile(ctx context.Context, profile *models.StudentProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update student profile")
	}
	return nil
}

func (r *userRepository) UpdateCoordinatorProfile(ctx context.Context, profile *models.CoordinatorProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update coordinator profile")
	}
	return nil
}

func (r *userRepository) UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update organization profile")
	}
	return nil
}

func (r *userRepository) UpdateAdministratorProfile(ctx context.Context, profile *models.AdministratorProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update administrator profile")
	}
	return nil
}
