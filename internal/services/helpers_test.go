package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories/mock"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testValidator = validator.New()

// testHash uses the minimum bcrypt cost to keep the suite fast.
func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func seedUser(repo *mock.Repository, id string, role models.UserRole) *models.User {
	user := &models.User{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "User " + id,
		Role:     role,
	}
	repo.UserRepo.Users[id] = user
	return user
}

func seedCoordinator(repo *mock.Repository, id string, maxActive int) *models.User {
	user := seedUser(repo, id, models.RoleCoordinator)
	repo.UserRepo.CoordinatorProfiles[id] = &models.CoordinatorProfile{
		UserID:            id,
		Department:        "Computer Science",
		MaxActiveProjects: maxActive,
	}
	return user
}

func seedProject(repo *mock.Repository, orgID string, status models.ProjectStatus) *models.Project {
	project := &models.Project{
		Title:          "Data pipeline internship",
		Description:    "Build ingestion jobs",
		Status:         status,
		OrganizationID: orgID,
		Capacity:       2,
	}
	repo.ProjectRepo.NextID++
	project.ID = repo.ProjectRepo.NextID
	repo.ProjectRepo.Projects[project.ID] = project
	return project
}

func seedApplication(repo *mock.Repository, studentID string, projectID uint, status models.ApplicationStatus) *models.Application {
	application := &models.Application{
		StudentID: studentID,
		ProjectID: projectID,
		Status:    status,
	}
	repo.ApplicationRepo.NextID++
	application.ID = repo.ApplicationRepo.NextID
	repo.ApplicationRepo.Applications[application.ID] = application
	return application
}

func seedConfig(repo *mock.Repository, registrationOpen bool) *models.PlatformConfig {
	config := &models.PlatformConfig{
		ID:               models.PlatformConfigID,
		PlatformName:     "InternLink",
		RegistrationOpen: registrationOpen,
	}
	repo.ConfigRepo.Stored = config
	return config
}

// fixedNow pins nowFunc for the duration of a test.
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}
