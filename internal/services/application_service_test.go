package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/repositories/mock"
)

func newApplicationService(repo *mock.Repository) ApplicationService {
	return NewApplicationService(repo, nil, testLogger(), testValidator)
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("student applies to published project", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "stu-1", models.RoleStudent)
		project := seedProject(repo, "org-1", models.ProjectPublished)
		svc := newApplicationService(repo)

		application, err := svc.Apply(ctx, &ApplicationCreateRequest{
			ProjectID:  project.ID,
			Motivation: "I want to learn Go in production.",
		}, "stu-1")
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if application.Status != models.ApplicationPending {
			t.Errorf("Status = %s, want PENDING", application.Status)
		}
		if application.ID == 0 {
			t.Error("expected assigned application id")
		}
	})

	t.Run("non-student denied", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "org-1", models.RoleOrganization)
		project := seedProject(repo, "org-1", models.ProjectPublished)
		svc := newApplicationService(repo)

		_, err := svc.Apply(ctx, &ApplicationCreateRequest{ProjectID: project.ID}, "org-1")
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("unpublished project rejected", func(t *testing.T) {
		for _, status := range []models.ProjectStatus{models.ProjectDraft, models.ProjectInProgress, models.ProjectArchived} {
			repo := mock.NewRepository()
			seedUser(repo, "stu-1", models.RoleStudent)
			project := seedProject(repo, "org-1", status)
			svc := newApplicationService(repo)

			_, err := svc.Apply(ctx, &ApplicationCreateRequest{ProjectID: project.ID}, "stu-1")
			if !errors.Is(err, ErrProjectNotPublished) {
				t.Errorf("%s: error = %v, want ErrProjectNotPublished", status, err)
			}
		}
	})

	t.Run("duplicate application rejected", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "stu-1", models.RoleStudent)
		project := seedProject(repo, "org-1", models.ProjectPublished)
		seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		_, err := svc.Apply(ctx, &ApplicationCreateRequest{ProjectID: project.ID}, "stu-1")
		if !errors.Is(err, ErrAlreadyApplied) {
			t.Errorf("error = %v, want ErrAlreadyApplied", err)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "stu-1", models.RoleStudent)
		svc := newApplicationService(repo)

		_, err := svc.Apply(ctx, &ApplicationCreateRequest{ProjectID: 404}, "stu-1")
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("error = %v, want ErrProjectNotFound", err)
		}
	})
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("owner withdraws pending", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		if err := svc.Withdraw(ctx, application.ID, "stu-1"); err != nil {
			t.Fatalf("Withdraw: %v", err)
		}
		if application.Status != models.ApplicationWithdrawn {
			t.Errorf("Status = %s, want WITHDRAWN", application.Status)
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		if err := svc.Withdraw(ctx, application.ID, "stu-2"); !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("only pending can be withdrawn", func(t *testing.T) {
		for _, status := range []models.ApplicationStatus{models.ApplicationAccepted, models.ApplicationRejected, models.ApplicationWithdrawn} {
			repo := mock.NewRepository()
			project := seedProject(repo, "org-1", models.ProjectPublished)
			application := seedApplication(repo, "stu-1", project.ID, status)
			svc := newApplicationService(repo)

			if err := svc.Withdraw(ctx, application.ID, "stu-1"); !errors.Is(err, ErrApplicationNotOpen) {
				t.Errorf("%s: error = %v, want ErrApplicationNotOpen", status, err)
			}
		}
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	decidedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("organization accepts", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)
		fixedNow(t, decidedAt)

		decided, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: true}, "org-1", models.RoleOrganization)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if decided.Status != models.ApplicationAccepted {
			t.Errorf("Status = %s, want ACCEPTED", decided.Status)
		}
		if decided.DecidedAt == nil || !decided.DecidedAt.Equal(decidedAt) {
			t.Errorf("DecidedAt = %v, want %v", decided.DecidedAt, decidedAt)
		}
		if decided.DecidedBy == nil || *decided.DecidedBy != "org-1" {
			t.Errorf("DecidedBy = %v, want org-1", decided.DecidedBy)
		}
	})

	t.Run("assigned coordinator rejects", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		coordID := "coord-1"
		project.CoordinatorID = &coordID
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		decided, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: false}, "coord-1", models.RoleCoordinator)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if decided.Status != models.ApplicationRejected {
			t.Errorf("Status = %s, want REJECTED", decided.Status)
		}
	})

	t.Run("unrelated actor denied", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		_, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: true}, "org-2", models.RoleOrganization)
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("capacity full rejects accept", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished) // capacity 2
		seedApplication(repo, "stu-1", project.ID, models.ApplicationAccepted)
		seedApplication(repo, "stu-2", project.ID, models.ApplicationAccepted)
		application := seedApplication(repo, "stu-3", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		_, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: true}, "org-1", models.RoleOrganization)
		if !errors.Is(err, ErrProjectCapacityFull) {
			t.Errorf("error = %v, want ErrProjectCapacityFull", err)
		}
	})

	t.Run("capacity does not block rejection", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		seedApplication(repo, "stu-1", project.ID, models.ApplicationAccepted)
		seedApplication(repo, "stu-2", project.ID, models.ApplicationAccepted)
		application := seedApplication(repo, "stu-3", project.ID, models.ApplicationPending)
		svc := newApplicationService(repo)

		decided, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: false}, "org-1", models.RoleOrganization)
		if err != nil {
			t.Fatalf("Decide: %v", err)
		}
		if decided.Status != models.ApplicationRejected {
			t.Errorf("Status = %s, want REJECTED", decided.Status)
		}
	})

	t.Run("already decided", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPublished)
		application := seedApplication(repo, "stu-1", project.ID, models.ApplicationAccepted)
		svc := newApplicationService(repo)

		_, err := svc.Decide(ctx, application.ID, &ApplicationDecisionRequest{Accept: false}, "org-1", models.RoleOrganization)
		if !errors.Is(err, ErrApplicationNotOpen) {
			t.Errorf("error = %v, want ErrApplicationNotOpen", err)
		}
	})
}

func TestApplicationList(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	project := seedProject(repo, "org-1", models.ProjectPublished)
	seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
	seedApplication(repo, "stu-2", project.ID, models.ApplicationPending)
	svc := newApplicationService(repo)

	t.Run("students see only their own", func(t *testing.T) {
		other := "stu-2"
		resp, err := svc.List(ctx, repositories.ApplicationFilters{StudentID: &other}, "stu-1", models.RoleStudent)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(resp.Applications) != 1 || resp.Applications[0].StudentID != "stu-1" {
			t.Errorf("student filter not forced: %+v", resp.Applications)
		}
	})

	t.Run("administrators see everything", func(t *testing.T) {
		resp, err := svc.List(ctx, repositories.ApplicationFilters{}, "admin", models.RoleAdministrator)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(resp.Applications) != 2 {
			t.Errorf("got %d applications, want 2", len(resp.Applications))
		}
	})
}

func TestApplicationGetByID(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	project := seedProject(repo, "org-1", models.ProjectPublished)
	application := seedApplication(repo, "stu-1", project.ID, models.ApplicationPending)
	svc := newApplicationService(repo)

	tests := []struct {
		name      string
		actorID   string
		actorRole models.UserRole
		wantErr   bool
	}{
		{name: "applicant", actorID: "stu-1", actorRole: models.RoleStudent},
		{name: "owning organization", actorID: "org-1", actorRole: models.RoleOrganization},
		{name: "administrator", actorID: "admin", actorRole: models.RoleAdministrator},
		{name: "other student", actorID: "stu-2", actorRole: models.RoleStudent, wantErr: true},
		{name: "other organization", actorID: "org-2", actorRole: models.RoleOrganization, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(ctx, application.ID, tt.actorID, tt.actorRole)
			if tt.wantErr {
				if !IsPermissionError(err) {
					t.Errorf("error = %v, want permission error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("GetByID: %v", err)
			}
		})
	}

	if _, err := svc.GetByID(ctx, 404, "admin", models.RoleAdministrator); !errors.Is(err, ErrApplicationNotFound) {
		t.Errorf("unknown id error = %v, want ErrApplicationNotFound", err)
	}
}
