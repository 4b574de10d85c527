package services

import (
	"context"
	"errors"
	"testing"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/repositories/mock"
)

func newProjectService(repo *mock.Repository) ProjectService {
	return NewProjectService(repo, nil, testLogger(), testValidator)
}

func TestProjectCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("organization creates draft", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "org-1", models.RoleOrganization)
		svc := newProjectService(repo)

		project, err := svc.Create(ctx, &ProjectCreateRequest{
			Title:          "Backend internship",
			Description:    "Work on the billing service",
			RequiredSkills: []string{"go", "postgres"},
			Capacity:       3,
		}, "org-1")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if project.Status != models.ProjectDraft {
			t.Errorf("Status = %s, want DRAFT", project.Status)
		}
		if project.OrganizationID != "org-1" {
			t.Errorf("OrganizationID = %q", project.OrganizationID)
		}
		if project.Capacity != 3 {
			t.Errorf("Capacity = %d, want 3", project.Capacity)
		}
	})

	t.Run("capacity defaults to one", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "org-1", models.RoleOrganization)
		svc := newProjectService(repo)

		project, err := svc.Create(ctx, &ProjectCreateRequest{Title: "Short gig"}, "org-1")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if project.Capacity != 1 {
			t.Errorf("Capacity = %d, want 1", project.Capacity)
		}
	})

	t.Run("non-organization denied", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "stu-1", models.RoleStudent)
		svc := newProjectService(repo)

		_, err := svc.Create(ctx, &ProjectCreateRequest{Title: "Sneaky project"}, "stu-1")
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})
}

func TestProjectUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner edits draft", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectDraft)
		svc := newProjectService(repo)

		title := "Revised title"
		updated, err := svc.Update(ctx, project.ID, &ProjectUpdateRequest{Title: &title}, "org-1", models.RoleOrganization)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.Title != "Revised title" {
			t.Errorf("Title = %q", updated.Title)
		}
	})

	t.Run("frozen statuses reject edits", func(t *testing.T) {
		for _, status := range []models.ProjectStatus{models.ProjectArchived, models.ProjectCompleted} {
			repo := mock.NewRepository()
			project := seedProject(repo, "org-1", status)
			svc := newProjectService(repo)

			title := "Too late"
			_, err := svc.Update(ctx, project.ID, &ProjectUpdateRequest{Title: &title}, "org-1", models.RoleOrganization)
			if !errors.Is(err, ErrProjectNotEditable) {
				t.Errorf("%s: error = %v, want ErrProjectNotEditable", status, err)
			}
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectDraft)
		svc := newProjectService(repo)

		title := "Hijack"
		_, err := svc.Update(ctx, project.ID, &ProjectUpdateRequest{Title: &title}, "org-2", models.RoleOrganization)
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		repo := mock.NewRepository()
		svc := newProjectService(repo)

		title := "Nothing here"
		_, err := svc.Update(ctx, 99, &ProjectUpdateRequest{Title: &title}, "org-1", models.RoleOrganization)
		if !errors.Is(err, ErrProjectNotFound) {
			t.Errorf("error = %v, want ErrProjectNotFound", err)
		}
	})
}

func TestProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	seedCoordinator(repo, "coord-1", 10)
	project := seedProject(repo, "org-1", models.ProjectDraft)
	svc := newProjectService(repo)

	if err := svc.Submit(ctx, project.ID, "org-1", models.RoleOrganization); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if project.Status != models.ProjectPendingReview {
		t.Fatalf("Status = %s, want PENDING_REVIEW", project.Status)
	}

	if err := svc.AssignCoordinator(ctx, project.ID, "coord-1", models.RoleCoordinator); err != nil {
		t.Fatalf("AssignCoordinator: %v", err)
	}
	if project.Status != models.ProjectCoordinatorAssigned {
		t.Fatalf("Status = %s, want COORDINATOR_ASSIGNED", project.Status)
	}
	if project.CoordinatorID == nil || *project.CoordinatorID != "coord-1" {
		t.Fatalf("CoordinatorID = %v", project.CoordinatorID)
	}

	// The assigned coordinator drives publish/start/complete
	if err := svc.Publish(ctx, project.ID, "coord-1", models.RoleCoordinator); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := svc.Start(ctx, project.ID, "coord-1", models.RoleCoordinator); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := svc.Complete(ctx, project.ID, "coord-1", models.RoleCoordinator); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if project.Status != models.ProjectCompleted {
		t.Fatalf("Status = %s, want COMPLETED", project.Status)
	}

	// Completed is terminal
	err := svc.Archive(ctx, project.ID, "org-1", models.RoleOrganization)
	if !IsTransitionError(err) {
		t.Errorf("archive after complete: error = %v, want transition error", err)
	}
}

func TestProjectSubmitIllegalTransition(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	project := seedProject(repo, "org-1", models.ProjectPublished)
	svc := newProjectService(repo)

	err := svc.Submit(ctx, project.ID, "org-1", models.RoleOrganization)
	if !IsTransitionError(err) {
		t.Errorf("error = %v, want transition error", err)
	}
}

func TestAssignCoordinator(t *testing.T) {
	ctx := context.Background()

	t.Run("requires coordinator or admin role", func(t *testing.T) {
		repo := mock.NewRepository()
		project := seedProject(repo, "org-1", models.ProjectPendingReview)
		svc := newProjectService(repo)

		err := svc.AssignCoordinator(ctx, project.ID, "coord-1", models.RoleOrganization)
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("assignee must be a coordinator", func(t *testing.T) {
		repo := mock.NewRepository()
		seedUser(repo, "stu-1", models.RoleStudent)
		project := seedProject(repo, "org-1", models.ProjectPendingReview)
		svc := newProjectService(repo)

		err := svc.AssignCoordinator(ctx, project.ID, "stu-1", models.RoleAdministrator)
		if !IsPermissionError(err) {
			t.Errorf("error = %v, want permission error", err)
		}
	})

	t.Run("overloaded coordinator rejected", func(t *testing.T) {
		repo := mock.NewRepository()
		seedCoordinator(repo, "coord-1", 2)
		for i := 0; i < 2; i++ {
			p := seedProject(repo, "org-1", models.ProjectInProgress)
			id := "coord-1"
			p.CoordinatorID = &id
		}
		project := seedProject(repo, "org-1", models.ProjectPendingReview)
		svc := newProjectService(repo)

		err := svc.AssignCoordinator(ctx, project.ID, "coord-1", models.RoleAdministrator)
		if !errors.Is(err, ErrCoordinatorOverload) {
			t.Errorf("error = %v, want ErrCoordinatorOverload", err)
		}
	})

	t.Run("terminal supervised projects do not count", func(t *testing.T) {
		repo := mock.NewRepository()
		seedCoordinator(repo, "coord-1", 2)
		for _, status := range []models.ProjectStatus{models.ProjectCompleted, models.ProjectArchived} {
			p := seedProject(repo, "org-1", status)
			id := "coord-1"
			p.CoordinatorID = &id
		}
		project := seedProject(repo, "org-1", models.ProjectPendingReview)
		svc := newProjectService(repo)

		if err := svc.AssignCoordinator(ctx, project.ID, "coord-1", models.RoleAdministrator); err != nil {
			t.Errorf("AssignCoordinator: %v", err)
		}
	})
}

func TestProjectList(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	seedProject(repo, "org-1", models.ProjectPublished)
	seedProject(repo, "org-1", models.ProjectDraft)
	seedProject(repo, "org-2", models.ProjectPublished)
	svc := newProjectService(repo)

	status := models.ProjectPublished
	resp, err := svc.List(ctx, repositories.ProjectFilters{Status: &status})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Projects) != 2 {
		t.Errorf("got %d projects, want 2", len(resp.Projects))
	}

	org := "org-1"
	resp, err = svc.List(ctx, repositories.ProjectFilters{Status: &status, OrganizationID: &org})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Projects) != 1 {
		t.Errorf("got %d projects, want 1", len(resp.Projects))
	}
}

func TestProjectListSearch(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	website := seedProject(repo, "org-1", models.ProjectPublished)
	website.Title = "Develop Company WEBSITE"
	backend := seedProject(repo, "org-1", models.ProjectDraft)
	backend.Title = "Backend rewrite"
	backend.Description = "Replace the legacy website API"
	other := seedProject(repo, "org-2", models.ProjectPublished)
	other.Title = "Warehouse automation"
	other.Description = "PLC programming"
	svc := newProjectService(repo)

	// Case-insensitive match across title and description
	resp, err := svc.List(ctx, repositories.ProjectFilters{Search: "website"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Projects) != 2 {
		t.Errorf("search matched %d projects, want 2: %+v", len(resp.Projects), resp.Projects)
	}

	// Search composes with the status filter
	status := models.ProjectPublished
	resp, err = svc.List(ctx, repositories.ProjectFilters{Search: "Website", Status: &status})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Projects) != 1 || resp.Projects[0].ID != website.ID {
		t.Errorf("search+status matched %+v, want only the published website project", resp.Projects)
	}

	resp, err = svc.List(ctx, repositories.ProjectFilters{Search: "blockchain"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(resp.Projects) != 0 || resp.Pages.Total != 0 {
		t.Errorf("miss returned %d projects, total %d", len(resp.Projects), resp.Pages.Total)
	}
}

func TestProjectDelete(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewRepository()
	project := seedProject(repo, "org-1", models.ProjectDraft)
	svc := newProjectService(repo)

	if err := svc.Delete(ctx, project.ID, "org-2", models.RoleOrganization); !IsPermissionError(err) {
		t.Errorf("non-owner delete error = %v, want permission error", err)
	}
	if err := svc.Delete(ctx, project.ID, "org-1", models.RoleOrganization); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, project.ID, "org-1", models.RoleOrganization); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("second delete error = %v, want ErrProjectNotFound", err)
	}
}
