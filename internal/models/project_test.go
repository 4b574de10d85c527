package models

import "testing"

func TestProjectStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from ProjectStatus
		to   ProjectStatus
		want bool
	}{
		{name: "draft to pending review", from: ProjectDraft, to: ProjectPendingReview, want: true},
		{name: "draft to archived", from: ProjectDraft, to: ProjectArchived, want: true},
		{name: "draft skips review", from: ProjectDraft, to: ProjectPublished, want: false},
		{name: "pending review to coordinator assigned", from: ProjectPendingReview, to: ProjectCoordinatorAssigned, want: true},
		{name: "coordinator assigned to published", from: ProjectCoordinatorAssigned, to: ProjectPublished, want: true},
		{name: "published to in progress", from: ProjectPublished, to: ProjectInProgress, want: true},
		{name: "published back to draft", from: ProjectPublished, to: ProjectDraft, want: false},
		{name: "in progress to completed", from: ProjectInProgress, to: ProjectCompleted, want: true},
		{name: "in progress to archived", from: ProjectInProgress, to: ProjectArchived, want: true},
		{name: "completed is terminal", from: ProjectCompleted, to: ProjectArchived, want: false},
		{name: "archived is terminal", from: ProjectArchived, to: ProjectDraft, want: false},
		{name: "self transition rejected", from: ProjectPublished, to: ProjectPublished, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestProjectStatusArchivableFromNonTerminal(t *testing.T) {
	for _, status := range AllProjectStatuses {
		terminal := status == ProjectCompleted || status == ProjectArchived
		if got := status.CanTransition(ProjectArchived); got == terminal {
			t.Errorf("CanTransition(%s -> ARCHIVED) = %v, want %v", status, got, !terminal)
		}
	}
}

func TestProjectStatusEditable(t *testing.T) {
	for _, status := range AllProjectStatuses {
		want := status != ProjectArchived && status != ProjectCompleted
		if got := status.Editable(); got != want {
			t.Errorf("Editable(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestProjectStatusValid(t *testing.T) {
	for _, status := range AllProjectStatuses {
		if !status.Valid() {
			t.Errorf("Valid(%s) = false, want true", status)
		}
	}
	if ProjectStatus("PAUSED").Valid() {
		t.Error("Valid(PAUSED) = true, want false")
	}
	if ProjectStatus("").Valid() {
		t.Error("Valid(empty) = true, want false")
	}
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range AllUserRoles {
		if !role.Valid() {
			t.Errorf("Valid(%s) = false, want true", role)
		}
	}
	if UserRole("SUPERUSER").Valid() {
		t.Error("Valid(SUPERUSER) = true, want false")
	}
}

func TestApplicationStatusValid(t *testing.T) {
	for _, status := range AllApplicationStatuses {
		if !status.Valid() {
			t.Errorf("Valid(%s) = false, want true", status)
		}
	}
	if ApplicationStatus("EXPIRED").Valid() {
		t.Error("Valid(EXPIRED) = true, want false")
	}
}

func TestProfileNone(t *testing.T) {
	if !(Profile{}).None() {
		t.Error("empty profile should report None")
	}
	p := Profile{Kind: RoleStudent, Student: &StudentProfile{UserID: "u1"}}
	if p.None() {
		t.Error("populated profile should not report None")
	}
}
