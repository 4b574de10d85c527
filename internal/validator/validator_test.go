package validator

import (
	"testing"

	"github.com/InternLink-2025/placement-service/internal/models"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		req        RegisterRequest
		wantFields []string
	}{
		{
			name: "valid student",
			req: RegisterRequest{
				Email:    "alice@example.com",
				Password: "password123",
				FullName: "Alice Nguyen",
				Role:     models.RoleStudent,
			},
		},
		{
			name: "missing everything",
			req:  RegisterRequest{},
			wantFields: []string{
				"email", "password", "full_name", "role",
			},
		},
		{
			name: "bad email",
			req: RegisterRequest{
				Email:    "not-an-email",
				Password: "password123",
				FullName: "Alice Nguyen",
				Role:     models.RoleStudent,
			},
			wantFields: []string{"email"},
		},
		{
			name: "short password",
			req: RegisterRequest{
				Email:    "alice@example.com",
				Password: "short",
				FullName: "Alice Nguyen",
				Role:     models.RoleStudent,
			},
			wantFields: []string{"password"},
		},
		{
			name: "unknown role",
			req: RegisterRequest{
				Email:    "alice@example.com",
				Password: "password123",
				FullName: "Alice Nguyen",
				Role:     models.UserRole("WIZARD"),
			},
			wantFields: []string{"role"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(&tt.req)
			if len(tt.wantFields) == 0 {
				if len(errs) != 0 {
					t.Fatalf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		color string
		valid bool
	}{
		{name: "six digit", color: "#1a2b3c", valid: true},
		{name: "three digit", color: "#fff", valid: true},
		{name: "uppercase", color: "#A1B2C3", valid: true},
		{name: "missing hash", color: "1a2b3c", valid: false},
		{name: "wrong length", color: "#1a2b", valid: false},
		{name: "non hex chars", color: "#zzzzzz", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ThemePaletteRequest{
				Primary:    tt.color,
				Secondary:  "#000000",
				Background: "#ffffff",
				Surface:    "#eeeeee",
				Text:       "#111111",
			}
			errs := v.Validate(&req)
			if tt.valid && len(errs) != 0 {
				t.Errorf("unexpected errors for %q: %v", tt.color, errs)
			}
			if !tt.valid {
				if len(errs) != 1 || errs[0].Field != "primary" || errs[0].Tag != "hex_color" {
					t.Errorf("expected one hex_color error on primary, got %v", errs)
				}
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	v := New()
	errs := v.Validate(&LoginRequest{})
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}
	if errs[0].Message != "email is required" {
		t.Errorf("message = %q, want %q", errs[0].Message, "email is required")
	}
	if errs.Error() != "email is required; password is required" {
		t.Errorf("joined message = %q", errs.Error())
	}
}

func TestValidateSetupRequest(t *testing.T) {
	v := New()

	req := SetupRequest{
		PlatformName:  "InternLink",
		AdminEmail:    "admin@example.com",
		AdminPassword: "supersecret1",
		AdminName:     "Root Admin",
	}
	if errs := v.Validate(&req); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	req.AdminEmail = "nope"
	errs := v.Validate(&req)
	if len(errs) != 1 || errs[0].Field != "admin_email" {
		t.Fatalf("expected one admin_email error, got %v", errs)
	}
}

func TestValidateNilReturnsNoErrors(t *testing.T) {
	v := New()
	if errs := v.Validate(&ApplicationDecisionRequest{}); len(errs) != 0 {
		t.Errorf("decision with no required fields should be clean, got %v", errs)
	}
}
