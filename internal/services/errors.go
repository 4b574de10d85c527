package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers match these with
// errors.Is to choose the HTTP status; the texts never reach clients for
// 5xx responses.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrApplicationNotFound = errors.New("application not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrEmailVerified      = errors.New("email is already verified")
	ErrRegistrationClosed = errors.New("registration is closed")

	ErrSetupRequired = errors.New("platform setup has not been completed")
	ErrAlreadySetup  = errors.New("platform setup has already been completed")

	ErrProjectNotEditable   = errors.New("project is not editable in its current status")
	ErrCoordinatorOverload  = errors.New("coordinator has reached the active project limit")
	ErrProjectNotPublished  = errors.New("project is not open for applications")
	ErrProjectCapacityFull  = errors.New("project capacity is full")
	ErrAlreadyApplied       = errors.New("an application for this project already exists")
	ErrApplicationNotOpen   = errors.New("application is no longer pending")
)

// TransitionError reports an illegal project status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func NewTransitionError(from, to string) *TransitionError {
	return &TransitionError{From: from, To: to}
}

// PermissionError reports a denied operation: who tried what on which
// resource. Handlers map it to 403.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s (%s)", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// IsPermissionError reports whether err is (or wraps) a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsTransitionError reports whether err is (or wraps) a TransitionError.
func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
