package repositories

import "errors"

// Sentinel errors surfaced by repositories. Callers match with errors.Is;
// anything else is a persistence failure wrapped with operation context.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("record already exists")
	ErrSetupMissing = errors.New("platform config not initialized")
)
