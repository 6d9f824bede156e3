package common

import (
	"errors"
	"fmt"
)

// ServiceError represents a service-level error with context.
type ServiceError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e ServiceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e ServiceError) Unwrap() error {
	return e.Cause
}

// WrapServiceError wraps an error with service operation context.
func WrapServiceError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return ServiceError{
		Operation: operation,
		Cause:     err,
	}
}

// Common error operations for consistent messaging.
const (
	OpQueryMolecules        = "query molecules"
	OpQuerySessions         = "query sessions"
	OpCheckInitialExists    = "check if map initial exists"
	OpCheckAssessmentExists = "check if assessment exists"
	OpInsertInitial         = "insert map initial"
	OpInsertAssessment      = "insert assessment"
	OpInsertSession         = "insert session"
	OpInsertResult          = "insert result"
	OpFetchEvaluation       = "fetch molecule evaluation"
	OpLookupFamily          = "look up odor family"
)

// Sentinel errors shared across services.
var (
	// ErrWritesDisabled reports the database-write feature gate is off.
	// Distinct from dry-run: the caller asked for a real write and the
	// deployment refuses it.
	ErrWritesDisabled = errors.New("database writes are disabled by configuration")

	// ErrMigrationDisabled reports the migration feature gate is off.
	ErrMigrationDisabled = errors.New("migration is disabled by configuration")

	// ErrFamilyCodeNotFound reports a descriptor's family code has no
	// counterpart at the destination. Surfaced loudly instead of
	// inserting a wrong cross-schema reference.
	ErrFamilyCodeNotFound = errors.New("odor family code not found at destination")

	// ErrNoResults reports a session carries no result rows to map.
	ErrNoResults = errors.New("session has no results")
)
