package types

import (
	"fmt"
	"time"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationError reports malformed input: a self-reference pair, an invalid
// cardinality value, or a missing required field. Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced object or relationship that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Resource, e.ID)
}

// LockConflictError reports a cell actively locked by another user. It carries
// the holder's identity and the lock expiry so the caller can explain the
// conflict and retry after expiry.
type LockConflictError struct {
	LockedBy  string
	ExpiresAt time.Time
}

func (e *LockConflictError) Error() string {
	if e.LockedBy == "" {
		return "E_LOCKED - no active edit lock held for cell; acquire a lock before writing"
	}
	return fmt.Sprintf("E_LOCKED - cell is being edited by %s until %s",
		e.LockedBy, e.ExpiresAt.UTC().Format(time.RFC3339))
}

// NotHolderError reports a release attempted by a user who does not hold the
// lock. Diagnostic only: callers log it and treat the release as a no-op.
type NotHolderError struct {
	HeldBy string
}

func (e *NotHolderError) Error() string {
	if e.HeldBy == "" {
		return "no lock held on cell"
	}
	return fmt.Sprintf("lock held by %s", e.HeldBy)
}

// StorageError wraps a persistence failure after infrastructure retries are
// exhausted.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
