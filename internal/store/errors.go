package store

import (
	"errors"
	"fmt"
	"strings"
)

// CorruptStateError indicates the persisted state cannot be parsed.
// It is surfaced to the caller, never auto-repaired: silently falling
// back to defaults would hide data loss.
type CorruptStateError struct {
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("corrupt state file %s: %v", e.Path, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

// SchemaValidationError indicates generated content failed schema checks
// before persistence. Partial content is never written.
type SchemaValidationError struct {
	ContentType ContentType
	Causes      []string
	Err         error
}

func (e *SchemaValidationError) Error() string {
	if len(e.Causes) > 0 {
		return fmt.Sprintf("%s content failed schema validation: %s", e.ContentType, strings.Join(e.Causes, "; "))
	}
	return fmt.Sprintf("%s content failed schema validation: %v", e.ContentType, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// NotFoundError indicates requested daily content does not exist. This is
// a normal outcome, not a failure; callers branch on it via IsNotFound.
type NotFoundError struct {
	Date        string
	ContentType ContentType
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s content for %s", e.ContentType, e.Date)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
