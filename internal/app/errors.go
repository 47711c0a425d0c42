package app

import "fmt"

// AlreadyCompletedError is returned when a quiz submission arrives for a
// day whose quiz was already completed.
type AlreadyCompletedError struct {
	Date string
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("quiz already completed on %s", e.Date)
}

// DuplicateTopicError is returned when a keypoint is rejected by the
// deduplication check.
type DuplicateTopicError struct {
	Fingerprint string
	Reason      string
}

func (e *DuplicateTopicError) Error() string {
	return fmt.Sprintf("keypoint %q duplicates recent content: %s", e.Fingerprint, e.Reason)
}

// NotInitializedError is returned by operations that need a completed
// onboarding.
type NotInitializedError struct {
	Step int
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("onboarding incomplete (step %d)", e.Step)
}
