package attendance

import "errors"

var (
	// ErrNotAssigned means the teacher has no teaching assignment covering
	// the class/section they tried to act on.
	ErrNotAssigned = errors.New("no teaching assignment for class/section")

	// ErrLocked means the target day is not directly editable; the caller
	// should go through the edit-request path.
	ErrLocked = errors.New("attendance locked for direct editing")

	// ErrNotFound means the addressed request or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyDecided means the edit request left the pending state before
	// this decision could apply.
	ErrAlreadyDecided = errors.New("request already decided")
)

// ValidationError marks input the caller can fix. The string is the
// machine-readable error code surfaced verbatim in the response body.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
