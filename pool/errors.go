package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrArenaFull indicates the arena could not supply descriptor storage.
	// The caller may retry after destroying other formats.
	ErrArenaFull = errors.New("pool: arena descriptor storage exhausted")
)

// CheckError reports which structural check a descriptor or arena failed.
// It is returned by Check and carried inside contract-violation panics.
type CheckError struct {
	// Structure names the checked structure kind ("Format" or "Arena").
	Structure string

	// Check names the failed check: "signature", "arena", "serial",
	// "variety", "registry", "alignment", or "methods".
	Check string

	// Message describes the observed inconsistency.
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("pool: %s %s check failed: %s", e.Structure, e.Check, e.Message)
}

func formatCheckErr(check, format string, args ...any) *CheckError {
	return &CheckError{Structure: "Format", Check: check, Message: fmt.Sprintf(format, args...)}
}

func arenaCheckErr(check, format string, args ...any) *CheckError {
	return &CheckError{Structure: "Arena", Check: check, Message: fmt.Sprintf(format, args...)}
}
