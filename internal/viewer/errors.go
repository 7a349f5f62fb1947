package viewer

import "errors"

// Failure kinds surfaced in the alert banner.
var (
	// ErrReadFailure indicates the file could not be read or decoded.
	ErrReadFailure = errors.New("read failure")

	// ErrDialogFailure indicates the open dialog could not be shown.
	ErrDialogFailure = errors.New("dialog failure")
)

var fallbackMessages = map[error]string{
	ErrReadFailure:   "Failed to read file",
	ErrDialogFailure: "Failed to open file",
}

// Error is a recoverable failure of a Shell operation. Its message is the
// host's description of the cause, or a generic message for the kind when
// the host gave none.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if msg := e.Err.Error(); msg != "" {
			return msg
		}
	}
	if msg, ok := fallbackMessages[e.Kind]; ok {
		return msg
	}
	return "Unexpected error"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the failure kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}
