package retryer

import "errors"

// Sentinel errors for retryer operations.
var (
	// ErrNilFunc is returned by Start when Config.Fn is nil.
	ErrNilFunc = errors.New("retryer: fn is required")
)

// CancelError is the failure the result settles with when a Retryer is
// cancelled via Cancel. The flags are carried through unchanged from the
// CancelOptions so the caller can decide how to react.
type CancelError struct {
	// Revert indicates the caller should roll back any effects of the
	// cancelled work.
	Revert bool

	// Silent indicates the caller should suppress user-visible reporting
	// of the cancellation.
	Silent bool
}

// Error implements the error interface.
func (e *CancelError) Error() string {
	return "retryer: cancelled"
}

// IsCancelled reports whether err is a cancellation produced by Cancel.
func IsCancelled(err error) bool {
	var ce *CancelError
	return errors.As(err, &ce)
}
