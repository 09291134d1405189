package engine

import "errors"

// ValidationError marks a local, recoverable input failure. It never reaches
// the store and never mutates state; callers present it to the user directly.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationf(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a user-input failure as opposed to a
// transport or store failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrUnavailable is returned by every operation once the engine has latched a
// subscription failure; only a restart clears it.
var ErrUnavailable = errors.New("store unavailable")
