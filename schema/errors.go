package schema

import "errors"

var (
	// ErrInvalidModel is returned when a type cannot be mapped (not a struct).
	ErrInvalidModel = errors.New("sqlfy: invalid model type")

	// ErrInvalidMapping is returned for malformed mapping declarations.
	ErrInvalidMapping = errors.New("sqlfy: invalid mapping")
)

// IsInvalidMapping reports whether err is or wraps ErrInvalidMapping.
func IsInvalidMapping(err error) bool {
	return errors.Is(err, ErrInvalidMapping)
}
