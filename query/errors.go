package query

import "errors"

// Usage errors.
var (
	// ErrNilColumn is returned when a filter does not reference a column.
	ErrNilColumn = errors.New("sqlfy: filter requires a column")

	// ErrNoColumns is returned when a request resolves to an empty select list.
	ErrNoColumns = errors.New("sqlfy: no columns selected")

	// ErrColumnNotFound is returned for an unknown column display name.
	ErrColumnNotFound = errors.New("sqlfy: column not found")

	// ErrNilRegistry is returned when a join side is missing.
	ErrNilRegistry = errors.New("sqlfy: join requires both registries")

	// ErrNoJoinClauses is returned when a join has no ON clause.
	ErrNoJoinClauses = errors.New("sqlfy: join requires at least one ON clause")

	// ErrConflictingArgs is returned when one placeholder is bound to two values.
	ErrConflictingArgs = errors.New("sqlfy: conflicting values for placeholder")
)

// Configuration errors.
var (
	// ErrUnknownOperator is returned when a filter operator has no SQL token.
	ErrUnknownOperator = errors.New("sqlfy: unknown filter operator")

	// ErrUnknownJoinKind is returned when a join kind has no SQL keyword.
	ErrUnknownJoinKind = errors.New("sqlfy: unknown join kind")
)

// IsColumnNotFound reports whether err is or wraps ErrColumnNotFound.
func IsColumnNotFound(err error) bool {
	return errors.Is(err, ErrColumnNotFound)
}

// IsConfigurationError reports whether err stems from an operator or join
// kind that has no SQL rendering.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownOperator) || errors.Is(err, ErrUnknownJoinKind)
}
