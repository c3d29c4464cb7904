package dialect

// Dialect controls how identifiers and named placeholders are written.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(name string) string
}
