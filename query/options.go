package query

import (
	"log/slog"

	"github.com/Konsultn-Engineering/sqlfy/dialect"
	"github.com/Konsultn-Engineering/sqlfy/schema"
)

type options struct {
	dialect   dialect.Dialect
	naming    schema.NamingStrategy
	cacheSize int
	strict    bool
	logger    *slog.Logger
}

// Option configures a Registry.
type Option func(*options)

// WithDialect sets how identifiers and placeholders are written.
func WithDialect(d dialect.Dialect) Option {
	return func(o *options) { o.dialect = d }
}

// WithNamingStrategy sets how storage names are derived for types and fields
// without an explicit override.
func WithNamingStrategy(strategy schema.NamingStrategy) Option {
	return func(o *options) { o.naming = strategy }
}

// WithCacheSize bounds each type's statement cache to size entries (LRU).
// Zero or negative keeps the cache unbounded.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithStrictColumns makes column deduplication and hashing take the owning
// table into account. By default two joined tables' columns that share
// storage and display names collapse into one output column.
func WithStrictColumns(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func defaultOptions() options {
	return options{
		dialect: dialect.NewPlainDialect(),
		naming:  schema.IdentityNaming(),
	}
}
