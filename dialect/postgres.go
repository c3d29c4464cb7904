package dialect

import "strings"

// Postgres double-quotes identifiers. Placeholders stay @name, which is the
// syntax pgx rewrites when the statement is run with pgx.NamedArgs.
type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Postgres) Placeholder(name string) string {
	return "@" + name
}
