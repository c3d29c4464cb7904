package dialect

import "strings"

// MySQL backtick-quotes identifiers and writes :name placeholders, the named
// parameter form understood by sqlx-style binders.
type MySQL struct{}

func NewMySQLDialect() Dialect {
	return &MySQL{}
}

func (m MySQL) Name() string { return "mysql" }

func (m MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (m MySQL) Placeholder(name string) string {
	return ":" + name
}
