package dialect

// Plain writes identifiers verbatim and placeholders as @name.
type Plain struct{}

func NewPlainDialect() Dialect {
	return &Plain{}
}

func (Plain) Name() string { return "plain" }

func (Plain) QuoteIdentifier(name string) string {
	return name
}

func (Plain) Placeholder(name string) string {
	return "@" + name
}
