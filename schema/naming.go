package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// Naming strategies derive storage names for fields and types that carry no
// explicit override. The default, IdentityNaming, keeps declared names as-is.

var pluralizeClient = pluralizer.NewClient()

// NamingStrategy combines column and table naming.
type NamingStrategy interface {
	ColumnNamingStrategy
	TableNamingStrategy
}

// ColumnNamingStrategy converts a Go field name to a column storage name.
type ColumnNamingStrategy interface {
	ColumnName(fieldName string) string
}

// TableNamingStrategy converts a Go type name to a table storage name.
type TableNamingStrategy interface {
	TableName(typeName string) string
}

// ColumnNamingType selects a column naming convention.
type ColumnNamingType int

const (
	ColumnAsDeclared ColumnNamingType = iota // FirstName
	ColumnSnakeCase                          // first_name
	ColumnCamelCase                          // firstName
	ColumnPascalCase                         // FirstName
)

type columnNamingStrategy struct {
	namingType ColumnNamingType
}

// NewColumnNamingStrategy creates a column naming strategy.
func NewColumnNamingStrategy(namingType ColumnNamingType) ColumnNamingStrategy {
	return &columnNamingStrategy{namingType: namingType}
}

func (c *columnNamingStrategy) ColumnName(fieldName string) string {
	switch c.namingType {
	case ColumnSnakeCase:
		return toSnakeCase(fieldName)
	case ColumnCamelCase:
		return toCamelCase(fieldName)
	case ColumnPascalCase:
		return toPascalCase(fieldName)
	default:
		return fieldName
	}
}

// TableNamingType selects a table naming convention.
type TableNamingType int

const (
	TableAsDeclared         TableNamingType = iota // BlogPost
	TableSnakeCaseSingular                         // blog_post
	TableSnakeCasePlural                           // blog_posts
	TablePascalCasePlural                          // BlogPosts
)

type tableNamingStrategy struct {
	namingType TableNamingType
}

// NewTableNamingStrategy creates a table naming strategy.
func NewTableNamingStrategy(namingType TableNamingType) TableNamingStrategy {
	return &tableNamingStrategy{namingType: namingType}
}

func (t *tableNamingStrategy) TableName(typeName string) string {
	switch t.namingType {
	case TableSnakeCaseSingular:
		return toSnakeCase(typeName)
	case TableSnakeCasePlural:
		return pluralize(toSnakeCase(typeName))
	case TablePascalCasePlural:
		return pluralize(toPascalCase(typeName))
	default:
		return typeName
	}
}

// CombinedNamingStrategy pairs a column strategy with a table strategy.
type CombinedNamingStrategy struct {
	ColumnNamingStrategy
	TableNamingStrategy
}

// NewCombinedNamingStrategy creates a complete naming strategy.
func NewCombinedNamingStrategy(columns ColumnNamingStrategy, tables TableNamingStrategy) NamingStrategy {
	return &CombinedNamingStrategy{
		ColumnNamingStrategy: columns,
		TableNamingStrategy:  tables,
	}
}

// IdentityNaming keeps declared type and field names as storage names.
func IdentityNaming() NamingStrategy {
	return NewCombinedNamingStrategy(
		NewColumnNamingStrategy(ColumnAsDeclared),
		NewTableNamingStrategy(TableAsDeclared),
	)
}

// SnakeCaseNaming maps fields to snake_case columns and types to plural
// snake_case tables (FirstName -> first_name, BlogPost -> blog_posts).
func SnakeCaseNaming() NamingStrategy {
	return NewCombinedNamingStrategy(
		NewColumnNamingStrategy(ColumnSnakeCase),
		NewTableNamingStrategy(TableSnakeCasePlural),
	)
}

// toSnakeCase converts PascalCase or camelCase to snake_case, keeping
// acronym runs together (UserID -> user_id, HTTPServer -> http_server).
func toSnakeCase(name string) string {
	if name == "" {
		return ""
	}
	if strings.Contains(name, "_") && !hasUpperCase(name) {
		return name
	}

	var result strings.Builder
	result.Grow(len(name) + 4)

	runes := []rune(name)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])) {
				result.WriteByte('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

func toCamelCase(name string) string {
	pascal := toPascalCase(name)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func toPascalCase(name string) string {
	parts := strings.Split(toSnakeCase(name), "_")

	var result strings.Builder
	result.Grow(len(name))
	for _, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		result.WriteString(string(runes))
	}
	return result.String()
}

func pluralize(name string) string {
	if name == "" {
		return ""
	}
	return pluralizeClient.Plural(name)
}

func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
