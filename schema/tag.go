package schema

import (
	"reflect"
	"strings"
	"sync"
)

// DefaultTagName is the struct tag consulted for column overrides.
const DefaultTagName = "db"

// ParsedTag is the column configuration read from a struct field tag.
type ParsedTag struct {
	ColumnName string // explicit storage override, empty when none
	Skip       bool   // db:"-"
}

// TagParser parses and caches field tags.
//
// Supported syntax:
//
//	`db:"column_name"`         // storage override
//	`db:"column:column_name"`  // same, explicit key
//	`db:"name:column_name"`    // alias of column
//	`db:"-"`                   // not mapped
//
// Unknown options are ignored so tags shared with other libraries still parse.
type TagParser struct {
	tagName string
	cache   map[string]*ParsedTag
	cacheMu sync.RWMutex
}

// NewTagParser creates a parser reading the given tag key.
func NewTagParser(tagName string) *TagParser {
	if tagName == "" {
		tagName = DefaultTagName
	}
	return &TagParser{
		tagName: tagName,
		cache:   make(map[string]*ParsedTag, 32),
	}
}

// ParseTag returns the parsed configuration for one field tag.
func (p *TagParser) ParseTag(tag reflect.StructTag) *ParsedTag {
	value, ok := tag.Lookup(p.tagName)
	if !ok || value == "" {
		return &ParsedTag{}
	}

	p.cacheMu.RLock()
	if cached, exists := p.cache[value]; exists {
		p.cacheMu.RUnlock()
		return cached
	}
	p.cacheMu.RUnlock()

	parsed := parseTagValue(value)

	p.cacheMu.Lock()
	p.cache[value] = parsed
	p.cacheMu.Unlock()
	return parsed
}

func parseTagValue(value string) *ParsedTag {
	if value == "-" {
		return &ParsedTag{Skip: true}
	}
	if !strings.ContainsAny(value, ";:") {
		return &ParsedTag{ColumnName: strings.TrimSpace(value)}
	}

	parsed := &ParsedTag{}
	for _, option := range strings.Split(value, ";") {
		option = strings.TrimSpace(option)
		key, val, found := strings.Cut(option, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "column", "name":
			parsed.ColumnName = strings.TrimSpace(val)
		}
	}
	return parsed
}
