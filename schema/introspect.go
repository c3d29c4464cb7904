package schema

import (
	"fmt"
	"reflect"
	"sync"
)

var (
	defaultTagParser = NewTagParser(DefaultTagName)
	mappingCache     sync.Map // map[reflect.Type]Mapping
)

// MappingFor derives the Mapping of T from its struct definition.
func MappingFor[T any]() (Mapping, error) {
	return MappingOf(reflect.TypeOf((*T)(nil)).Elem())
}

// MappingOf derives a Mapping from a struct type: exported, non-embedded
// fields in declaration order, column overrides from `db` tags and a table
// override from a TableName method. Pointer types are dereferenced.
func MappingOf(t reflect.Type) (Mapping, error) {
	if t == nil {
		return Mapping{}, fmt.Errorf("%w: nil type", ErrInvalidModel)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return Mapping{}, fmt.Errorf("%w: %s (expected struct)", ErrInvalidModel, t.Kind())
	}

	if m, ok := mappingCache.Load(t); ok {
		return m.(Mapping), nil
	}

	m := buildMapping(t)
	actual, _ := mappingCache.LoadOrStore(t, m)
	return actual.(Mapping), nil
}

func buildMapping(t reflect.Type) Mapping {
	m := Mapping{
		Name:    t.Name(),
		Columns: make([]ColumnMapping, 0, t.NumField()),
	}

	if tn, ok := reflect.New(t).Interface().(TableNamer); ok {
		m.Table = tn.TableName()
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag := defaultTagParser.ParseTag(f.Tag)
		if tag.Skip {
			continue
		}
		m.Columns = append(m.Columns, ColumnMapping{Field: f.Name, Column: tag.ColumnName})
	}
	return m
}
