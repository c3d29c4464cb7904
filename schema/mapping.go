package schema

import (
	"fmt"
	"slices"
)

// Mapping is the explicit declaration of how a data-model type maps to a
// table. Table and ColumnMapping.Column are optional overrides; when empty the
// naming strategy derives the storage name from the declared name.
type Mapping struct {
	Name    string          `json:"name" yaml:"name"`
	Table   string          `json:"table,omitempty" yaml:"table,omitempty"`
	Columns []ColumnMapping `json:"columns" yaml:"columns"`
}

// ColumnMapping declares one field of a data-model type, in declaration order.
type ColumnMapping struct {
	Field  string `json:"field" yaml:"field"`
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
}

// Map starts a Mapping for the type called name.
//
//	schema.Map("Product").WithTable("ForgeRock").
//		Column("Name", "productName").
//		Field("Description")
func Map(name string) Mapping {
	return Mapping{Name: name}
}

// WithTable returns a copy of m with the table storage name overridden.
func (m Mapping) WithTable(storageName string) Mapping {
	m.Table = storageName
	return m
}

// Field returns a copy of m with a field that has no storage override.
func (m Mapping) Field(name string) Mapping {
	return m.Column(name, "")
}

// Column returns a copy of m with a field mapped to storageName.
func (m Mapping) Column(field, storageName string) Mapping {
	cols := make([]ColumnMapping, len(m.Columns), len(m.Columns)+1)
	copy(cols, m.Columns)
	m.Columns = append(cols, ColumnMapping{Field: field, Column: storageName})
	return m
}

// Equal reports whether m and o declare the same type, table and columns.
func (m Mapping) Equal(o Mapping) bool {
	return m.Name == o.Name && m.Table == o.Table && slices.Equal(m.Columns, o.Columns)
}

// Validate checks that the mapping names its type and that every field is
// named and unique.
func (m Mapping) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidMapping)
	}
	seen := make(map[string]struct{}, len(m.Columns))
	for i, c := range m.Columns {
		if c.Field == "" {
			return fmt.Errorf("%w: %s: column %d has no field name", ErrInvalidMapping, m.Name, i)
		}
		if _, dup := seen[c.Field]; dup {
			return fmt.Errorf("%w: %s: duplicate field %s", ErrInvalidMapping, m.Name, c.Field)
		}
		seen[c.Field] = struct{}{}
	}
	return nil
}

// Extract builds the Table descriptor and ordered Column descriptors for m.
// A nil naming strategy means IdentityNaming.
func Extract(m Mapping, naming NamingStrategy) (*Table, []*Column) {
	if naming == nil {
		naming = IdentityNaming()
	}

	table := &Table{StorageName: m.Table, DisplayName: m.Name}
	if table.StorageName == "" {
		table.StorageName = naming.TableName(m.Name)
	}

	columns := make([]*Column, len(m.Columns))
	for i, c := range m.Columns {
		storage := c.Column
		if storage == "" {
			storage = naming.ColumnName(c.Field)
		}
		columns[i] = &Column{StorageName: storage, DisplayName: c.Field, Table: table}
	}
	return table, columns
}
