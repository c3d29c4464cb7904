package query

import (
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/Konsultn-Engineering/sqlfy/cache"
	"github.com/Konsultn-Engineering/sqlfy/dialect"
	"github.com/Konsultn-Engineering/sqlfy/schema"
)

// Identifiers is the registry entry for one data-model type: its table, its
// columns in declaration order, and the SQL already rendered for it.
type Identifiers struct {
	table   *schema.Table
	columns []*schema.Column
	byName  map[string]*schema.Column

	cache   cache.QueryCache
	dialect dialect.Dialect
	strict  bool
	logger  *slog.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache effectiveness for one registry entry.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Name returns the type name, which is also the table alias.
func (ids *Identifiers) Name() string {
	return ids.table.DisplayName
}

// Table returns the table descriptor.
func (ids *Identifiers) Table() *schema.Table {
	return ids.table
}

// Columns returns the column descriptors in declaration order.
func (ids *Identifiers) Columns() []*schema.Column {
	return slices.Clone(ids.columns)
}

// Column returns the column whose display name is name.
func (ids *Identifiers) Column(name string) (*schema.Column, error) {
	if c, ok := ids.byName[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrColumnNotFound, ids.Name(), name)
}

// MustColumn is Column that panics on error.
func (ids *Identifiers) MustColumn(name string) *schema.Column {
	c, err := ids.Column(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Filter builds a filter on the named column.
func (ids *Identifiers) Filter(name string, op Operator, value any) (Filter, error) {
	c, err := ids.Column(name)
	if err != nil {
		return Filter{}, err
	}
	return NewFilter(c, op, value)
}

// Stats returns cache counters.
func (ids *Identifiers) Stats() CacheStats {
	return CacheStats{
		Hits:    ids.hits.Load(),
		Misses:  ids.misses.Load(),
		Entries: ids.cache.Len(),
	}
}

func (ids *Identifiers) identityHash() uint32 {
	if ids == nil || ids.table == nil {
		return 0
	}
	return ids.table.Hash()
}
