package query

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/Konsultn-Engineering/sqlfy/cache"
	"github.com/Konsultn-Engineering/sqlfy/schema"
)

// Registry maps data-model types to their Identifiers. It is created once at
// application start and shared by everything that composes statements.
//
// Mappings registered with GetOrCreate are keyed by type name. Types
// registered with For are keyed by their Go type; two distinct Go types that
// share a name get separate entries, and only the first one registered under
// the name is reachable through Lookup.
type Registry struct {
	opts    options
	entries sync.Map // map[string]*registryEntry
	types   sync.Map // map[reflect.Type]*registryEntry
	size    atomic.Int64
}

type registryEntry struct {
	mapping schema.Mapping
	once    sync.Once
	ids     *Identifiers
	err     error
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Registry{opts: o}
}

// GetOrCreate returns the Identifiers registered under m.Name, extracting
// them from m on first use. Concurrent first calls extract exactly once.
// Registering an already known name with a different mapping fails with
// schema.ErrInvalidMapping.
func (r *Registry) GetOrCreate(m schema.Mapping) (*Identifiers, error) {
	if v, ok := r.entries.Load(m.Name); ok {
		return r.loadMatching(v.(*registryEntry), m)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	v, loaded := r.entries.LoadOrStore(m.Name, &registryEntry{mapping: m})
	if !loaded {
		r.size.Add(1)
	}
	return r.loadMatching(v.(*registryEntry), m)
}

func (r *Registry) loadMatching(e *registryEntry, m schema.Mapping) (*Identifiers, error) {
	if !e.mapping.Equal(m) {
		return nil, fmt.Errorf("%w: %s is already registered with a different mapping", schema.ErrInvalidMapping, m.Name)
	}
	return r.load(e)
}

// load runs the extraction for e exactly once; every caller gets its result.
func (r *Registry) load(e *registryEntry) (*Identifiers, error) {
	e.once.Do(func() { e.ids, e.err = r.newIdentifiers(e.mapping) })
	return e.ids, e.err
}

// MustGetOrCreate is GetOrCreate that panics on error.
func (r *Registry) MustGetOrCreate(m schema.Mapping) *Identifiers {
	ids, err := r.GetOrCreate(m)
	if err != nil {
		panic(err)
	}
	return ids
}

// RegisterAll registers every mapping, stopping at the first invalid one.
func (r *Registry) RegisterAll(mappings []schema.Mapping) error {
	for _, m := range mappings {
		if _, err := r.GetOrCreate(m); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the Identifiers registered under name.
func (r *Registry) Lookup(name string) (*Identifiers, bool) {
	v, ok := r.entries.Load(name)
	if !ok {
		return nil, false
	}
	ids, err := r.load(v.(*registryEntry))
	return ids, err == nil
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return int(r.size.Load())
}

// For returns the Identifiers of T, deriving its mapping from the struct
// definition (see schema.MappingOf). T and *T share an entry.
func For[T any](r *Registry) (*Identifiers, error) {
	return r.forType(reflect.TypeOf((*T)(nil)).Elem())
}

// MustFor is For that panics on error.
func MustFor[T any](r *Registry) *Identifiers {
	ids, err := For[T](r)
	if err != nil {
		panic(err)
	}
	return ids
}

func (r *Registry) forType(t reflect.Type) (*Identifiers, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v, ok := r.types.Load(t); ok {
		return r.load(v.(*registryEntry))
	}

	m, err := schema.MappingOf(t)
	if err != nil {
		return nil, err
	}

	e := &registryEntry{mapping: m}
	v, loaded := r.entries.LoadOrStore(m.Name, e)
	switch named := v.(*registryEntry); {
	case !loaded:
		r.size.Add(1)
	case named.mapping.Equal(m):
		e = named
	default:
		// the name belongs to another type; this entry is reachable by type only
		actual, loaded := r.types.LoadOrStore(t, e)
		if !loaded {
			r.size.Add(1)
		}
		return r.load(actual.(*registryEntry))
	}

	actual, _ := r.types.LoadOrStore(t, e)
	return r.load(actual.(*registryEntry))
}

func (r *Registry) newIdentifiers(m schema.Mapping) (*Identifiers, error) {
	table, columns := schema.Extract(m, r.opts.naming)

	qc, err := r.newCache(table.DisplayName, r.opts.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name, err)
	}

	byName := make(map[string]*schema.Column, len(columns))
	for _, c := range columns {
		byName[c.DisplayName] = c
	}

	ids := &Identifiers{
		table:   table,
		columns: columns,
		byName:  byName,
		cache:   qc,
		dialect: r.opts.dialect,
		strict:  r.opts.strict,
		logger:  r.opts.logger,
	}

	r.opts.logger.Debug("registered type",
		"type", table.DisplayName,
		"table", table.StorageName,
		"columns", len(columns),
	)
	return ids, nil
}

// newCache returns an unbounded cache for size <= 0 and an LRU otherwise.
func (r *Registry) newCache(typeName string, size int) (cache.QueryCache, error) {
	if size <= 0 {
		return cache.NewQueryCache(), nil
	}
	logger := r.opts.logger
	c, err := cache.NewLRUQueryCache(size, func(fingerprint uint32, _ string) {
		logger.Debug("evicted statement", "type", typeName, "fingerprint", fingerprint)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
