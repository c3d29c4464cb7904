package query

import (
	"sync"

	"github.com/jackc/pgx/v5"
)

var selectBuilderPool = sync.Pool{
	New: func() any {
		return &SelectBuilder{}
	},
}

// SelectBuilder assembles a Request fluently against one registry entry.
//
//	sql, err := authors.Query().
//		WhereEq("LastName", "Smith").
//		OrWhereLike("Title", "%Go%").
//		LeftJoin(books, query.On{Left: "productName", Right: "ProductID"}).
//		Build()
//
// The first error (unknown column, invalid join) is kept and returned by
// Build; later calls are still recorded but never reported.
type SelectBuilder struct {
	ids     *Identifiers
	columns []string
	groups  [][]Filter
	joins   []Join
	err     error
}

// Query returns a builder for a SELECT against this registry's table. Call
// Release when the builder is no longer needed to return it to the pool.
func (ids *Identifiers) Query() *SelectBuilder {
	sb := selectBuilderPool.Get().(*SelectBuilder)
	sb.ids = ids
	return sb
}

// Release resets the builder and returns it to the pool.
func (sb *SelectBuilder) Release() {
	sb.ids = nil
	sb.columns = sb.columns[:0]
	sb.groups = nil
	sb.joins = sb.joins[:0]
	sb.err = nil
	selectBuilderPool.Put(sb)
}

func (sb *SelectBuilder) fail(err error) *SelectBuilder {
	if sb.err == nil {
		sb.err = err
	}
	return sb
}

// Columns restricts the select list to the given display names.
func (sb *SelectBuilder) Columns(names ...string) *SelectBuilder {
	sb.columns = append(sb.columns, names...)
	return sb
}

// Where adds filters to the current group (AND).
func (sb *SelectBuilder) Where(filters ...Filter) *SelectBuilder {
	if len(sb.groups) == 0 {
		sb.groups = append(sb.groups, nil)
	}
	last := len(sb.groups) - 1
	sb.groups[last] = append(sb.groups[last], filters...)
	return sb
}

// Or starts a new group (OR) holding filters.
func (sb *SelectBuilder) Or(filters ...Filter) *SelectBuilder {
	sb.groups = append(sb.groups, append([]Filter(nil), filters...))
	return sb
}

// WhereOp adds a filter on the named column of the builder's own table.
func (sb *SelectBuilder) WhereOp(name string, op Operator, value any) *SelectBuilder {
	f, err := sb.ids.Filter(name, op, value)
	if err != nil {
		return sb.fail(err)
	}
	return sb.Where(f)
}

func (sb *SelectBuilder) orWhereOp(name string, op Operator, value any) *SelectBuilder {
	f, err := sb.ids.Filter(name, op, value)
	if err != nil {
		return sb.fail(err)
	}
	return sb.Or(f)
}

func (sb *SelectBuilder) WhereEq(name string, value any) *SelectBuilder {
	return sb.WhereOp(name, EqualTo, value)
}

func (sb *SelectBuilder) WhereLt(name string, value any) *SelectBuilder {
	return sb.WhereOp(name, LessThan, value)
}

func (sb *SelectBuilder) WhereLte(name string, value any) *SelectBuilder {
	return sb.WhereOp(name, LessThanOrEqualTo, value)
}

func (sb *SelectBuilder) WhereGt(name string, value any) *SelectBuilder {
	return sb.WhereOp(name, GreaterThan, value)
}

func (sb *SelectBuilder) WhereGte(name string, value any) *SelectBuilder {
	return sb.WhereOp(name, GreaterThanOrEqualTo, value)
}

func (sb *SelectBuilder) WhereLike(name string, pattern string) *SelectBuilder {
	return sb.WhereOp(name, Like, pattern)
}

// OR WHERE methods
func (sb *SelectBuilder) OrWhereEq(name string, value any) *SelectBuilder {
	return sb.orWhereOp(name, EqualTo, value)
}

func (sb *SelectBuilder) OrWhereLike(name string, pattern string) *SelectBuilder {
	return sb.orWhereOp(name, Like, pattern)
}

// Join appends a prepared join.
func (sb *SelectBuilder) Join(j Join) *SelectBuilder {
	if err := j.validate(); err != nil {
		return sb.fail(err)
	}
	sb.joins = append(sb.joins, j)
	return sb
}

func (sb *SelectBuilder) join(kind JoinKind, right *Identifiers, on []On) *SelectBuilder {
	j, err := NewJoin(sb.ids, right, kind, on...)
	if err != nil {
		return sb.fail(err)
	}
	sb.joins = append(sb.joins, j)
	return sb
}

func (sb *SelectBuilder) LeftJoin(right *Identifiers, on ...On) *SelectBuilder {
	return sb.join(JoinLeft, right, on)
}

func (sb *SelectBuilder) RightJoin(right *Identifiers, on ...On) *SelectBuilder {
	return sb.join(JoinRight, right, on)
}

func (sb *SelectBuilder) InnerJoin(right *Identifiers, on ...On) *SelectBuilder {
	return sb.join(JoinInner, right, on)
}

func (sb *SelectBuilder) FullJoin(right *Identifiers, on ...On) *SelectBuilder {
	return sb.join(JoinFull, right, on)
}

// Request returns the assembled request. The slices are copies.
func (sb *SelectBuilder) Request() Request {
	req := Request{
		Columns: append([]string(nil), sb.columns...),
		Joins:   append([]Join(nil), sb.joins...),
	}
	if len(sb.groups) > 0 {
		req.Where = make([][]Filter, len(sb.groups))
		for i, g := range sb.groups {
			req.Where[i] = append([]Filter(nil), g...)
		}
	}
	return req
}

// Build renders the statement.
func (sb *SelectBuilder) Build() (string, error) {
	if sb.err != nil {
		return "", sb.err
	}
	return sb.ids.Compose(sb.Request())
}

// ToSQL renders the statement together with its named arguments.
func (sb *SelectBuilder) ToSQL() (string, pgx.NamedArgs, error) {
	sql, err := sb.Build()
	if err != nil {
		return "", nil, err
	}
	args, err := NamedArgs(sb.groups...)
	if err != nil {
		return "", nil, err
	}
	return sql, args, nil
}
