package query

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/sqlfy/schema"
	"github.com/Konsultn-Engineering/sqlfy/utils"
)

// Filter is one comparison predicate: column, operator and an opaque value.
// The value never reaches the SQL text; the column's display name is used as
// the placeholder. Filters must not be modified after they are passed to a
// compose call, since their hash is the cache key.
type Filter struct {
	Column   *schema.Column
	Operator Operator
	Value    any
}

// NewFilter creates a filter. The column must be non-nil and belong to a table.
func NewFilter(column *schema.Column, op Operator, value any) (Filter, error) {
	if column == nil {
		return Filter{}, ErrNilColumn
	}
	if column.Table == nil {
		return Filter{}, fmt.Errorf("%w: column %s has no table", ErrNilColumn, column.DisplayName)
	}
	return Filter{Column: column, Operator: op, Value: value}, nil
}

// MustFilter is NewFilter that panics on error.
func MustFilter(column *schema.Column, op Operator, value any) Filter {
	f, err := NewFilter(column, op, value)
	if err != nil {
		panic(err)
	}
	return f
}

// Hash returns the structural hash: column, value (when non-nil), operator.
func (f Filter) Hash() uint32 {
	return f.hash(false)
}

func (f Filter) hash(strict bool) uint32 {
	acc := utils.OffsetBasis32
	if strict {
		acc = utils.Mix32(acc, f.Column.StrictHash())
	} else {
		acc = utils.Mix32(acc, f.Column.Hash())
	}
	if f.Value != nil {
		acc = utils.Mix32(acc, utils.ValueHash(f.Value))
	}
	acc = utils.Mix32(acc, uint32(f.Operator))
	return acc
}

// Equal reports structural equality.
func (f Filter) Equal(o Filter) bool {
	return f.Column.Equal(o.Column) &&
		f.Operator == o.Operator &&
		reflect.DeepEqual(f.Value, o.Value)
}

func (f Filter) String() string {
	name := "<nil>"
	if f.Column != nil {
		name = f.Column.DisplayName
	}
	return fmt.Sprintf("%s %s %v", name, f.Operator, f.Value)
}
