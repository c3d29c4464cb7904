package query

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// NamedArgs collects filter values keyed by placeholder name, ready to be
// passed with the composed SQL to pgx. Filters without a column are skipped.
// A placeholder bound to two different values fails with ErrConflictingArgs.
func NamedArgs(groups ...[]Filter) (pgx.NamedArgs, error) {
	args := pgx.NamedArgs{}
	for _, g := range groups {
		for _, f := range g {
			if f.Column == nil {
				continue
			}
			name := f.Column.DisplayName
			if prev, ok := args[name]; ok {
				if !reflect.DeepEqual(prev, f.Value) {
					return nil, fmt.Errorf("%w: @%s is %v and %v", ErrConflictingArgs, name, prev, f.Value)
				}
				continue
			}
			args[name] = f.Value
		}
	}
	return args, nil
}
