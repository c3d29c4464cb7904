package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Konsultn-Engineering/sqlfy/schema"
	"github.com/Konsultn-Engineering/sqlfy/utils"
)

// Request describes one SELECT.
//
// Columns restricts the select list to the given display names; empty means
// every column of the registry and of all joined registries. Where holds
// OR-combined groups of AND-combined filters; empty groups are ignored.
type Request struct {
	Columns []string
	Where   [][]Filter
	Joins   []Join
}

// SelectAll renders a SELECT of every column with no filter or join.
func (ids *Identifiers) SelectAll() (string, error) {
	return ids.Compose(Request{})
}

// Select renders a SELECT whose filters form a single AND group.
func (ids *Identifiers) Select(columns []string, filters []Filter, joins ...Join) (string, error) {
	return ids.Compose(Request{Columns: columns, Where: [][]Filter{filters}, Joins: joins})
}

// SelectGroups renders a SELECT whose filter groups are OR-combined.
func (ids *Identifiers) SelectGroups(columns []string, groups [][]Filter, joins ...Join) (string, error) {
	return ids.Compose(Request{Columns: columns, Where: groups, Joins: joins})
}

// Compose renders req against this registry's table:
//
//	SELECT <cols> FROM <table> AS <alias>[ <join>]*[ WHERE (<group>)[ OR (<group>)]*]
//
// Statements are cached by a structural fingerprint of the resolved columns,
// filter groups and joins; a cache hit returns the stored text without
// rendering. Nothing is cached when rendering fails.
func (ids *Identifiers) Compose(req Request) (string, error) {
	groups, err := nonEmptyGroups(req.Where)
	if err != nil {
		return "", err
	}
	for _, j := range req.Joins {
		if err := j.validate(); err != nil {
			return "", err
		}
	}

	columns := ids.resolveColumns(req.Columns, req.Joins)
	if len(columns) == 0 {
		return "", fmt.Errorf("%w: %s with columns %v", ErrNoColumns, ids.Name(), req.Columns)
	}

	fp := ids.fingerprint(columns, groups, req.Joins)
	if sql, ok := ids.cache.GetSQL(fp); ok {
		ids.hits.Add(1)
		return sql, nil
	}
	ids.misses.Add(1)

	sql, err := ids.render(columns, groups, req.Joins)
	if err != nil {
		return "", err
	}
	ids.cache.SetSQL(fp, sql)

	ids.logger.Debug("rendered statement",
		"type", ids.Name(),
		"fingerprint", fp,
		"sql", sql,
	)
	return sql, nil
}

// nonEmptyGroups drops empty groups and rejects filters without a column.
func nonEmptyGroups(where [][]Filter) ([][]Filter, error) {
	groups := make([][]Filter, 0, len(where))
	for _, g := range where {
		if len(g) == 0 {
			continue
		}
		for _, f := range g {
			if f.Column == nil || f.Column.Table == nil {
				return nil, ErrNilColumn
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// resolveColumns returns the registry's own columns followed by every joined
// registry's columns not already present, restricted to names when given.
func (ids *Identifiers) resolveColumns(names []string, joins []Join) []*schema.Column {
	all := slices.Clone(ids.columns)
	for _, j := range joins {
		all = ids.appendMissing(all, j.Left.columns)
		all = ids.appendMissing(all, j.Right.columns)
	}

	if len(names) == 0 {
		return all
	}
	selected := all[:0]
	for _, c := range all {
		if slices.Contains(names, c.DisplayName) {
			selected = append(selected, c)
		}
	}
	return selected
}

func (ids *Identifiers) appendMissing(dst, src []*schema.Column) []*schema.Column {
	for _, c := range src {
		if !slices.ContainsFunc(dst, func(have *schema.Column) bool { return ids.sameColumn(have, c) }) {
			dst = append(dst, c)
		}
	}
	return dst
}

func (ids *Identifiers) sameColumn(a, b *schema.Column) bool {
	if ids.strict {
		return a.StrictEqual(b)
	}
	return a.Equal(b)
}

func (ids *Identifiers) columnHash(c *schema.Column) uint32 {
	if ids.strict {
		return c.StrictHash()
	}
	return c.Hash()
}

// fingerprint folds columns, then each filter group, then joins.
func (ids *Identifiers) fingerprint(columns []*schema.Column, groups [][]Filter, joins []Join) uint32 {
	acc := utils.OffsetBasis32

	cols := utils.OffsetBasis32
	for _, c := range columns {
		cols = utils.Mix32(cols, ids.columnHash(c))
	}
	acc = utils.Mix32(acc, cols)

	for _, g := range groups {
		group := utils.OffsetBasis32
		for _, f := range g {
			group = utils.Mix32(group, f.hash(ids.strict))
		}
		acc = utils.Mix32(acc, group)
	}

	return utils.Mix32(acc, utils.ListHash(joins))
}

func (ids *Identifiers) render(columns []*schema.Column, groups [][]Filter, joins []Join) (string, error) {
	q := ids.dialect.QuoteIdentifier

	var sb strings.Builder
	sb.Grow(64 + 32*len(columns))

	sb.WriteString("SELECT ")
	for i, c := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(q(c.Table.DisplayName))
		sb.WriteByte('.')
		sb.WriteString(q(c.StorageName))
		sb.WriteString(" AS ")
		sb.WriteString(q(c.DisplayName))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(q(ids.table.StorageName))
	sb.WriteString(" AS ")
	sb.WriteString(q(ids.table.DisplayName))

	for _, j := range joins {
		if err := ids.renderJoin(&sb, j); err != nil {
			return "", err
		}
	}

	for i, g := range groups {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" OR ")
		}
		if err := ids.renderGroup(&sb, g); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// renderJoin writes every ON clause in order, AND-combined.
func (ids *Identifiers) renderJoin(sb *strings.Builder, j Join) error {
	kw, err := j.Kind.keyword()
	if err != nil {
		return err
	}
	q := ids.dialect.QuoteIdentifier
	left, right := j.Left.table, j.Right.table

	sb.WriteByte(' ')
	sb.WriteString(kw)
	sb.WriteString(" JOIN ")
	sb.WriteString(q(right.StorageName))
	sb.WriteString(" AS ")
	sb.WriteString(q(right.DisplayName))

	for i, on := range j.Clauses {
		if i == 0 {
			sb.WriteString(" ON ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(q(left.DisplayName))
		sb.WriteByte('.')
		sb.WriteString(q(on.Left))
		sb.WriteString(" = ")
		sb.WriteString(q(right.DisplayName))
		sb.WriteByte('.')
		sb.WriteString(q(on.Right))
	}
	return nil
}

func (ids *Identifiers) renderGroup(sb *strings.Builder, g []Filter) error {
	q := ids.dialect.QuoteIdentifier

	sb.WriteByte('(')
	for i, f := range g {
		tok, err := f.Operator.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", f.Column.DisplayName, err)
		}
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(q(f.Column.Table.DisplayName))
		sb.WriteByte('.')
		sb.WriteString(q(f.Column.StorageName))
		sb.WriteByte(' ')
		sb.WriteString(tok)
		sb.WriteByte(' ')
		sb.WriteString(ids.dialect.Placeholder(f.Column.DisplayName))
	}
	sb.WriteByte(')')
	return nil
}
