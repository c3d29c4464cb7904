package schema

import "github.com/Konsultn-Engineering/sqlfy/utils"

// Table binds a data-model type to its physical table. DisplayName is the
// type's own name and doubles as the statement alias.
type Table struct {
	StorageName string
	DisplayName string
}

// Hash returns the structural hash of the table names.
func (t *Table) Hash() uint32 {
	acc := utils.OffsetBasis32
	acc = utils.Mix32(acc, utils.U32(t.StorageName))
	acc = utils.Mix32(acc, utils.U32(t.DisplayName))
	return acc
}

// Column binds a data-model field to its physical column.
//
// Equal and Hash ignore the owning table, so two columns with the same storage
// and display names compare equal. StrictEqual and StrictHash include the
// owning table alias.
type Column struct {
	StorageName string
	DisplayName string
	Table       *Table
}

// Equal reports whether c and o have the same storage and display names.
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.StorageName == o.StorageName && c.DisplayName == o.DisplayName
}

// StrictEqual is Equal plus a matching owning table alias.
func (c *Column) StrictEqual(o *Column) bool {
	return c.Equal(o) && c.tableName() == o.tableName()
}

// Hash returns the loose structural hash (storage name, then display name).
func (c *Column) Hash() uint32 {
	acc := utils.OffsetBasis32
	acc = utils.Mix32(acc, utils.U32(c.StorageName))
	acc = utils.Mix32(acc, utils.U32(c.DisplayName))
	return acc
}

// StrictHash folds the owning table alias into Hash.
func (c *Column) StrictHash() uint32 {
	return utils.Mix32(c.Hash(), utils.U32(c.tableName()))
}

func (c *Column) tableName() string {
	if c == nil || c.Table == nil {
		return ""
	}
	return c.Table.DisplayName
}

// TableNamer lets a model override its table storage name.
type TableNamer interface {
	TableName() string
}
