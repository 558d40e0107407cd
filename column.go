package adql

import "fmt"

// Column is a reference to a table column, optionally qualified by a table
// or alias name.
//
// A freshly built column is unresolved: its TypeClass is TypeUnknown, which
// answers true to all three type views. A checker that resolves the column
// against database metadata calls BindType to pin the class down.
type Column struct {
	base
	name           string
	delimited      bool
	table          string
	tableDelimited bool
	class          TypeClass
}

// NewColumn builds an unqualified column reference.
func NewColumn(name string) (*Column, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: the name of a column", ErrNullArgument)
	}
	return &Column{name: name}, nil
}

// NewQualifiedColumn builds a table-qualified column reference.
func NewQualifiedColumn(table, name string) (*Column, error) {
	c, err := NewColumn(name)
	if err != nil {
		return nil, err
	}
	c.table = table
	return c, nil
}

// ColumnName returns the bare (unquoted) column name.
func (c *Column) ColumnName() string { return c.name }

// Table returns the qualifying table or alias name, or "" when unqualified.
func (c *Column) Table() string { return c.table }

// Delimited reports whether the column name was double-quoted in the source.
func (c *Column) Delimited() bool { return c.delimited }

// SetDelimited records whether the column name is a delimited identifier.
func (c *Column) SetDelimited(column, table bool) {
	c.delimited = column
	c.tableDelimited = table
}

// BindType resolves the column to a concrete type class. Passing TypeUnknown
// returns the column to its permissive unresolved state.
func (c *Column) BindType(class TypeClass) { c.class = class }

func (c *Column) TypeClass() TypeClass { return c.class }

func (c *Column) Name() string       { return c.name }
func (c *Column) Category() Category { return CategoryOperand }
func (c *Column) operandNode()       {}

func (c *Column) Copy() (Node, error) {
	clone := &Column{
		name:           c.name,
		delimited:      c.delimited,
		table:          c.table,
		tableDelimited: c.tableDelimited,
		class:          c.class,
	}
	clone.SetPosition(c.Position().Copy())
	return clone, nil
}

func (c *Column) ToADQL() string {
	if c.table == "" {
		return renderIdent(c.name, c.delimited)
	}
	return renderIdent(c.table, c.tableDelimited) + "." + renderIdent(c.name, c.delimited)
}

func (c *Column) Iterator() *Iterator { return newIterator(c) }
func (c *Column) childSlots() []slot  { return nil }
