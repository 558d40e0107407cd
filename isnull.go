package adql

import "fmt"

// IsNull checks a column for SQL NULL.
//
// Traversal order: the single column child; the slot is required.
type IsNull struct {
	base
	column  *Column
	negated bool
}

// NewIsNull builds an IS NULL (or, negated, IS NOT NULL) predicate.
func NewIsNull(column *Column, negated bool) (*IsNull, error) {
	if column == nil {
		return nil, fmt.Errorf("%w: the column of an IS NULL", ErrNullArgument)
	}
	if err := adopt(column); err != nil {
		return nil, err
	}
	return &IsNull{column: column, negated: negated}, nil
}

// Column returns the tested column.
func (n *IsNull) Column() *Column { return n.column }

// Negated reports whether the predicate is IS NOT NULL.
func (n *IsNull) Negated() bool { return n.negated }

// SetNegated switches between IS NULL and IS NOT NULL.
func (n *IsNull) SetNegated(v bool) {
	n.negated = v
	n.invalidatePosition()
}

// SetColumn replaces the tested column and returns the displaced one.
func (n *IsNull) SetColumn(c *Column) (*Column, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: the column of an IS NULL", ErrNullArgument)
	}
	if err := adopt(c); err != nil {
		return nil, err
	}
	old := n.column
	n.column = c
	n.invalidatePosition()
	release(old)
	return old, nil
}

func (n *IsNull) Name() string {
	if n.negated {
		return "IS NOT NULL"
	}
	return "IS NULL"
}

func (n *IsNull) Category() Category { return CategoryPredicate }
func (n *IsNull) predicateNode()     {}

func (n *IsNull) Copy() (Node, error) {
	column, err := copyAs(n.column, "column of an IS NULL")
	if err != nil {
		return nil, err
	}
	clone, err := NewIsNull(column, n.negated)
	if err != nil {
		return nil, copyFailed("IS NULL", err)
	}
	clone.SetPosition(n.Position().Copy())
	return clone, nil
}

func (n *IsNull) ToADQL() string {
	return n.column.ToADQL() + " " + n.Name()
}

func (n *IsNull) Iterator() *Iterator { return newIterator(n) }

func (n *IsNull) childSlots() []slot {
	return []slot{{
		name: "column",
		get:  func() Node { return n.column },
		set: func(node Node) (Node, error) {
			c, ok := node.(*Column)
			if !ok {
				return nil, categoryErr("an IS NULL", "column", CategoryOperand, node)
			}
			if err := adopt(c); err != nil {
				return nil, err
			}
			old := n.column
			n.column = c
			return old, nil
		},
	}}
}
