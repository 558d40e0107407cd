package adql

import "fmt"

// In checks an operand for membership in either a sub-query result or an
// explicit values list.
//
// The right-hand side is a tagged union: exactly one of the two alternatives
// is populated at any time, and setting one clears the other atomically.
//
// Traversal order: the tested operand, then whichever alternative is active.
// Both slots are required.
type In struct {
	base
	operand  Operand
	subquery *Query
	values   *OperandList
	negated  bool
}

// NewIn builds an IN predicate over an explicit values list.
func NewIn(operand Operand, values *OperandList, negated bool) (*In, error) {
	if err := requireOperand(operand, "an IN", "left operand"); err != nil {
		return nil, err
	}
	if values == nil {
		return nil, fmt.Errorf("%w: the values list of an IN", ErrNullArgument)
	}
	if err := adopt(operand); err != nil {
		return nil, err
	}
	if err := adopt(values); err != nil {
		release(operand)
		return nil, err
	}
	return &In{operand: operand, values: values, negated: negated}, nil
}

// NewInSubQuery builds an IN predicate over a sub-query.
func NewInSubQuery(operand Operand, sub *Query, negated bool) (*In, error) {
	if err := requireOperand(operand, "an IN", "left operand"); err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: the sub-query of an IN", ErrNullArgument)
	}
	if err := adopt(operand); err != nil {
		return nil, err
	}
	if err := adopt(sub); err != nil {
		release(operand)
		return nil, err
	}
	return &In{operand: operand, subquery: sub, negated: negated}, nil
}

// Left returns the tested operand.
func (n *In) Left() Operand { return n.operand }

// SubQuery returns the sub-query alternative, or nil when the values list is
// active.
func (n *In) SubQuery() *Query { return n.subquery }

// Values returns the values-list alternative, or nil when the sub-query is
// active.
func (n *In) Values() *OperandList { return n.values }

// Negated reports whether the predicate is NOT IN.
func (n *In) Negated() bool { return n.negated }

// SetNegated switches between IN and NOT IN.
func (n *In) SetNegated(v bool) {
	n.negated = v
	n.invalidatePosition()
}

// SetLeft replaces the tested operand and returns the displaced one.
func (n *In) SetLeft(op Operand) (Operand, error) {
	if err := requireOperand(op, "an IN", "left operand"); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := n.operand
	n.operand = op
	n.invalidatePosition()
	release(old)
	return old, nil
}

// SetSubQuery makes the sub-query the active alternative, atomically
// releasing whichever alternative was active before. It returns the displaced
// alternative (a *Query or an *OperandList), if any.
func (n *In) SetSubQuery(sub *Query) (Node, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: the sub-query of an IN", ErrNullArgument)
	}
	if err := adopt(sub); err != nil {
		return nil, err
	}
	old := n.activeAlternative()
	n.subquery = sub
	n.values = nil
	n.invalidatePosition()
	release(old)
	return old, nil
}

// SetValues makes the values list the active alternative, atomically
// releasing whichever alternative was active before. It returns the displaced
// alternative (a *Query or an *OperandList), if any.
func (n *In) SetValues(values *OperandList) (Node, error) {
	if values == nil {
		return nil, fmt.Errorf("%w: the values list of an IN", ErrNullArgument)
	}
	if err := adopt(values); err != nil {
		return nil, err
	}
	old := n.activeAlternative()
	n.values = values
	n.subquery = nil
	n.invalidatePosition()
	release(old)
	return old, nil
}

// activeAlternative returns the populated side of the tagged union.
func (n *In) activeAlternative() Node {
	if n.subquery != nil {
		return n.subquery
	}
	if n.values != nil {
		return n.values
	}
	return nil
}

func (n *In) Name() string {
	if n.negated {
		return "NOT IN"
	}
	return "IN"
}

func (n *In) Category() Category { return CategoryPredicate }
func (n *In) predicateNode()     {}

func (n *In) Copy() (Node, error) {
	operand, err := copyAs(n.operand, "left operand of an IN")
	if err != nil {
		return nil, err
	}
	if n.subquery != nil {
		sub, err := copyAs(n.subquery, "sub-query of an IN")
		if err != nil {
			return nil, err
		}
		clone, err := NewInSubQuery(operand, sub, n.negated)
		if err != nil {
			return nil, copyFailed("IN", err)
		}
		clone.SetPosition(n.Position().Copy())
		return clone, nil
	}
	values, err := copyAs(n.values, "values list of an IN")
	if err != nil {
		return nil, err
	}
	clone, err := NewIn(operand, values, n.negated)
	if err != nil {
		return nil, copyFailed("IN", err)
	}
	clone.SetPosition(n.Position().Copy())
	return clone, nil
}

func (n *In) ToADQL() string {
	rhs := ""
	if n.subquery != nil {
		rhs = "(" + n.subquery.ToADQL() + ")"
	} else if n.values != nil {
		rhs = n.values.ToADQL()
	}
	return n.operand.ToADQL() + " " + n.Name() + " " + rhs
}

func (n *In) Iterator() *Iterator { return newIterator(n) }

func (n *In) childSlots() []slot {
	return []slot{
		operandSlot("an IN", "left operand", func() Node { return n.operand },
			func(op Operand) (Node, error) { return slotSet(&n.operand, op, nil) }),
		{
			name: "right-hand side",
			get:  func() Node { return n.activeAlternative() },
			set: func(node Node) (Node, error) {
				// The union slot accepts either alternative; the inactive
				// one is cleared atomically.
				switch v := node.(type) {
				case *Query:
					if err := adopt(v); err != nil {
						return nil, err
					}
					old := n.activeAlternative()
					n.subquery = v
					n.values = nil
					return old, nil
				case *OperandList:
					if err := adopt(v); err != nil {
						return nil, err
					}
					old := n.activeAlternative()
					n.values = v
					n.subquery = nil
					return old, nil
				default:
					return nil, fmt.Errorf("%w: the right-hand side of an IN expects a %s or a %s, got a %s",
						ErrUnsupportedMutation, CategoryQuery, CategoryContainer, node.Category())
				}
			},
		},
	}
}
