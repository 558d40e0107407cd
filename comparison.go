package adql

import "fmt"

// ComparisonOp enumerates the comparison operators.
//
// OpUnset is the zero value: a transient, non-final construction state that
// only exists for diagnostic serialization. A finished Comparison never
// carries it; every constructor and setter rejects it.
type ComparisonOp int

const (
	OpUnset ComparisonOp = iota
	OpEqual
	OpNotEqual
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
	OpLike
	OpNotLike
	OpILike
	OpNotILike
)

func (op ComparisonOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLess:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpLike:
		return "LIKE"
	case OpNotLike:
		return "NOT LIKE"
	case OpILike:
		return "ILIKE"
	case OpNotILike:
		return "NOT ILIKE"
	default:
		return "???"
	}
}

// stringOnly reports whether the operator accepts only string operands.
func (op ComparisonOp) stringOnly() bool {
	switch op {
	case OpLike, OpNotLike, OpILike, OpNotILike:
		return true
	default:
		return false
	}
}

// ComparisonOpOf resolves an operator from its textual form ("=", "<>",
// "LIKE", ...). The match on keyword operators is case-insensitive.
func ComparisonOpOf(text string) (ComparisonOp, error) {
	for op := OpEqual; op <= OpNotILike; op++ {
		if identEqual(text, false, op.String(), false) {
			return op, nil
		}
	}
	return OpUnset, fmt.Errorf("%w: unknown comparison operator %q", ErrNullArgument, text)
}

// Comparison relates two operands with a comparison operator.
//
// Both operands must be numeric, or both string; the LIKE family additionally
// requires both operands to be string-capable. An incompatible pairing fails
// with ErrTypeMismatch at construction and on every mutation.
//
// Traversal order: left operand, then right operand (the operator is an
// attribute, not a child). Both slots are required.
type Comparison struct {
	base
	op    ComparisonOp
	left  Operand
	right Operand
}

// NewComparison builds a comparison predicate.
func NewComparison(left Operand, op ComparisonOp, right Operand) (*Comparison, error) {
	if err := requireOperand(left, "a comparison", "left operand"); err != nil {
		return nil, err
	}
	if err := requireOperand(right, "a comparison", "right operand"); err != nil {
		return nil, err
	}
	if op == OpUnset {
		return nil, fmt.Errorf("%w: the operator of a comparison", ErrNullArgument)
	}
	if err := checkComparison(left, op, right); err != nil {
		return nil, err
	}
	if err := adopt(left); err != nil {
		return nil, err
	}
	if err := adopt(right); err != nil {
		release(left)
		return nil, err
	}
	return &Comparison{op: op, left: left, right: right}, nil
}

// checkComparison enforces the operand compatibility rules of one operator.
func checkComparison(left Operand, op ComparisonOp, right Operand) error {
	if op.stringOnly() {
		if !left.TypeClass().IsString() {
			return fmt.Errorf("%w: %s requires string operands, the left operand is %s",
				ErrTypeMismatch, op, left.TypeClass())
		}
		if !right.TypeClass().IsString() {
			return fmt.Errorf("%w: %s requires string operands, the right operand is %s",
				ErrTypeMismatch, op, right.TypeClass())
		}
		return nil
	}
	if !left.TypeClass().comparable(right.TypeClass()) {
		return fmt.Errorf("%w: cannot compare a %s operand with a %s operand",
			ErrTypeMismatch, left.TypeClass(), right.TypeClass())
	}
	return nil
}

// Left returns the left operand.
func (c *Comparison) Left() Operand { return c.left }

// Right returns the right operand.
func (c *Comparison) Right() Operand { return c.right }

// Operator returns the comparison operator.
func (c *Comparison) Operator() ComparisonOp { return c.op }

// SetOperator changes the operator, re-checking it against the current
// operands.
func (c *Comparison) SetOperator(op ComparisonOp) error {
	if op == OpUnset {
		return fmt.Errorf("%w: the operator of a comparison", ErrNullArgument)
	}
	if err := checkComparison(c.left, op, c.right); err != nil {
		return err
	}
	c.op = op
	c.invalidatePosition()
	return nil
}

// SetLeft replaces the left operand and returns the displaced one.
func (c *Comparison) SetLeft(op Operand) (Operand, error) {
	if err := requireOperand(op, "a comparison", "left operand"); err != nil {
		return nil, err
	}
	if err := checkComparison(op, c.op, c.right); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := c.left
	c.left = op
	c.invalidatePosition()
	release(old)
	return old, nil
}

// SetRight replaces the right operand and returns the displaced one.
func (c *Comparison) SetRight(op Operand) (Operand, error) {
	if err := requireOperand(op, "a comparison", "right operand"); err != nil {
		return nil, err
	}
	if err := checkComparison(c.left, c.op, op); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := c.right
	c.right = op
	c.invalidatePosition()
	release(old)
	return old, nil
}

func (c *Comparison) Name() string       { return c.op.String() }
func (c *Comparison) Category() Category { return CategoryPredicate }
func (c *Comparison) predicateNode()     {}

func (c *Comparison) Copy() (Node, error) {
	left, err := copyAs(c.left, "left operand of a comparison")
	if err != nil {
		return nil, err
	}
	right, err := copyAs(c.right, "right operand of a comparison")
	if err != nil {
		return nil, err
	}
	clone, err := NewComparison(left, c.op, right)
	if err != nil {
		return nil, copyFailed("comparison", err)
	}
	clone.SetPosition(c.Position().Copy())
	return clone, nil
}

func (c *Comparison) ToADQL() string {
	return c.left.ToADQL() + " " + c.op.String() + " " + c.right.ToADQL()
}

func (c *Comparison) Iterator() *Iterator { return newIterator(c) }

func (c *Comparison) childSlots() []slot {
	return []slot{
		operandSlot("a comparison", "left operand", func() Node { return c.left },
			func(op Operand) (Node, error) {
				return slotSet(&c.left, op, func(op Operand) error {
					return checkComparison(op, c.op, c.right)
				})
			}),
		operandSlot("a comparison", "right operand", func() Node { return c.right },
			func(op Operand) (Node, error) {
				return slotSet(&c.right, op, func(op Operand) error {
					return checkComparison(c.left, c.op, op)
				})
			}),
	}
}
