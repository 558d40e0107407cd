package adql

import "fmt"

// OperationType enumerates the binary arithmetic operators.
type OperationType int

const (
	OpAdd OperationType = iota
	OpSubtract
	OpMultiply
	OpDivide
)

func (t OperationType) String() string {
	switch t {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "?"
	}
}

// Operation is a binary arithmetic expression. Both operands must be
// numeric-capable.
//
// Traversal order: left operand, then right operand (the operator is an
// attribute, not a child). Both slots are required.
type Operation struct {
	base
	op    OperationType
	left  Operand
	right Operand
}

// NewOperation builds a binary arithmetic expression.
func NewOperation(left Operand, op OperationType, right Operand) (*Operation, error) {
	if err := requireOperand(left, "an operation", "left operand"); err != nil {
		return nil, err
	}
	if err := requireOperand(right, "an operation", "right operand"); err != nil {
		return nil, err
	}
	if err := checkNumericOperand(left, "left operand", "operation "+op.String()); err != nil {
		return nil, err
	}
	if err := checkNumericOperand(right, "right operand", "operation "+op.String()); err != nil {
		return nil, err
	}
	if err := adopt(left); err != nil {
		return nil, err
	}
	if err := adopt(right); err != nil {
		release(left)
		return nil, err
	}
	return &Operation{op: op, left: left, right: right}, nil
}

// checkNumericOperand rejects an operand that cannot produce a number.
func checkNumericOperand(op Operand, slotName, owner string) error {
	if !op.TypeClass().IsNumeric() {
		return fmt.Errorf("%w: the %s of %s must be numeric, got a %s operand",
			ErrTypeMismatch, slotName, owner, op.TypeClass())
	}
	return nil
}

// Left returns the left operand.
func (o *Operation) Left() Operand { return o.left }

// Right returns the right operand.
func (o *Operation) Right() Operand { return o.right }

// Operator returns the arithmetic operator.
func (o *Operation) Operator() OperationType { return o.op }

// SetLeft replaces the left operand and returns the displaced one.
func (o *Operation) SetLeft(op Operand) (Operand, error) {
	return o.setSide(&o.left, op, "left operand")
}

// SetRight replaces the right operand and returns the displaced one.
func (o *Operation) SetRight(op Operand) (Operand, error) {
	return o.setSide(&o.right, op, "right operand")
}

func (o *Operation) setSide(side *Operand, op Operand, slotName string) (Operand, error) {
	if err := requireOperand(op, "an operation", slotName); err != nil {
		return nil, err
	}
	if err := checkNumericOperand(op, slotName, "operation "+o.op.String()); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := *side
	*side = op
	o.invalidatePosition()
	release(old)
	return old, nil
}

func (o *Operation) TypeClass() TypeClass { return TypeNumeric }
func (o *Operation) Name() string         { return o.op.String() }
func (o *Operation) Category() Category   { return CategoryOperand }
func (o *Operation) operandNode()         {}

func (o *Operation) Copy() (Node, error) {
	left, err := copyAs(o.left, "left operand of an operation")
	if err != nil {
		return nil, err
	}
	right, err := copyAs(o.right, "right operand of an operation")
	if err != nil {
		return nil, err
	}
	clone, err := NewOperation(left, o.op, right)
	if err != nil {
		return nil, copyFailed("operation", err)
	}
	clone.SetPosition(o.Position().Copy())
	return clone, nil
}

func (o *Operation) ToADQL() string {
	return groupedADQL(o.left) + o.op.String() + groupedADQL(o.right)
}

// groupedADQL parenthesizes compound arithmetic sub-expressions so that a
// re-parse of the serialized text reproduces the tree shape; leaves and
// calls render bare.
func groupedADQL(op Operand) string {
	switch op.(type) {
	case *Operation, *Negation:
		return "(" + op.ToADQL() + ")"
	}
	return op.ToADQL()
}

func (o *Operation) Iterator() *Iterator { return newIterator(o) }

func (o *Operation) childSlots() []slot {
	return []slot{
		operandSlot("an operation", "left operand", func() Node { return o.left },
			func(op Operand) (Node, error) { return slotSet(&o.left, op, checkNumericOperation(o)) }),
		operandSlot("an operation", "right operand", func() Node { return o.right },
			func(op Operand) (Node, error) { return slotSet(&o.right, op, checkNumericOperation(o)) }),
	}
}

// checkNumericOperation adapts checkNumericOperand to the slot engine.
func checkNumericOperation(o *Operation) func(Operand) error {
	return func(op Operand) error {
		return checkNumericOperand(op, "operand", "operation "+o.op.String())
	}
}

// operandSlot builds a required operand slot with a validated setter.
func operandSlot(owner, name string, get func() Node, set func(Operand) (Node, error)) slot {
	return slot{
		name: name,
		get:  get,
		set: func(n Node) (Node, error) {
			op, err := asOperand(owner, name, n)
			if err != nil {
				return nil, err
			}
			return set(op)
		},
	}
}

// slotSet is the shared required-operand slot mutator: validate, adopt and
// swap, returning the displaced child unreleased (the iterator releases it).
func slotSet(side *Operand, op Operand, check func(Operand) error) (Node, error) {
	if check != nil {
		if err := check(op); err != nil {
			return nil, err
		}
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := *side
	*side = op
	return old, nil
}

// Negation is a unary minus over a numeric operand.
//
// Traversal order: the single inner operand; the slot is required.
type Negation struct {
	base
	inner Operand
}

// NewNegation builds a unary minus.
func NewNegation(inner Operand) (*Negation, error) {
	if err := requireOperand(inner, "a negation", "operand"); err != nil {
		return nil, err
	}
	if err := checkNumericOperand(inner, "operand", "a negation"); err != nil {
		return nil, err
	}
	if err := adopt(inner); err != nil {
		return nil, err
	}
	return &Negation{inner: inner}, nil
}

// Inner returns the negated operand.
func (n *Negation) Inner() Operand { return n.inner }

// SetInner replaces the negated operand and returns the displaced one.
func (n *Negation) SetInner(op Operand) (Operand, error) {
	if err := requireOperand(op, "a negation", "operand"); err != nil {
		return nil, err
	}
	if err := checkNumericOperand(op, "operand", "a negation"); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := n.inner
	n.inner = op
	n.invalidatePosition()
	release(old)
	return old, nil
}

func (n *Negation) TypeClass() TypeClass { return TypeNumeric }
func (n *Negation) Name() string         { return "NEGATIVE" }
func (n *Negation) Category() Category   { return CategoryOperand }
func (n *Negation) operandNode()         {}

func (n *Negation) Copy() (Node, error) {
	inner, err := copyAs(n.inner, "operand of a negation")
	if err != nil {
		return nil, err
	}
	clone, err := NewNegation(inner)
	if err != nil {
		return nil, copyFailed("negation", err)
	}
	clone.SetPosition(n.Position().Copy())
	return clone, nil
}

func (n *Negation) ToADQL() string      { return "-" + groupedADQL(n.inner) }
func (n *Negation) Iterator() *Iterator { return newIterator(n) }

func (n *Negation) childSlots() []slot {
	return []slot{
		operandSlot("a negation", "operand", func() Node { return n.inner },
			func(op Operand) (Node, error) {
				return slotSet(&n.inner, op, func(op Operand) error {
					return checkNumericOperand(op, "operand", "a negation")
				})
			}),
	}
}

// Concatenation is the string concatenation of two or more operands,
// serialized with the || operator. Every element must be string-capable.
//
// Traversal order: the operands in insertion order; every slot is removable.
type Concatenation struct {
	nodeList[Operand]
}

// NewConcatenation builds a string concatenation.
func NewConcatenation(parts ...Operand) (*Concatenation, error) {
	c := &Concatenation{nodeList[Operand]{
		label:   "CONCAT",
		elemCat: CategoryOperand,
		check: func(op Operand) error {
			if !op.TypeClass().IsString() {
				return fmt.Errorf("%w: every part of a concatenation must be a string, got a %s operand",
					ErrTypeMismatch, op.TypeClass())
			}
			return nil
		},
	}}
	for _, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("%w: a part of a concatenation", ErrNullArgument)
		}
		if err := c.Append(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Concatenation) TypeClass() TypeClass { return TypeString }
func (c *Concatenation) Category() Category   { return CategoryOperand }
func (c *Concatenation) operandNode()         {}

func (c *Concatenation) Copy() (Node, error) {
	elems, err := c.copyElems()
	if err != nil {
		return nil, err
	}
	clone, err := NewConcatenation(elems...)
	if err != nil {
		return nil, copyFailed("concatenation", err)
	}
	clone.SetPosition(c.Position().Copy())
	return clone, nil
}

func (c *Concatenation) ToADQL() string      { return c.joinADQL(" || ") }
func (c *Concatenation) Iterator() *Iterator { return newIterator(c) }
func (c *Concatenation) childSlots() []slot  { return c.elemSlots(true) }
