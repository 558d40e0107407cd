package adql

import "fmt"

// Cast converts a value to a target datatype. Its type classification
// delegates to the target datatype, not to the source value:
// CAST(v AS INTEGER) is numeric whatever v is.
//
// Traversal order: the cast value, then the target datatype. Both slots are
// required.
type Cast struct {
	base
	value  Operand
	target *Datatype
}

// NewCast builds a CAST call.
func NewCast(value Operand, target *Datatype) (*Cast, error) {
	if err := requireOperand(value, "a CAST", "value"); err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: the target datatype of a CAST", ErrNullArgument)
	}
	if err := adopt(value); err != nil {
		return nil, err
	}
	if err := adopt(target); err != nil {
		release(value)
		return nil, err
	}
	return &Cast{value: value, target: target}, nil
}

// Value returns the operand being converted.
func (c *Cast) Value() Operand { return c.value }

// Target returns the target datatype.
func (c *Cast) Target() *Datatype { return c.target }

// SetValue replaces the converted operand and returns the displaced one.
func (c *Cast) SetValue(op Operand) (Operand, error) {
	if err := requireOperand(op, "a CAST", "value"); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := c.value
	c.value = op
	c.invalidatePosition()
	release(old)
	return old, nil
}

// SetTarget replaces the target datatype and returns the displaced one.
func (c *Cast) SetTarget(d *Datatype) (*Datatype, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: the target datatype of a CAST", ErrNullArgument)
	}
	if err := adopt(d); err != nil {
		return nil, err
	}
	old := c.target
	c.target = d
	c.invalidatePosition()
	release(old)
	return old, nil
}

func (c *Cast) FunctionName() string { return "CAST" }
func (c *Cast) Arity() int           { return 2 }

func (c *Cast) Parameters() []Operand { return []Operand{c.value, c.target} }

func (c *Cast) Parameter(i int) (Operand, error) {
	switch i {
	case 0:
		return c.value, nil
	case 1:
		return c.target, nil
	default:
		return nil, fmt.Errorf("%w: parameter %d of CAST (arity 2)", ErrIndexOutOfRange, i)
	}
}

func (c *Cast) SetParameter(i int, op Operand) (Operand, error) {
	switch i {
	case 0:
		return c.SetValue(op)
	case 1:
		d, ok := op.(*Datatype)
		if !ok {
			if op == nil {
				return nil, fmt.Errorf("%w: the target datatype of a CAST", ErrNullArgument)
			}
			return nil, fmt.Errorf("%w: parameter 1 of CAST must be a datatype", ErrTypeMismatch)
		}
		return c.SetTarget(d)
	default:
		return nil, fmt.Errorf("%w: parameter %d of CAST (arity 2)", ErrIndexOutOfRange, i)
	}
}

// TypeClass delegates to the target datatype.
func (c *Cast) TypeClass() TypeClass { return c.target.TypeClass() }

func (c *Cast) Name() string       { return "CAST" }
func (c *Cast) Category() Category { return CategoryFunction }
func (c *Cast) operandNode()       {}
func (c *Cast) functionNode()      {}

func (c *Cast) Copy() (Node, error) {
	value, err := copyAs(c.value, "value of a CAST")
	if err != nil {
		return nil, err
	}
	target, err := copyAs(c.target, "target datatype of a CAST")
	if err != nil {
		return nil, err
	}
	clone, err := NewCast(value, target)
	if err != nil {
		return nil, copyFailed("CAST", err)
	}
	clone.SetPosition(c.Position().Copy())
	return clone, nil
}

func (c *Cast) ToADQL() string {
	return "CAST(" + c.value.ToADQL() + " AS " + c.target.ToADQL() + ")"
}

// Translate renders the CAST in a dialect, delegating the value and the
// target datatype (dialects spell type names differently).
func (c *Cast) Translate(tr Translator) (string, error) {
	value, err := tr.Translate(c.value)
	if err != nil {
		return "", err
	}
	target, err := tr.Translate(c.target)
	if err != nil {
		return "", err
	}
	return "CAST(" + value + " AS " + target + ")", nil
}

func (c *Cast) Iterator() *Iterator { return newIterator(c) }

func (c *Cast) childSlots() []slot {
	return []slot{
		operandSlot("a CAST", "value", func() Node { return c.value },
			func(op Operand) (Node, error) { return slotSet(&c.value, op, nil) }),
		{
			name: "target datatype",
			get:  func() Node { return c.target },
			set: func(node Node) (Node, error) {
				d, ok := node.(*Datatype)
				if !ok {
					return nil, categoryErr("a CAST", "target datatype", CategoryOperand, node)
				}
				if err := adopt(d); err != nil {
					return nil, err
				}
				old := c.target
				c.target = d
				return old, nil
			},
		},
	}
}
