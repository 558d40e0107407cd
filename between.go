package adql

// Between checks that an operand lies inside (or, negated, outside) an
// inclusive range.
//
// Traversal order: left operand, then minimum, then maximum. All three slots
// are required; none is removable.
type Between struct {
	base
	left    Operand
	min     Operand
	max     Operand
	negated bool
}

// NewBetween builds a BETWEEN predicate. Negated defaults to false; use
// SetNegated for NOT BETWEEN.
func NewBetween(left, min, max Operand) (*Between, error) {
	if err := requireOperand(left, "a BETWEEN", "left operand"); err != nil {
		return nil, err
	}
	if err := requireOperand(min, "a BETWEEN", "minimum"); err != nil {
		return nil, err
	}
	if err := requireOperand(max, "a BETWEEN", "maximum"); err != nil {
		return nil, err
	}
	if err := adopt(left); err != nil {
		return nil, err
	}
	if err := adopt(min); err != nil {
		release(left)
		return nil, err
	}
	if err := adopt(max); err != nil {
		release(left)
		release(min)
		return nil, err
	}
	return &Between{left: left, min: min, max: max}, nil
}

// Left returns the tested operand.
func (b *Between) Left() Operand { return b.left }

// Min returns the range minimum.
func (b *Between) Min() Operand { return b.min }

// Max returns the range maximum.
func (b *Between) Max() Operand { return b.max }

// Negated reports whether the predicate is NOT BETWEEN.
func (b *Between) Negated() bool { return b.negated }

// SetNegated switches between BETWEEN and NOT BETWEEN.
func (b *Between) SetNegated(v bool) {
	b.negated = v
	b.invalidatePosition()
}

// SetLeft replaces the tested operand and returns the displaced one.
func (b *Between) SetLeft(op Operand) (Operand, error) { return b.setSlot(&b.left, op, "left operand") }

// SetMin replaces the range minimum and returns the displaced one.
func (b *Between) SetMin(op Operand) (Operand, error) { return b.setSlot(&b.min, op, "minimum") }

// SetMax replaces the range maximum and returns the displaced one.
func (b *Between) SetMax(op Operand) (Operand, error) { return b.setSlot(&b.max, op, "maximum") }

func (b *Between) setSlot(side *Operand, op Operand, slotName string) (Operand, error) {
	if err := requireOperand(op, "a BETWEEN", slotName); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := *side
	*side = op
	b.invalidatePosition()
	release(old)
	return old, nil
}

func (b *Between) Name() string {
	if b.negated {
		return "NOT BETWEEN"
	}
	return "BETWEEN"
}

func (b *Between) Category() Category { return CategoryPredicate }
func (b *Between) predicateNode()     {}

func (b *Between) Copy() (Node, error) {
	left, err := copyAs(b.left, "left operand of a BETWEEN")
	if err != nil {
		return nil, err
	}
	min, err := copyAs(b.min, "minimum of a BETWEEN")
	if err != nil {
		return nil, err
	}
	max, err := copyAs(b.max, "maximum of a BETWEEN")
	if err != nil {
		return nil, err
	}
	clone, err := NewBetween(left, min, max)
	if err != nil {
		return nil, copyFailed("BETWEEN", err)
	}
	clone.negated = b.negated
	clone.SetPosition(b.Position().Copy())
	return clone, nil
}

func (b *Between) ToADQL() string {
	return b.left.ToADQL() + " " + b.Name() + " " + b.min.ToADQL() + " AND " + b.max.ToADQL()
}

func (b *Between) Iterator() *Iterator { return newIterator(b) }

func (b *Between) childSlots() []slot {
	return []slot{
		operandSlot("a BETWEEN", "left operand", func() Node { return b.left },
			func(op Operand) (Node, error) { return slotSet(&b.left, op, nil) }),
		operandSlot("a BETWEEN", "minimum", func() Node { return b.min },
			func(op Operand) (Node, error) { return slotSet(&b.min, op, nil) }),
		operandSlot("a BETWEEN", "maximum", func() Node { return b.max },
			func(op Operand) (Node, error) { return slotSet(&b.max, op, nil) }),
	}
}
