package adql

import "fmt"

// LogicalOp joins two consecutive constraints in a constraint list.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalOr {
		return "OR"
	}
	return "AND"
}

// ConstraintList is an ordered, insertion-order-preserving list of
// predicates, each joined to its predecessor by AND or OR. It backs the
// WHERE and HAVING clauses, join conditions and parenthesized groups.
//
// Traversal order: the predicates in insertion order; every slot is
// removable (removing a predicate also drops its connector).
type ConstraintList struct {
	base
	label string
	preds []Predicate
	ops   []LogicalOp // ops[i] joins preds[i] to preds[i-1]; ops[0] is unused
}

// NewConstraintList builds an empty constraint list with a mnemonic label
// (e.g. "WHERE", "HAVING", "ON").
func NewConstraintList(label string) *ConstraintList {
	return &ConstraintList{label: label}
}

// Add appends a predicate joined to the previous one with AND.
func (l *ConstraintList) Add(p Predicate) error { return l.AddWith(LogicalAnd, p) }

// AddWith appends a predicate with an explicit connector. The connector of
// the first predicate is ignored.
func (l *ConstraintList) AddWith(op LogicalOp, p Predicate) error {
	if p == nil {
		return fmt.Errorf("%w: a constraint of %s", ErrNullArgument, l.label)
	}
	if err := adopt(p); err != nil {
		return err
	}
	l.preds = append(l.preds, p)
	l.ops = append(l.ops, op)
	l.invalidatePosition()
	return nil
}

// Len returns the number of constraints.
func (l *ConstraintList) Len() int { return len(l.preds) }

// Get returns the constraint at index i.
func (l *ConstraintList) Get(i int) (Predicate, error) {
	if i < 0 || i >= len(l.preds) {
		return nil, fmt.Errorf("%w: constraint %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.preds))
	}
	return l.preds[i], nil
}

// Connector returns the logical operator joining constraint i to its
// predecessor.
func (l *ConstraintList) Connector(i int) (LogicalOp, error) {
	if i < 0 || i >= len(l.preds) {
		return LogicalAnd, fmt.Errorf("%w: constraint %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.preds))
	}
	return l.ops[i], nil
}

// Set overwrites the constraint at index i, keeping its connector, and
// returns the predicate previously held there.
func (l *ConstraintList) Set(i int, p Predicate) (Predicate, error) {
	if i < 0 || i >= len(l.preds) {
		return nil, fmt.Errorf("%w: constraint %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.preds))
	}
	if p == nil {
		return nil, fmt.Errorf("%w: a constraint of %s", ErrNullArgument, l.label)
	}
	if err := adopt(p); err != nil {
		return nil, err
	}
	old := l.preds[i]
	l.preds[i] = p
	l.invalidatePosition()
	release(old)
	return old, nil
}

// removeAt drops the constraint at index i together with its connector.
func (l *ConstraintList) removeAt(i int) (Predicate, error) {
	if i < 0 || i >= len(l.preds) {
		return nil, fmt.Errorf("%w: constraint %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.preds))
	}
	old := l.preds[i]
	l.preds = append(l.preds[:i], l.preds[i+1:]...)
	l.ops = append(l.ops[:i], l.ops[i+1:]...)
	l.invalidatePosition()
	release(old)
	return old, nil
}

func (l *ConstraintList) Name() string       { return l.label }
func (l *ConstraintList) Category() Category { return CategoryContainer }

func (l *ConstraintList) Copy() (Node, error) {
	clone := NewConstraintList(l.label)
	for i, p := range l.preds {
		c, err := copyAs(p, fmt.Sprintf("constraint #%d of %s", i+1, l.label))
		if err != nil {
			return nil, err
		}
		if err := clone.AddWith(l.ops[i], c); err != nil {
			return nil, copyFailed(l.label, err)
		}
	}
	clone.SetPosition(l.Position().Copy())
	return clone, nil
}

// ToADQL renders the joined constraints without the clause keyword; the
// enclosing query (or group) supplies it.
func (l *ConstraintList) ToADQL() string {
	out := ""
	for i, p := range l.preds {
		if i > 0 {
			out += " " + l.ops[i].String() + " "
		}
		out += p.ToADQL()
	}
	return out
}

func (l *ConstraintList) Iterator() *Iterator { return newIterator(l) }

func (l *ConstraintList) childSlots() []slot {
	slots := make([]slot, len(l.preds))
	for i := range l.preds {
		i := i
		name := fmt.Sprintf("constraint #%d", i+1)
		slots[i] = slot{
			name: name,
			get:  func() Node { return l.preds[i] },
			set: func(node Node) (Node, error) {
				p, err := asPredicate(l.label, name, node)
				if err != nil {
					return nil, err
				}
				if err := adopt(p); err != nil {
					return nil, err
				}
				old := l.preds[i]
				l.preds[i] = p
				return old, nil
			},
			remove: func() (Node, error) { return l.removeAt(i) },
		}
	}
	return slots
}

// Group is a parenthesized constraint list usable wherever a predicate is.
// It delegates all list semantics to ConstraintList and only wraps the
// serialized output in parentheses.
type Group struct {
	ConstraintList
}

// NewGroup builds an empty parenthesized group of constraints.
func NewGroup() *Group {
	return &Group{ConstraintList{label: "GROUP"}}
}

func (g *Group) Category() Category { return CategoryPredicate }
func (g *Group) predicateNode()     {}

func (g *Group) Copy() (Node, error) {
	clone := NewGroup()
	for i, p := range g.preds {
		c, err := copyAs(p, fmt.Sprintf("constraint #%d of a group", i+1))
		if err != nil {
			return nil, err
		}
		if err := clone.AddWith(g.ops[i], c); err != nil {
			return nil, copyFailed("group", err)
		}
	}
	clone.SetPosition(g.Position().Copy())
	return clone, nil
}

func (g *Group) ToADQL() string      { return "(" + g.ConstraintList.ToADQL() + ")" }
func (g *Group) Iterator() *Iterator { return newIterator(g) }
