package adql

import "fmt"

// Not negates a wrapped predicate. The inner slot only accepts
// predicate-category nodes.
//
// Traversal order: the single inner predicate; the slot is required.
type Not struct {
	base
	inner Predicate
}

// NewNot wraps a predicate in a negation.
func NewNot(inner Predicate) (*Not, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: the predicate of a NOT", ErrNullArgument)
	}
	if err := adopt(inner); err != nil {
		return nil, err
	}
	return &Not{inner: inner}, nil
}

// Inner returns the wrapped predicate.
func (n *Not) Inner() Predicate { return n.inner }

// SetInner replaces the wrapped predicate and returns the displaced one.
func (n *Not) SetInner(p Predicate) (Predicate, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: the predicate of a NOT", ErrNullArgument)
	}
	if err := adopt(p); err != nil {
		return nil, err
	}
	old := n.inner
	n.inner = p
	n.invalidatePosition()
	release(old)
	return old, nil
}

func (n *Not) Name() string       { return "NOT " + n.inner.Name() }
func (n *Not) Category() Category { return CategoryPredicate }
func (n *Not) predicateNode()     {}

func (n *Not) Copy() (Node, error) {
	inner, err := copyAs(n.inner, "predicate of a NOT")
	if err != nil {
		return nil, err
	}
	clone, err := NewNot(inner)
	if err != nil {
		return nil, copyFailed("NOT", err)
	}
	clone.SetPosition(n.Position().Copy())
	return clone, nil
}

func (n *Not) ToADQL() string { return "NOT " + n.inner.ToADQL() }

func (n *Not) Iterator() *Iterator { return newIterator(n) }

func (n *Not) childSlots() []slot {
	return []slot{{
		name: "predicate",
		get:  func() Node { return n.inner },
		set: func(node Node) (Node, error) {
			p, err := asPredicate("a NOT", "predicate", node)
			if err != nil {
				return nil, err
			}
			if err := adopt(p); err != nil {
				return nil, err
			}
			old := n.inner
			n.inner = p
			return old, nil
		},
	}}
}
