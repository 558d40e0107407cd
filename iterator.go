package adql

import "fmt"

// slot describes one child position of a composite node for the traversal
// engine: how to read it, how to overwrite it (with all category and type
// checks of the owning kind), and whether it can be removed.
//
// Each composite node contributes one ordered slot table; the engine below is
// the single traversal/mutation state machine shared by every node kind.
type slot struct {
	// name identifies the slot in error messages ("left operand", "item #2").
	name string

	// get returns the child currently held by the slot.
	get func() Node

	// set overwrites the slot, running the owning kind's category and type
	// checks, and returns the displaced child. It must leave the node
	// unchanged when it fails.
	set func(Node) (Node, error)

	// remove empties the slot (shrinking a list-backed container or clearing
	// an optional clause) and returns the removed child. Nil for required
	// slots.
	remove func() (Node, error)
}

// Iterator is a traversal/mutation cursor over one node's children.
//
// A fresh cursor is positioned before the first child. Next advances through
// the children in the node's documented order; Replace and Remove apply to
// the child returned by the most recent Next. Mutations are local: either the
// whole Replace/Remove succeeds, or the node is left unchanged.
//
// The same engine serves every composite node kind; a generic rewriting pass
// can therefore walk any subtree without per-kind dispatch.
type Iterator struct {
	owner   Node
	slots   []slot
	index   int
	current bool // a child sits under the cursor (Next succeeded, not removed)
}

func newIterator(owner Node) *Iterator {
	return &Iterator{owner: owner, slots: owner.childSlots(), index: -1}
}

// HasNext reports whether a further Next will succeed. It never mutates the
// cursor.
func (it *Iterator) HasNext() bool {
	return it.index+1 < len(it.slots)
}

// Next moves the cursor to the next child and returns it. Calling past the
// last child fails with ErrIteratorExhausted.
func (it *Iterator) Next() (Node, error) {
	if !it.HasNext() {
		return nil, fmt.Errorf("%w: %s has no further children", ErrIteratorExhausted, it.owner.Name())
	}
	it.index++
	it.current = true
	return it.slots[it.index].get(), nil
}

// Replace overwrites the child under the cursor and returns the displaced
// child, released back to the caller. Replace(nil) behaves exactly like
// Remove. A replacement of the wrong category fails with
// ErrUnsupportedMutation; one violating the slot's type constraint fails with
// ErrTypeMismatch. A successful Replace clears the owner's cached position.
func (it *Iterator) Replace(child Node) (Node, error) {
	if child == nil {
		return it.Remove()
	}
	if !it.current {
		return nil, fmt.Errorf("%w: Replace on %s before a successful Next", ErrInvalidIteratorState, it.owner.Name())
	}
	old, err := it.slots[it.index].set(child)
	if err != nil {
		return nil, err
	}
	it.owner.invalidatePosition()
	release(old)
	return old, nil
}

// Remove deletes the child under the cursor and returns it. Required slots
// always fail with ErrUnsupportedMutation; removable, list-backed slots
// shrink their container. After a successful Remove the cursor sits before
// the next child, and a further Replace/Remove needs a new Next first. A
// successful Remove clears the owner's cached position.
func (it *Iterator) Remove() (Node, error) {
	if !it.current {
		return nil, fmt.Errorf("%w: Remove on %s before a successful Next", ErrInvalidIteratorState, it.owner.Name())
	}
	s := it.slots[it.index]
	if s.remove == nil {
		return nil, fmt.Errorf("%w: the %s of %s is required and cannot be removed", ErrUnsupportedMutation, s.name, it.owner.Name())
	}
	old, err := s.remove()
	if err != nil {
		return nil, err
	}
	it.owner.invalidatePosition()
	release(old)
	// The child list shrank: rebuild the slot table and step the cursor back
	// so the next child is reached by the next Next.
	it.slots = it.owner.childSlots()
	it.index--
	it.current = false
	return old, nil
}

// categoryErr builds the uniform wrong-category mutation error.
func categoryErr(owner, slotName string, want Category, got Node) error {
	return fmt.Errorf("%w: the %s of %s expects a %s, got a %s",
		ErrUnsupportedMutation, slotName, owner, want, got.Category())
}

// asOperand checks that a replacement node is an operand of the right
// category before a slot accepts it.
func asOperand(owner, slotName string, n Node) (Operand, error) {
	op, ok := n.(Operand)
	if !ok || !CategoryOperand.Accepts(n.Category()) {
		return nil, categoryErr(owner, slotName, CategoryOperand, n)
	}
	return op, nil
}

// asPredicate checks that a replacement node is a predicate.
func asPredicate(owner, slotName string, n Node) (Predicate, error) {
	p, ok := n.(Predicate)
	if !ok {
		return nil, categoryErr(owner, slotName, CategoryPredicate, n)
	}
	return p, nil
}
