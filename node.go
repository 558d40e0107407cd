package adql

import (
	"errors"
	"fmt"
)

// Category tags the structural role of a node.
type Category int

const (
	// CategoryOperand marks value-producing nodes (columns, literals,
	// arithmetic, concatenations).
	CategoryOperand Category = iota
	// CategoryPredicate marks boolean-producing nodes used in constraints.
	CategoryPredicate
	// CategoryFunction marks function calls. Functions produce values, so
	// every operand slot also accepts them.
	CategoryFunction
	// CategoryContainer marks ordered containers of one element category.
	CategoryContainer
	// CategoryQuery marks full SELECT queries (top level or nested).
	CategoryQuery
	// CategoryClause marks clause elements that are neither operands nor
	// containers themselves: select items, order items, FROM content, WITH
	// items.
	CategoryClause
)

func (c Category) String() string {
	switch c {
	case CategoryOperand:
		return "operand"
	case CategoryPredicate:
		return "predicate"
	case CategoryFunction:
		return "function"
	case CategoryContainer:
		return "container"
	case CategoryQuery:
		return "query"
	case CategoryClause:
		return "clause"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Accepts reports whether a child of category other may occupy a slot
// declared with category c.
func (c Category) Accepts(other Category) bool {
	if c == other {
		return true
	}
	// Function calls are value-producing, so they fit operand slots.
	return c == CategoryOperand && other == CategoryFunction
}

// Node is any element of an ADQL tree.
//
// Node is a sealed interface - only types in this package implement it. An
// external parser builds trees through the package constructors and may
// attach a source position to each node; external rewriting passes mutate
// trees through typed setters or through Iterator.
type Node interface {
	// Name returns the node's stable mnemonic, e.g. "BETWEEN", "IN", "CAST".
	// Leaf operands answer their own text (a column or function name, a
	// literal's lexical form).
	Name() string

	// Category returns the node's structural role.
	Category() Category

	// Position returns the node's cached source span, or nil when none is
	// attached (programmatically built, or invalidated by a mutation).
	Position() *Position

	// SetPosition attaches a source span. Only an external parser produces
	// non-nil positions.
	SetPosition(p *Position)

	// Copy returns a deep clone: no mutable state is shared, transitively,
	// between the node and its clone, and the clone is unattached. It fails
	// with ErrCopyFailure if any child fails to copy.
	Copy() (Node, error)

	// ToADQL returns the canonical ADQL form of the subtree, re-parseable
	// into a structurally identical node.
	ToADQL() string

	// Iterator returns a fresh traversal cursor over the node's children,
	// positioned before the first child. The child order is fixed and
	// documented per node kind.
	Iterator() *Iterator

	// childSlots feeds the traversal engine and seals the interface to this
	// package. Leaf nodes return nil. Only populated slots are listed.
	childSlots() []slot

	attached() bool
	setAttached(bool)
	invalidatePosition()
}

// Operand is a value-producing Node.
type Operand interface {
	Node

	// TypeClass returns the operand's type classification. TypeUnknown is
	// permissive: all three Is* views answer true until the operand is
	// resolved.
	TypeClass() TypeClass

	operandNode() // Marker method - seals operands to this package
}

// Predicate is a boolean-producing Node usable in constraint lists.
type Predicate interface {
	Node

	predicateNode() // Marker method - seals predicates to this package
}

// base carries the state shared by every node kind: the cached source
// position and the attachment flag backing the tree-ownership rule.
type base struct {
	pos   *Position
	owned bool
}

func (b *base) Position() *Position     { return b.pos }
func (b *base) SetPosition(p *Position) { b.pos = p }
func (b *base) invalidatePosition()     { b.pos = nil }
func (b *base) attached() bool          { return b.owned }
func (b *base) setAttached(v bool)      { b.owned = v }

// adopt claims exclusive ownership of child for a parent slot. The tree is a
// tree, not a shared graph: a node already attached elsewhere is refused
// rather than silently aliased.
func adopt(child Node) error {
	if child.attached() {
		return fmt.Errorf("%w: %s is already attached to another node", ErrUnsupportedMutation, child.Name())
	}
	child.setAttached(true)
	return nil
}

// release hands a displaced or removed child back to the caller. The guard
// covers a nil interface only; callers holding a possibly-nil concrete
// pointer must check it first, since a typed nil passes the guard.
func release(child Node) {
	if child != nil {
		child.setAttached(false)
	}
}

// copyFailed wraps a child copy (or clone reconstruction) error in
// ErrCopyFailure, keeping the failing slot in the message.
func copyFailed(what string, err error) error {
	if errors.Is(err, ErrCopyFailure) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrCopyFailure, what, err)
}

// copyAs deep-copies a node and asserts the clone back to the source type.
func copyAs[T Node](n T, what string) (T, error) {
	var zero T
	c, err := n.Copy()
	if err != nil {
		return zero, copyFailed(what, err)
	}
	t, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s: clone has unexpected kind %T", ErrCopyFailure, what, c)
	}
	return t, nil
}

// requireOperand rejects a nil operand for a required slot.
func requireOperand(op Operand, owner, slotName string) error {
	if op == nil {
		return fmt.Errorf("%w: the %s of %s", ErrNullArgument, slotName, owner)
	}
	return nil
}
