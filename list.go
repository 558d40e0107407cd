package adql

import (
	"fmt"
	"strings"
)

// nodeList is the ordered, insertion-order-preserving container core shared
// by every list-backed node kind (value lists, concatenations, clause lists,
// WITH clauses). Concrete container types embed it and keep their own
// serialization, category and copy semantics.
type nodeList[T Node] struct {
	base
	label    string
	elemCat  Category
	check    func(T) error // optional per-element constraint
	elems    []T
}

// Len returns the number of elements.
func (l *nodeList[T]) Len() int { return len(l.elems) }

// Name returns the container's mnemonic.
func (l *nodeList[T]) Name() string { return l.label }

// Append adds an element at the end of the list.
func (l *nodeList[T]) Append(v T) error {
	if Node(v) == nil {
		return fmt.Errorf("%w: an item of %s", ErrNullArgument, l.label)
	}
	if l.check != nil {
		if err := l.check(v); err != nil {
			return err
		}
	}
	if err := adopt(v); err != nil {
		return err
	}
	l.elems = append(l.elems, v)
	l.invalidatePosition()
	return nil
}

// Get returns the element at index i.
func (l *nodeList[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.elems) {
		return zero, fmt.Errorf("%w: item %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.elems))
	}
	return l.elems[i], nil
}

// Set overwrites the element at index i and returns the element previously
// held there, released back to the caller.
func (l *nodeList[T]) Set(i int, v T) (T, error) {
	var zero T
	if i < 0 || i >= len(l.elems) {
		return zero, fmt.Errorf("%w: item %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.elems))
	}
	if Node(v) == nil {
		return zero, fmt.Errorf("%w: an item of %s", ErrNullArgument, l.label)
	}
	if l.check != nil {
		if err := l.check(v); err != nil {
			return zero, err
		}
	}
	if err := adopt(v); err != nil {
		return zero, err
	}
	old := l.elems[i]
	l.elems[i] = v
	l.invalidatePosition()
	release(old)
	return old, nil
}

// removeAt shrinks the list by one element and returns it.
func (l *nodeList[T]) removeAt(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(l.elems) {
		return zero, fmt.Errorf("%w: item %d of %s (length %d)", ErrIndexOutOfRange, i, l.label, len(l.elems))
	}
	old := l.elems[i]
	l.elems = append(l.elems[:i], l.elems[i+1:]...)
	l.invalidatePosition()
	release(old)
	return old, nil
}

// copyElems deep-copies every element.
func (l *nodeList[T]) copyElems() ([]T, error) {
	out := make([]T, 0, len(l.elems))
	for i, el := range l.elems {
		c, err := copyAs(el, fmt.Sprintf("item #%d of %s", i+1, l.label))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// elemSlots builds the traversal slot table over the elements, in insertion
// order. When removable is true the slots are list-backed and may shrink.
func (l *nodeList[T]) elemSlots(removable bool) []slot {
	slots := make([]slot, len(l.elems))
	for i := range l.elems {
		i := i
		name := fmt.Sprintf("item #%d", i+1)
		s := slot{
			name: name,
			get:  func() Node { return l.elems[i] },
			set: func(n Node) (Node, error) {
				v, ok := n.(T)
				if !ok || !l.elemCat.Accepts(n.Category()) {
					return nil, categoryErr(l.label, name, l.elemCat, n)
				}
				old, err := l.setForSlot(i, v)
				if err != nil {
					return nil, err
				}
				return old, nil
			},
		}
		if removable {
			s.remove = func() (Node, error) { return l.removeAt(i) }
		}
		slots[i] = s
	}
	return slots
}

// setForSlot mirrors Set but returns the old element without releasing it;
// the iterator engine handles the release after it invalidates positions.
func (l *nodeList[T]) setForSlot(i int, v T) (Node, error) {
	if l.check != nil {
		if err := l.check(v); err != nil {
			return nil, err
		}
	}
	if err := adopt(v); err != nil {
		return nil, err
	}
	old := l.elems[i]
	l.elems[i] = v
	l.invalidatePosition()
	return old, nil
}

// joinADQL renders all elements separated by sep.
func (l *nodeList[T]) joinADQL(sep string) string {
	parts := make([]string, len(l.elems))
	for i, el := range l.elems {
		parts[i] = el.ToADQL()
	}
	return strings.Join(parts, sep)
}

// OperandList is an ordered list of operands, used as the values-list
// alternative of an IN predicate. It serializes as "(v1, v2, ...)".
//
// Traversal order: the operands in insertion order; every slot is removable.
type OperandList struct {
	nodeList[Operand]
}

// NewOperandList builds a value list from zero or more operands.
func NewOperandList(values ...Operand) (*OperandList, error) {
	l := &OperandList{nodeList[Operand]{label: "VALUES", elemCat: CategoryOperand}}
	for _, v := range values {
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *OperandList) Category() Category { return CategoryContainer }

func (l *OperandList) Copy() (Node, error) {
	elems, err := l.copyElems()
	if err != nil {
		return nil, err
	}
	clone, err := NewOperandList(elems...)
	if err != nil {
		return nil, copyFailed(l.label, err)
	}
	clone.SetPosition(l.Position().Copy())
	return clone, nil
}

func (l *OperandList) ToADQL() string      { return "(" + l.joinADQL(", ") + ")" }
func (l *OperandList) Iterator() *Iterator { return newIterator(l) }
func (l *OperandList) childSlots() []slot  { return l.elemSlots(true) }
