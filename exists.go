package adql

import "fmt"

// Exists checks that a sub-query returns at least one row.
//
// Traversal order: the single sub-query child; the slot is required.
type Exists struct {
	base
	subquery *Query
}

// NewExists builds an EXISTS predicate.
func NewExists(sub *Query) (*Exists, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: the sub-query of an EXISTS", ErrNullArgument)
	}
	if err := adopt(sub); err != nil {
		return nil, err
	}
	return &Exists{subquery: sub}, nil
}

// SubQuery returns the nested query.
func (e *Exists) SubQuery() *Query { return e.subquery }

// SetSubQuery replaces the nested query and returns the displaced one.
func (e *Exists) SetSubQuery(sub *Query) (*Query, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: the sub-query of an EXISTS", ErrNullArgument)
	}
	if err := adopt(sub); err != nil {
		return nil, err
	}
	old := e.subquery
	e.subquery = sub
	e.invalidatePosition()
	release(old)
	return old, nil
}

func (e *Exists) Name() string       { return "EXISTS" }
func (e *Exists) Category() Category { return CategoryPredicate }
func (e *Exists) predicateNode()     {}

func (e *Exists) Copy() (Node, error) {
	sub, err := copyAs(e.subquery, "sub-query of an EXISTS")
	if err != nil {
		return nil, err
	}
	clone, err := NewExists(sub)
	if err != nil {
		return nil, copyFailed("EXISTS", err)
	}
	clone.SetPosition(e.Position().Copy())
	return clone, nil
}

func (e *Exists) ToADQL() string {
	return "EXISTS(" + e.subquery.ToADQL() + ")"
}

func (e *Exists) Iterator() *Iterator { return newIterator(e) }

func (e *Exists) childSlots() []slot {
	return []slot{{
		name: "sub-query",
		get:  func() Node { return e.subquery },
		set: func(node Node) (Node, error) {
			q, ok := node.(*Query)
			if !ok {
				return nil, categoryErr("an EXISTS", "sub-query", CategoryQuery, node)
			}
			if err := adopt(q); err != nil {
				return nil, err
			}
			old := e.subquery
			e.subquery = q
			return old, nil
		},
	}}
}
