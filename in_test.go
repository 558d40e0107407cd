package adql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleQuery(t *testing.T, column, table string) *Query {
	t.Helper()
	sel := NewSelectClause()
	item, err := NewSelectItem(numCol(t, column), "")
	require.NoError(t, err)
	require.NoError(t, sel.Append(item))
	from, err := NewTable(table)
	require.NoError(t, err)
	q, err := NewQuery(sel, from)
	require.NoError(t, err)
	return q
}

func TestIn_ValuesListSerialization(t *testing.T) {
	values, err := NewOperandList(NewIntegerLiteral(1), NewIntegerLiteral(2))
	require.NoError(t, err)

	p, err := NewIn(numCol(t, "id"), values, true)
	require.NoError(t, err)

	assert.Equal(t, "NOT IN", p.Name())
	assert.Equal(t, "id NOT IN (1, 2)", p.ToADQL())
}

func TestIn_SubQuerySerialization(t *testing.T) {
	p, err := NewInSubQuery(numCol(t, "id"), simpleQuery(t, "id", "refs"), false)
	require.NoError(t, err)

	assert.Equal(t, "IN", p.Name())
	assert.Equal(t, "id IN (SELECT id FROM refs)", p.ToADQL())
}

func TestIn_AlternativesAreExclusive(t *testing.T) {
	values, err := NewOperandList(NewIntegerLiteral(1))
	require.NoError(t, err)
	p, err := NewIn(numCol(t, "id"), values, false)
	require.NoError(t, err)

	require.NotNil(t, p.Values())
	require.Nil(t, p.SubQuery())

	// Switching to the sub-query clears the values list atomically and
	// hands it back.
	displaced, err := p.SetSubQuery(simpleQuery(t, "id", "refs"))
	require.NoError(t, err)
	assert.Same(t, values, displaced)
	assert.Nil(t, p.Values())
	require.NotNil(t, p.SubQuery())

	// And back again.
	newValues, err := NewOperandList(NewIntegerLiteral(7))
	require.NoError(t, err)
	displaced, err = p.SetValues(newValues)
	require.NoError(t, err)
	assert.NotNil(t, displaced)
	assert.Nil(t, p.SubQuery())
	assert.Equal(t, "id IN (7)", p.ToADQL())
}

func TestIn_UnionSlotAcceptsBothAlternatives(t *testing.T) {
	values, err := NewOperandList(NewIntegerLiteral(1))
	require.NoError(t, err)
	p, err := NewIn(numCol(t, "id"), values, false)
	require.NoError(t, err)

	it := p.Iterator()
	_, err = it.Next() // left operand
	require.NoError(t, err)
	rhs, err := it.Next() // active alternative
	require.NoError(t, err)
	assert.Equal(t, "(1)", rhs.ToADQL())
	assert.False(t, it.HasNext())

	// Replacing the values list with a sub-query through the union slot.
	old, err := it.Replace(simpleQuery(t, "id", "refs"))
	require.NoError(t, err)
	assert.Same(t, values, old)
	assert.Equal(t, "id IN (SELECT id FROM refs)", p.ToADQL())

	// Anything that is neither alternative is refused.
	p2, err := NewIn(numCol(t, "k"), mustOperandList(t, 1), false)
	require.NoError(t, err)
	it2 := p2.Iterator()
	_, err = it2.Next()
	require.NoError(t, err)
	_, err = it2.Next()
	require.NoError(t, err)
	_, err = it2.Replace(NewIntegerLiteral(3))
	assert.ErrorIs(t, err, ErrUnsupportedMutation)
}

func mustOperandList(t *testing.T, vals ...int64) *OperandList {
	t.Helper()
	ops := make([]Operand, len(vals))
	for i, v := range vals {
		ops[i] = NewIntegerLiteral(v)
	}
	l, err := NewOperandList(ops...)
	require.NoError(t, err)
	return l
}

func TestExists_Serialization(t *testing.T) {
	p, err := NewExists(simpleQuery(t, "id", "refs"))
	require.NoError(t, err)

	assert.Equal(t, "EXISTS", p.Name())
	assert.Equal(t, "EXISTS(SELECT id FROM refs)", p.ToADQL())
}

func TestConstraintList_MixedConnectors(t *testing.T) {
	a, err := NewComparison(numCol(t, "a"), OpEqual, NewIntegerLiteral(1))
	require.NoError(t, err)
	b, err := NewComparison(numCol(t, "b"), OpGreater, NewIntegerLiteral(2))
	require.NoError(t, err)
	c, err := NewIsNull(numCol(t, "c"), false)
	require.NoError(t, err)

	l := NewConstraintList("WHERE")
	require.NoError(t, l.Add(a))
	require.NoError(t, l.AddWith(LogicalOr, b))
	require.NoError(t, l.AddWith(LogicalAnd, c))

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "a = 1 OR b > 2 AND c IS NULL", l.ToADQL())

	conn, err := l.Connector(2)
	require.NoError(t, err)
	assert.Equal(t, LogicalAnd, conn)
}

func TestGroup_Parenthesizes(t *testing.T) {
	a, err := NewComparison(numCol(t, "a"), OpEqual, NewIntegerLiteral(1))
	require.NoError(t, err)
	b, err := NewComparison(numCol(t, "b"), OpEqual, NewIntegerLiteral(2))
	require.NoError(t, err)

	g := NewGroup()
	require.NoError(t, g.Add(a))
	require.NoError(t, g.AddWith(LogicalOr, b))

	assert.Equal(t, CategoryPredicate, g.Category())
	assert.Equal(t, "(a = 1 OR b = 2)", g.ToADQL())

	// A group nests inside an outer constraint list like any predicate.
	outer := NewConstraintList("WHERE")
	c, err := NewIsNull(numCol(t, "c"), true)
	require.NoError(t, err)
	require.NoError(t, outer.Add(c))
	require.NoError(t, outer.Add(g))
	assert.Equal(t, "c IS NOT NULL AND (a = 1 OR b = 2)", outer.ToADQL())
}

func TestConstraintList_RemoveThroughIterator(t *testing.T) {
	a, err := NewComparison(numCol(t, "a"), OpEqual, NewIntegerLiteral(1))
	require.NoError(t, err)
	b, err := NewComparison(numCol(t, "b"), OpEqual, NewIntegerLiteral(2))
	require.NoError(t, err)

	l := NewConstraintList("WHERE")
	require.NoError(t, l.Add(a))
	require.NoError(t, l.Add(b))

	it := l.Iterator()
	_, err = it.Next()
	require.NoError(t, err)
	removed, err := it.Remove()
	require.NoError(t, err)
	assert.Equal(t, "a = 1", removed.ToADQL())
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "b = 2", l.ToADQL())
}
