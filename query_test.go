package adql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectOf(t *testing.T, items ...*SelectItem) *SelectClause {
	t.Helper()
	sel := NewSelectClause()
	for _, it := range items {
		require.NoError(t, sel.Append(it))
	}
	return sel
}

func item(t *testing.T, op Operand, alias string) *SelectItem {
	t.Helper()
	it, err := NewSelectItem(op, alias)
	require.NoError(t, err)
	return it
}

func TestQuery_MinimalSerialization(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")
	assert.Equal(t, "SELECT id FROM gaia", q.ToADQL())
	assert.Equal(t, "QUERY", q.Name())
	assert.Equal(t, CategoryQuery, q.Category())
}

func TestQuery_AllClauses(t *testing.T) {
	sel := selectOf(t,
		item(t, numCol(t, "source_id"), ""),
		item(t, func() Operand {
			f, err := NewAggregate(AggAvg, numCol(t, "mag"), false)
			require.NoError(t, err)
			return f
		}(), "mean_mag"),
	)
	sel.SetDistinct(true)
	sel.SetLimit(10)

	from, err := NewTable("gaia_source")
	require.NoError(t, err)
	q, err := NewQuery(sel, from)
	require.NoError(t, err)

	where := NewConstraintList("WHERE")
	cmp, err := NewComparison(numCol(t, "parallax"), OpGreater, NewIntegerLiteral(5))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	groupBy := NewGroupByClause()
	require.NoError(t, groupBy.Append(numCol(t, "source_id")))
	_, err = q.SetGroupBy(groupBy)
	require.NoError(t, err)

	having := NewConstraintList("HAVING")
	avg, err := NewAggregate(AggAvg, numCol(t, "mag"), false)
	require.NoError(t, err)
	hcmp, err := NewComparison(avg, OpLess, NewIntegerLiteral(12))
	require.NoError(t, err)
	require.NoError(t, having.Add(hcmp))
	_, err = q.SetHaving(having)
	require.NoError(t, err)

	orderBy := NewOrderByClause()
	oi, err := NewOrderItem(numCol(t, "source_id"), true)
	require.NoError(t, err)
	require.NoError(t, orderBy.Append(oi))
	_, err = q.SetOrderBy(orderBy)
	require.NoError(t, err)

	q.SetOffset(20)

	assert.Equal(t,
		"SELECT DISTINCT TOP 10 source_id, AVG(mag) AS mean_mag FROM gaia_source "+
			"WHERE parallax > 5 GROUP BY source_id HAVING AVG(mag) < 12 "+
			"ORDER BY source_id DESC OFFSET 20",
		q.ToADQL())
}

func TestQuery_TraversalSkipsAbsentClauses(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")

	it := q.Iterator()
	first, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "SELECT", first.Name())
	second, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, "gaia", second.Name())
	assert.False(t, it.HasNext())

	// With a WHERE attached, the traversal grows a third child.
	where := NewConstraintList("WHERE")
	cmp, err := NewComparison(numCol(t, "mag"), OpLess, NewIntegerLiteral(12))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	it = q.Iterator()
	names := []string{}
	for it.HasNext() {
		child, err := it.Next()
		require.NoError(t, err)
		names = append(names, child.Name())
	}
	assert.Equal(t, []string{"SELECT", "gaia", "WHERE"}, names)
}

func TestQuery_RequiredClausesCannotBeRemoved(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")

	it := q.Iterator()
	_, err := it.Next() // SELECT
	require.NoError(t, err)
	_, err = it.Remove()
	assert.ErrorIs(t, err, ErrUnsupportedMutation)
}

func TestQuery_OptionalClauseRemovableThroughIterator(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")
	where := NewConstraintList("WHERE")
	cmp, err := NewComparison(numCol(t, "mag"), OpLess, NewIntegerLiteral(12))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	it := q.Iterator()
	for i := 0; i < 3; i++ {
		_, err := it.Next()
		require.NoError(t, err)
	}
	removed, err := it.Remove()
	require.NoError(t, err)
	assert.Same(t, where, removed)
	assert.Nil(t, q.Where())
	assert.Equal(t, "SELECT id FROM gaia", q.ToADQL())
}

func TestQuery_SetWhereNilClears(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")
	where := NewConstraintList("WHERE")
	cmp, err := NewComparison(numCol(t, "mag"), OpLess, NewIntegerLiteral(12))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	displaced, err := q.SetWhere(nil)
	require.NoError(t, err)
	assert.Same(t, where, displaced)
	assert.Nil(t, q.Where())

	// The displaced clause is released and reusable.
	q2 := simpleQuery(t, "id", "other")
	_, err = q2.SetWhere(displaced)
	require.NoError(t, err)
}

func TestQuery_FirstClauseAttachReportsNoDisplacement(t *testing.T) {
	q := simpleQuery(t, "id", "gaia")

	where := NewConstraintList("WHERE")
	cmp, err := NewComparison(numCol(t, "mag"), OpLess, NewIntegerLiteral(12))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	displaced, err := q.SetWhere(where)
	require.NoError(t, err)
	assert.Nil(t, displaced)

	groupBy := NewGroupByClause()
	require.NoError(t, groupBy.Append(numCol(t, "id")))
	displacedGroup, err := q.SetGroupBy(groupBy)
	require.NoError(t, err)
	assert.Nil(t, displacedGroup)

	having := NewConstraintList("HAVING")
	havingCmp, err := NewComparison(numCol(t, "mag"), OpGreater, NewIntegerLiteral(5))
	require.NoError(t, err)
	require.NoError(t, having.Add(havingCmp))
	displacedHaving, err := q.SetHaving(having)
	require.NoError(t, err)
	assert.Nil(t, displacedHaving)

	orderBy := NewOrderByClause()
	orderItem, err := NewOrderItem(numCol(t, "id"), false)
	require.NoError(t, err)
	require.NoError(t, orderBy.Append(orderItem))
	displacedOrder, err := q.SetOrderBy(orderBy)
	require.NoError(t, err)
	assert.Nil(t, displacedOrder)

	with := NewWithClause()
	withItem, err := NewWithItem("bright", simpleQuery(t, "sid", "src"))
	require.NoError(t, err)
	require.NoError(t, with.Append(withItem))
	displacedWith, err := q.SetWith(with)
	require.NoError(t, err)
	assert.Nil(t, displacedWith)
}

func TestJoin_FirstOnConditionReportsNoDisplacement(t *testing.T) {
	left, err := NewTable("gaia")
	require.NoError(t, err)
	right, err := NewTable("tmass")
	require.NoError(t, err)
	j, err := NewJoin(left, JoinInner, right)
	require.NoError(t, err)

	on := NewConstraintList("ON")
	cmp, err := NewComparison(numCol(t, "gaia_id"), OpEqual, numCol(t, "tmass_id"))
	require.NoError(t, err)
	require.NoError(t, on.Add(cmp))

	displaced, err := j.SetOn(on)
	require.NoError(t, err)
	assert.Nil(t, displaced)
	assert.Equal(t, "gaia INNER JOIN tmass ON gaia_id = tmass_id", j.ToADQL())
}

func TestQuery_OutputColumns(t *testing.T) {
	sel := selectOf(t,
		item(t, numCol(t, "ra"), ""),
		item(t, numCol(t, "dec"), "delta"),
	)
	op, err := NewOperation(numCol(t, "a"), OpAdd, NewIntegerLiteral(1))
	require.NoError(t, err)
	require.NoError(t, sel.Append(item(t, op, "")))
	require.NoError(t, sel.Append(NewWildcardItem()))

	from, err := NewTable("gaia")
	require.NoError(t, err)
	q, err := NewQuery(sel, from)
	require.NoError(t, err)

	assert.Equal(t, []string{"ra", "delta", "", "*"}, q.OutputColumns())
}

func TestTable_SubQueryNeedsAlias(t *testing.T) {
	_, err := NewSubQueryTable(simpleQuery(t, "id", "refs"), "")
	assert.ErrorIs(t, err, ErrNullArgument)

	tbl, err := NewSubQueryTable(simpleQuery(t, "id", "refs"), "r")
	require.NoError(t, err)
	assert.Equal(t, "(SELECT id FROM refs) AS r", tbl.ToADQL())
	assert.Equal(t, "r", tbl.Name())
}

func TestJoin_Serialization(t *testing.T) {
	left, err := NewTable("gaia")
	require.NoError(t, err)
	right, err := NewTable("tmass")
	require.NoError(t, err)

	j, err := NewJoin(left, JoinLeft, right)
	require.NoError(t, err)

	on := NewConstraintList("ON")
	cmp, err := NewComparison(numCol(t, "gaia_id"), OpEqual, numCol(t, "tmass_id"))
	require.NoError(t, err)
	require.NoError(t, on.Add(cmp))
	_, err = j.SetOn(on)
	require.NoError(t, err)

	assert.Equal(t, "gaia LEFT OUTER JOIN tmass ON gaia_id = tmass_id", j.ToADQL())
}

func TestJoin_NaturalDropsOnCondition(t *testing.T) {
	left, err := NewTable("a")
	require.NoError(t, err)
	right, err := NewTable("b")
	require.NoError(t, err)
	j, err := NewJoin(left, JoinInner, right)
	require.NoError(t, err)

	on := NewConstraintList("ON")
	cmp, err := NewComparison(numCol(t, "x"), OpEqual, numCol(t, "y"))
	require.NoError(t, err)
	require.NoError(t, on.Add(cmp))
	_, err = j.SetOn(on)
	require.NoError(t, err)

	j.SetNatural(true)
	assert.Nil(t, j.On())
	assert.Equal(t, "a NATURAL INNER JOIN b", j.ToADQL())
}

func TestJoin_NestsAsFromContent(t *testing.T) {
	left, err := NewTable("a")
	require.NoError(t, err)
	right, err := NewTable("b")
	require.NoError(t, err)
	inner, err := NewJoin(left, JoinInner, right)
	require.NoError(t, err)

	c, err := NewTable("c")
	require.NoError(t, err)
	outer, err := NewJoin(inner, JoinCross, c)
	require.NoError(t, err)

	assert.Equal(t, "a INNER JOIN b CROSS JOIN c", outer.ToADQL())
}

func TestWithItem_ColumnsOverlayQueryOutput(t *testing.T) {
	sel := selectOf(t,
		item(t, numCol(t, "ra"), ""),
		item(t, numCol(t, "dec"), ""),
	)
	from, err := NewTable("gaia")
	require.NoError(t, err)
	q, err := NewQuery(sel, from)
	require.NoError(t, err)

	w, err := NewWithItem("bright", q)
	require.NoError(t, err)
	assert.Equal(t, []string{"ra", "dec"}, w.Columns())

	// Explicit labels override positionally.
	w.SetColumnLabels([]string{"alpha"})
	assert.Equal(t, []string{"alpha", "dec"}, w.Columns())
}

func TestWithItem_ColumnsTrackLaterQueryEdits(t *testing.T) {
	sel := selectOf(t, item(t, numCol(t, "ra"), ""))
	from, err := NewTable("gaia")
	require.NoError(t, err)
	q, err := NewQuery(sel, from)
	require.NoError(t, err)

	w, err := NewWithItem("bright", q)
	require.NoError(t, err)
	require.Equal(t, []string{"ra"}, w.Columns())

	// Columns is recomputed, not cached: editing the sub-query's SELECT
	// through the item changes the answer.
	require.NoError(t, w.Query().Select().Append(item(t, numCol(t, "dec"), "")))
	assert.Equal(t, []string{"ra", "dec"}, w.Columns())
}

func TestQuery_WithClauseSerialization(t *testing.T) {
	inner := simpleQuery(t, "id", "gaia")
	wi, err := NewWithItem("bright", inner)
	require.NoError(t, err)
	with := NewWithClause()
	require.NoError(t, with.Append(wi))

	outer := simpleQuery(t, "id", "bright")
	_, err = outer.SetWith(with)
	require.NoError(t, err)

	assert.Equal(t, "WITH bright AS (SELECT id FROM gaia) SELECT id FROM bright", outer.ToADQL())
}

func TestSelectItem_WildcardHasNoChildren(t *testing.T) {
	w := NewWildcardItem()
	assert.True(t, w.Wildcard())
	assert.Equal(t, "*", w.ToADQL())
	assert.False(t, w.Iterator().HasNext())
}

func TestSelectClause_LimitNormalization(t *testing.T) {
	sel := NewSelectClause()
	require.NoError(t, sel.Append(NewWildcardItem()))

	sel.SetLimit(5)
	assert.Equal(t, 5, sel.Limit())
	assert.Equal(t, "SELECT TOP 5 *", sel.ToADQL())

	sel.SetLimit(-3)
	assert.Equal(t, -1, sel.Limit())
	assert.Equal(t, "SELECT *", sel.ToADQL())
}

func TestOperation_NumericOnly(t *testing.T) {
	op, err := NewOperation(numCol(t, "a"), OpAdd, NewIntegerLiteral(5))
	require.NoError(t, err)
	assert.Equal(t, "a+5", op.ToADQL())
	assert.Equal(t, TypeNumeric, op.TypeClass())

	_, err = NewOperation(strCol(t, "s"), OpMultiply, NewIntegerLiteral(2))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestOperation_NestedSerializationGroups(t *testing.T) {
	sum, err := NewOperation(numCol(t, "a"), OpAdd, numCol(t, "b"))
	require.NoError(t, err)
	product, err := NewOperation(sum, OpMultiply, numCol(t, "c"))
	require.NoError(t, err)
	assert.Equal(t, "(a+b)*c", product.ToADQL())

	difference, err := NewOperation(numCol(t, "y"), OpSubtract, numCol(t, "z"))
	require.NoError(t, err)
	quotient, err := NewOperation(numCol(t, "x"), OpDivide, difference)
	require.NoError(t, err)
	assert.Equal(t, "x/(y-z)", quotient.ToADQL())
}

func TestNegation_GroupsCompoundOperand(t *testing.T) {
	sum, err := NewOperation(numCol(t, "x"), OpAdd, numCol(t, "y"))
	require.NoError(t, err)
	neg, err := NewNegation(sum)
	require.NoError(t, err)
	assert.Equal(t, "-(x+y)", neg.ToADQL())

	plain, err := NewNegation(numCol(t, "x"))
	require.NoError(t, err)
	assert.Equal(t, "-x", plain.ToADQL())

	nested, err := NewOperation(neg, OpMultiply, NewIntegerLiteral(2))
	require.NoError(t, err)
	assert.Equal(t, "(-(x+y))*2", nested.ToADQL())
}

func TestConcatenation_StringOnly(t *testing.T) {
	c, err := NewConcatenation(strCol(t, "first"), NewStringLiteral(" "), strCol(t, "last"))
	require.NoError(t, err)
	assert.Equal(t, "first || ' ' || last", c.ToADQL())
	assert.Equal(t, TypeString, c.TypeClass())

	_, err = NewConcatenation(strCol(t, "s"), NewIntegerLiteral(1))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
