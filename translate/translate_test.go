package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyquery/adql"
)

func numCol(t *testing.T, name string) *adql.Column {
	t.Helper()
	c, err := adql.NewColumn(name)
	require.NoError(t, err)
	c.BindType(adql.TypeNumeric)
	return c
}

func strCol(t *testing.T, name string) *adql.Column {
	t.Helper()
	c, err := adql.NewColumn(name)
	require.NoError(t, err)
	c.BindType(adql.TypeString)
	return c
}

func buildQuery(t *testing.T, column, table string) *adql.Query {
	t.Helper()
	sel := adql.NewSelectClause()
	item, err := adql.NewSelectItem(numCol(t, column), "")
	require.NoError(t, err)
	require.NoError(t, sel.Append(item))
	from, err := adql.NewTable(table)
	require.NoError(t, err)
	q, err := adql.NewQuery(sel, from)
	require.NoError(t, err)
	return q
}

func TestDialect_TopBecomesLimit(t *testing.T) {
	q := buildQuery(t, "id", "gaia")
	q.Select().SetLimit(10)
	q.SetOffset(5)

	got, err := Postgres().Translate(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM gaia LIMIT 10 OFFSET 5", got)

	// The ADQL rendering keeps TOP; only the dialect moves it.
	assert.Equal(t, "SELECT TOP 10 id FROM gaia OFFSET 5", q.ToADQL())
}

func TestDialect_PostgresKeepsNativeILike(t *testing.T) {
	cmp, err := adql.NewComparison(strCol(t, "name"), adql.OpILike, adql.NewStringLiteral("vega%"))
	require.NoError(t, err)

	got, err := Postgres().Translate(cmp)
	require.NoError(t, err)
	assert.Equal(t, "name ILIKE 'vega%'", got)
}

func TestDialect_SQLiteLowersILike(t *testing.T) {
	cmp, err := adql.NewComparison(strCol(t, "name"), adql.OpILike, adql.NewStringLiteral("vega%"))
	require.NoError(t, err)

	got, err := SQLite().Translate(cmp)
	require.NoError(t, err)
	assert.Equal(t, "LOWER(name) LIKE LOWER('vega%')", got)

	neg, err := adql.NewComparison(strCol(t, "name"), adql.OpNotILike, adql.NewStringLiteral("vega%"))
	require.NoError(t, err)
	got, err = SQLite().Translate(neg)
	require.NoError(t, err)
	assert.Equal(t, "LOWER(name) NOT LIKE LOWER('vega%')", got)
}

func TestDialect_RenamesMathFunctions(t *testing.T) {
	trunc, err := adql.NewMathFunction(adql.MathTruncate, numCol(t, "mag"))
	require.NoError(t, err)

	got, err := Postgres().Translate(trunc)
	require.NoError(t, err)
	assert.Equal(t, "trunc(mag)", got)

	// A kind without a rename keeps its ADQL name.
	sqrt, err := adql.NewMathFunction(adql.MathSqrt, numCol(t, "flux"))
	require.NoError(t, err)
	got, err = Postgres().Translate(sqrt)
	require.NoError(t, err)
	assert.Equal(t, "SQRT(flux)", got)
}

func TestDialect_KeepsDelimitedIdentifiers(t *testing.T) {
	tbl, err := adql.NewTable("Gaia Source")
	require.NoError(t, err)
	tbl.SetDelimited(true)
	require.NoError(t, tbl.SetAlias("G", true))

	got, err := Postgres().Translate(tbl)
	require.NoError(t, err)
	assert.Equal(t, `"Gaia Source" AS "G"`, got)

	item, err := adql.NewSelectItem(numCol(t, "ra"), "")
	require.NoError(t, err)
	item.SetAlias("Right Ascension", true)
	got, err = SQLite().Translate(item)
	require.NoError(t, err)
	assert.Equal(t, `ra AS "Right Ascension"`, got)

	w, err := adql.NewWithItem("plain", buildQuery(t, "id", "gaia"))
	require.NoError(t, err)
	require.NoError(t, w.SetLabel("Bright Stars", true))
	got, err = Postgres().Translate(w)
	require.NoError(t, err)
	assert.Equal(t, `"Bright Stars" AS (SELECT id FROM gaia)`, got)
}

func TestDialect_GroupsNestedArithmetic(t *testing.T) {
	sum, err := adql.NewOperation(numCol(t, "a"), adql.OpAdd, numCol(t, "b"))
	require.NoError(t, err)
	product, err := adql.NewOperation(sum, adql.OpMultiply, numCol(t, "c"))
	require.NoError(t, err)

	got, err := Postgres().Translate(product)
	require.NoError(t, err)
	assert.Equal(t, "(a+b)*c", got)

	inner, err := adql.NewOperation(numCol(t, "x"), adql.OpAdd, numCol(t, "y"))
	require.NoError(t, err)
	neg, err := adql.NewNegation(inner)
	require.NoError(t, err)

	got, err = SQLite().Translate(neg)
	require.NoError(t, err)
	assert.Equal(t, "-(x+y)", got)
}

func TestDialect_MapsCastDatatypes(t *testing.T) {
	cast, err := adql.NewCast(strCol(t, "raw"), adql.NewDatatype(adql.DatatypeDouble))
	require.NoError(t, err)

	pg, err := Postgres().Translate(cast)
	require.NoError(t, err)
	assert.Equal(t, "CAST(raw AS DOUBLE PRECISION)", pg)

	lite, err := SQLite().Translate(cast)
	require.NoError(t, err)
	assert.Equal(t, "CAST(raw AS REAL)", lite)
}

func TestDialect_GeometricDatatypeUnsupported(t *testing.T) {
	cast, err := adql.NewCast(numCol(t, "blob"), adql.NewDatatype(adql.DatatypeRegion))
	require.NoError(t, err)

	_, err = Postgres().Translate(cast)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = SQLite().Translate(cast)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestDialect_FailureAbortsWholeQuery(t *testing.T) {
	q := buildQuery(t, "id", "gaia")
	sel := q.Select()
	cast, err := adql.NewCast(numCol(t, "blob"), adql.NewDatatype(adql.DatatypePoint))
	require.NoError(t, err)
	item, err := adql.NewSelectItem(cast, "p")
	require.NoError(t, err)
	require.NoError(t, sel.Append(item))

	got, err := Postgres().Translate(q)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Empty(t, got, "a failed translation must not leak partial text")
}

func TestDialect_UserFunctionHandOff(t *testing.T) {
	// The UDF composes its own shell; the dialect only renders the
	// parameters, so a renamed built-in nested inside keeps its dialect
	// spelling.
	inner, err := adql.NewMathFunction(adql.MathTruncate, numCol(t, "mag"))
	require.NoError(t, err)
	udf, err := adql.NewUserFunction("healpix_index", inner, numCol(t, "level"))
	require.NoError(t, err)

	got, err := Postgres().Translate(udf)
	require.NoError(t, err)
	assert.Equal(t, "healpix_index(trunc(mag), level)", got)
}

func TestDialect_FullQueryTranslation(t *testing.T) {
	q := buildQuery(t, "source_id", "gaia_source")
	where := adql.NewConstraintList("WHERE")
	like, err := adql.NewComparison(strCol(t, "designation"), adql.OpILike, adql.NewStringLiteral("gaia dr3%"))
	require.NoError(t, err)
	require.NoError(t, where.Add(like))
	plx, err := adql.NewComparison(numCol(t, "parallax"), adql.OpGreater, adql.NewIntegerLiteral(10))
	require.NoError(t, err)
	require.NoError(t, where.AddWith(adql.LogicalAnd, plx))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	orderBy := adql.NewOrderByClause()
	oi, err := adql.NewOrderItem(numCol(t, "parallax"), true)
	require.NoError(t, err)
	require.NoError(t, orderBy.Append(oi))
	_, err = q.SetOrderBy(orderBy)
	require.NoError(t, err)

	got, err := SQLite().Translate(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT source_id FROM gaia_source "+
			"WHERE LOWER(designation) LIKE LOWER('gaia dr3%') AND parallax > 10 "+
			"ORDER BY parallax DESC",
		got)
}

func TestCheckSyntax_AcceptsTranslatedQuery(t *testing.T) {
	q := buildQuery(t, "source_id", "gaia_source")
	where := adql.NewConstraintList("WHERE")
	cmp, err := adql.NewComparison(numCol(t, "parallax"), adql.OpGreaterOrEqual, adql.NewIntegerLiteral(10))
	require.NoError(t, err)
	require.NoError(t, where.Add(cmp))
	_, err = q.SetWhere(where)
	require.NoError(t, err)

	sqlText, err := SQLite().Translate(q)
	require.NoError(t, err)

	err = CheckSyntax(context.Background(),
		[]string{"CREATE TABLE gaia_source (source_id INTEGER, parallax REAL)"},
		sqlText)
	assert.NoError(t, err)
}

func TestCheckSyntax_RejectsUnknownTable(t *testing.T) {
	err := CheckSyntax(context.Background(), nil, "SELECT id FROM missing_table")
	assert.Error(t, err)
}
