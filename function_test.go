package adql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMathFunction_Serialization(t *testing.T) {
	f, err := NewMathFunction(MathSqrt, numCol(t, "flux"))
	require.NoError(t, err)

	assert.Equal(t, "SQRT", f.FunctionName())
	assert.Equal(t, 1, f.Arity())
	assert.Equal(t, "SQRT(flux)", f.ToADQL())
	assert.Equal(t, TypeNumeric, f.TypeClass())
}

func TestMathFunction_ZeroArity(t *testing.T) {
	f, err := NewMathFunction(MathPi)
	require.NoError(t, err)
	assert.Equal(t, "PI()", f.ToADQL())
}

func TestMathFunction_ArityViolations(t *testing.T) {
	// PI takes no arguments at all.
	_, err := NewMathFunction(MathPi, NewIntegerLiteral(1))
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.Contains(t, err.Error(), "0..0")

	// ROUND takes one or two.
	_, err = NewMathFunction(MathRound)
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.Contains(t, err.Error(), "1..2")

	_, err = NewMathFunction(MathRound, numCol(t, "x"), NewIntegerLiteral(2), NewIntegerLiteral(3))
	assert.ErrorIs(t, err, ErrArityMismatch)

	// MOD takes exactly two.
	_, err = NewMathFunction(MathMod, numCol(t, "x"))
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestMathFunction_OptionalSecondArgument(t *testing.T) {
	one, err := NewMathFunction(MathRound, numCol(t, "mag"))
	require.NoError(t, err)
	assert.Equal(t, "ROUND(mag)", one.ToADQL())

	two, err := NewMathFunction(MathRound, numCol(t, "mag"), NewIntegerLiteral(2))
	require.NoError(t, err)
	assert.Equal(t, "ROUND(mag, 2)", two.ToADQL())
}

func TestMathFunction_RejectsNonNumericArgument(t *testing.T) {
	_, err := NewMathFunction(MathSqrt, strCol(t, "name"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMathFunction_ParameterAccessAndMutation(t *testing.T) {
	f, err := NewMathFunction(MathPower, numCol(t, "x"), NewIntegerLiteral(2))
	require.NoError(t, err)

	p, err := f.Parameter(1)
	require.NoError(t, err)
	assert.Equal(t, "2", p.ToADQL())

	old, err := f.SetParameter(1, NewIntegerLiteral(3))
	require.NoError(t, err)
	assert.Equal(t, "2", old.ToADQL())
	assert.Equal(t, "POWER(x, 3)", f.ToADQL())

	_, err = f.Parameter(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = f.SetParameter(0, strCol(t, "name"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestMathFunctionKindOf_CaseInsensitive(t *testing.T) {
	k, ok := MathFunctionKindOf("sqrt")
	require.True(t, ok)
	assert.Equal(t, MathSqrt, k)

	_, ok = MathFunctionKindOf("NOPE")
	assert.False(t, ok)
}

func TestAggregate_Serialization(t *testing.T) {
	f, err := NewAggregate(AggAvg, numCol(t, "mag"), false)
	require.NoError(t, err)
	assert.Equal(t, "AVG(mag)", f.ToADQL())
	assert.Equal(t, TypeNumeric, f.TypeClass())

	d, err := NewAggregate(AggCount, numCol(t, "id"), true)
	require.NoError(t, err)
	assert.Equal(t, "COUNT(DISTINCT id)", d.ToADQL())
}

func TestAggregate_CountStar(t *testing.T) {
	f := NewCountStar(false)
	assert.Equal(t, "COUNT(*)", f.ToADQL())
	assert.Equal(t, TypeNumeric, f.TypeClass())
}

func TestAggregate_MinMaxTakeOperandClass(t *testing.T) {
	f, err := NewAggregate(AggMax, strCol(t, "name"), false)
	require.NoError(t, err)
	assert.Equal(t, TypeString, f.TypeClass())

	g, err := NewAggregate(AggMin, numCol(t, "mag"), false)
	require.NoError(t, err)
	assert.Equal(t, TypeNumeric, g.TypeClass())
}

func TestAggregate_NestsInOperandSlots(t *testing.T) {
	avg, err := NewAggregate(AggAvg, numCol(t, "mag"), false)
	require.NoError(t, err)

	c, err := NewComparison(avg, OpGreater, NewIntegerLiteral(12))
	require.NoError(t, err)
	assert.Equal(t, "AVG(mag) > 12", c.ToADQL())
}

func TestCast_Serialization(t *testing.T) {
	f, err := NewCast(strCol(t, "raw"), NewDatatype(DatatypeInteger))
	require.NoError(t, err)

	assert.Equal(t, "CAST", f.Name())
	assert.Equal(t, 2, f.Arity())
	assert.Equal(t, "CAST(raw AS INTEGER)", f.ToADQL())
}

func TestCast_TypeClassFollowsTarget(t *testing.T) {
	f, err := NewCast(strCol(t, "raw"), NewDatatype(DatatypeInteger))
	require.NoError(t, err)

	// The cast classifies as its target, not its source value.
	assert.Equal(t, TypeNumeric, f.TypeClass())
	assert.True(t, f.TypeClass().IsNumeric())
	assert.False(t, f.TypeClass().IsString())

	s, err := NewSizedDatatype(DatatypeVarchar, 32)
	require.NoError(t, err)
	g, err := NewCast(numCol(t, "id"), s)
	require.NoError(t, err)
	assert.Equal(t, TypeString, g.TypeClass())
	assert.Equal(t, "CAST(id AS VARCHAR(32))", g.ToADQL())
}

func TestCast_TargetSlotRequiresDatatype(t *testing.T) {
	f, err := NewCast(strCol(t, "raw"), NewDatatype(DatatypeInteger))
	require.NoError(t, err)

	_, err = f.SetParameter(1, NewIntegerLiteral(3))
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.Equal(t, "CAST(raw AS INTEGER)", f.ToADQL())

	old, err := f.SetParameter(1, NewDatatype(DatatypeDouble))
	require.NoError(t, err)
	assert.Equal(t, "INTEGER", old.ToADQL())
	assert.Equal(t, "CAST(raw AS DOUBLE PRECISION)", f.ToADQL())
}

func TestDatatype_SizedValidation(t *testing.T) {
	_, err := NewSizedDatatype(DatatypeVarchar, 0)
	assert.Error(t, err)

	_, err = NewSizedDatatype(DatatypeInteger, 8)
	assert.Error(t, err)
}

func TestUserFunction_UnresolvedIsPermissive(t *testing.T) {
	f, err := NewUserFunction("gaia_healpix", numCol(t, "ra"), numCol(t, "dec"))
	require.NoError(t, err)

	assert.Equal(t, "gaia_healpix(ra, dec)", f.ToADQL())
	assert.Equal(t, TypeUnknown, f.TypeClass())
	assert.True(t, f.TypeClass().IsNumeric())
	assert.True(t, f.TypeClass().IsString())
	assert.True(t, f.TypeClass().IsGeometry())
}

func TestUserFunction_AttachDefinitionResolvesType(t *testing.T) {
	f, err := NewUserFunction("gaia_healpix", numCol(t, "ra"))
	require.NoError(t, err)

	def, err := NewFunctionDef("GAIA_HEALPIX", TypeNumeric)
	require.NoError(t, err)

	// The match is case-insensitive.
	require.NoError(t, f.AttachDefinition(def))
	assert.Equal(t, TypeNumeric, f.TypeClass())
	assert.False(t, f.TypeClass().IsString())

	// Detaching returns to the permissive state.
	require.NoError(t, f.AttachDefinition(nil))
	assert.Equal(t, TypeUnknown, f.TypeClass())
}

func TestUserFunction_SignatureNameMustMatch(t *testing.T) {
	f, err := NewUserFunction("gaia_healpix", numCol(t, "ra"))
	require.NoError(t, err)

	def, err := NewFunctionDef("other_function", TypeNumeric)
	require.NoError(t, err)

	err = f.AttachDefinition(def)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Nil(t, f.Definition())
}

func TestUserFunction_ZeroArity(t *testing.T) {
	f, err := NewUserFunction("now")
	require.NoError(t, err)
	assert.Equal(t, "now()", f.ToADQL())
	assert.Equal(t, 0, f.Arity())
}
