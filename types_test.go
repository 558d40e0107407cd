package adql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeClass_ExclusiveClasses(t *testing.T) {
	assert.True(t, TypeNumeric.IsNumeric())
	assert.False(t, TypeNumeric.IsString())
	assert.False(t, TypeNumeric.IsGeometry())

	assert.True(t, TypeString.IsString())
	assert.False(t, TypeString.IsNumeric())
	assert.False(t, TypeString.IsGeometry())

	assert.True(t, TypeGeometry.IsGeometry())
	assert.False(t, TypeGeometry.IsNumeric())
	assert.False(t, TypeGeometry.IsString())
}

func TestTypeClass_UnknownIsPermissive(t *testing.T) {
	// An unresolved operand passes every classification view until a
	// binding pins it down.
	assert.True(t, TypeUnknown.IsNumeric())
	assert.True(t, TypeUnknown.IsString())
	assert.True(t, TypeUnknown.IsGeometry())

	// The unresolved state stays distinct and checkable.
	assert.NotEqual(t, TypeUnknown, TypeNumeric)
	assert.NotEqual(t, TypeUnknown, TypeString)
	assert.NotEqual(t, TypeUnknown, TypeGeometry)
}

func TestCategory_Accepts(t *testing.T) {
	assert.True(t, CategoryOperand.Accepts(CategoryOperand))
	// Functions produce values, so operand slots take them.
	assert.True(t, CategoryOperand.Accepts(CategoryFunction))

	assert.False(t, CategoryOperand.Accepts(CategoryPredicate))
	assert.False(t, CategoryPredicate.Accepts(CategoryOperand))
	assert.False(t, CategoryFunction.Accepts(CategoryOperand))
}

func TestColumn_BindType(t *testing.T) {
	c, err := NewColumn("ra")
	require.NoError(t, err)

	assert.Equal(t, TypeUnknown, c.TypeClass())

	c.BindType(TypeNumeric)
	assert.Equal(t, TypeNumeric, c.TypeClass())
	assert.True(t, c.TypeClass().IsNumeric())
	assert.False(t, c.TypeClass().IsString())
}

func TestColumn_QualifiedSerialization(t *testing.T) {
	c, err := NewQualifiedColumn("gaia", "ra")
	require.NoError(t, err)

	assert.Equal(t, "gaia.ra", c.ToADQL())
	assert.Equal(t, "ra", c.Name())
}

func TestNumericLiteral_PreservesLexicalForm(t *testing.T) {
	l, err := NewNumericLiteral("1.50e2")
	require.NoError(t, err)

	assert.Equal(t, "1.50e2", l.ToADQL())
	assert.Equal(t, TypeNumeric, l.TypeClass())
}

func TestNumericLiteral_RejectsNonNumericText(t *testing.T) {
	_, err := NewNumericLiteral("abc")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestStringLiteral_EscapesQuotes(t *testing.T) {
	l := NewStringLiteral("O'Neill")
	assert.Equal(t, "'O''Neill'", l.ToADQL())
	assert.Equal(t, TypeString, l.TypeClass())
}

func TestPosition_String(t *testing.T) {
	p := NewPosition(3, 14, 3, 20)
	assert.Equal(t, "[l.3 c.14 - l.3 c.20]", p.String())
}

func TestPosition_CopyIsIndependent(t *testing.T) {
	p := NewPosition(1, 2, 3, 4)
	c := p.Copy()

	require.NotNil(t, c)
	require.NotSame(t, p, c)
	assert.Equal(t, *p, *c)

	var nilPos *Position
	assert.Nil(t, nilPos.Copy())
}
