package adql

import (
	"fmt"
	"strconv"
	"strings"
)

// NumericLiteral is a numeric constant. The lexical form from the source is
// preserved verbatim, so "1e3" and "1000" stay distinct in serialization.
type NumericLiteral struct {
	base
	lexical string
}

// NewNumericLiteral builds a numeric constant from its lexical form.
func NewNumericLiteral(lexical string) (*NumericLiteral, error) {
	if lexical == "" {
		return nil, fmt.Errorf("%w: the lexical form of a numeric literal", ErrNullArgument)
	}
	if _, err := strconv.ParseFloat(lexical, 64); err != nil {
		return nil, fmt.Errorf("%w: %q is not a numeric literal", ErrTypeMismatch, lexical)
	}
	return &NumericLiteral{lexical: lexical}, nil
}

// NewIntegerLiteral builds a numeric constant from an integer value.
func NewIntegerLiteral(v int64) *NumericLiteral {
	return &NumericLiteral{lexical: strconv.FormatInt(v, 10)}
}

// Value returns the literal as a float64.
func (l *NumericLiteral) Value() float64 {
	v, _ := strconv.ParseFloat(l.lexical, 64)
	return v
}

func (l *NumericLiteral) TypeClass() TypeClass { return TypeNumeric }
func (l *NumericLiteral) Name() string         { return l.lexical }
func (l *NumericLiteral) Category() Category   { return CategoryOperand }
func (l *NumericLiteral) operandNode()         {}

func (l *NumericLiteral) Copy() (Node, error) {
	clone := &NumericLiteral{lexical: l.lexical}
	clone.SetPosition(l.Position().Copy())
	return clone, nil
}

func (l *NumericLiteral) ToADQL() string      { return l.lexical }
func (l *NumericLiteral) Iterator() *Iterator { return newIterator(l) }
func (l *NumericLiteral) childSlots() []slot  { return nil }

// StringLiteral is a string constant. The stored value is the unquoted,
// unescaped text; serialization re-applies single quotes and doubles any
// embedded quote.
type StringLiteral struct {
	base
	value string
}

// NewStringLiteral builds a string constant. The empty string is a valid
// literal ('').
func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{value: value}
}

// Value returns the unquoted string value.
func (l *StringLiteral) Value() string { return l.value }

func (l *StringLiteral) TypeClass() TypeClass { return TypeString }
func (l *StringLiteral) Name() string         { return l.value }
func (l *StringLiteral) Category() Category   { return CategoryOperand }
func (l *StringLiteral) operandNode()         {}

func (l *StringLiteral) Copy() (Node, error) {
	clone := &StringLiteral{value: l.value}
	clone.SetPosition(l.Position().Copy())
	return clone, nil
}

func (l *StringLiteral) ToADQL() string {
	return "'" + strings.ReplaceAll(l.value, "'", "''") + "'"
}

func (l *StringLiteral) Iterator() *Iterator { return newIterator(l) }
func (l *StringLiteral) childSlots() []slot  { return nil }
