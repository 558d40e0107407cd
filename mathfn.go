package adql

import "fmt"

// MathFunctionKind enumerates the built-in mathematical and trigonometric
// functions, each with a declared arity range.
type MathFunctionKind int

const (
	MathAbs MathFunctionKind = iota
	MathCeiling
	MathDegrees
	MathExp
	MathFloor
	MathLog
	MathLog10
	MathMod
	MathPi
	MathPower
	MathRadians
	MathRand
	MathRound
	MathSqrt
	MathTruncate
	MathAcos
	MathAsin
	MathAtan
	MathAtan2
	MathCos
	MathCot
	MathSin
	MathTan
)

var mathNames = map[MathFunctionKind]string{
	MathAbs:      "ABS",
	MathCeiling:  "CEILING",
	MathDegrees:  "DEGREES",
	MathExp:      "EXP",
	MathFloor:    "FLOOR",
	MathLog:      "LOG",
	MathLog10:    "LOG10",
	MathMod:      "MOD",
	MathPi:       "PI",
	MathPower:    "POWER",
	MathRadians:  "RADIANS",
	MathRand:     "RAND",
	MathRound:    "ROUND",
	MathSqrt:     "SQRT",
	MathTruncate: "TRUNCATE",
	MathAcos:     "ACOS",
	MathAsin:     "ASIN",
	MathAtan:     "ATAN",
	MathAtan2:    "ATAN2",
	MathCos:      "COS",
	MathCot:      "COT",
	MathSin:      "SIN",
	MathTan:      "TAN",
}

// mathArities declares each kind's (min, max) argument count. RAND takes an
// optional seed; ROUND and TRUNCATE take an optional precision.
var mathArities = map[MathFunctionKind]arityRange{
	MathAbs:      {1, 1},
	MathCeiling:  {1, 1},
	MathDegrees:  {1, 1},
	MathExp:      {1, 1},
	MathFloor:    {1, 1},
	MathLog:      {1, 1},
	MathLog10:    {1, 1},
	MathMod:      {2, 2},
	MathPi:       {0, 0},
	MathPower:    {2, 2},
	MathRadians:  {1, 1},
	MathRand:     {0, 1},
	MathRound:    {1, 2},
	MathSqrt:     {1, 1},
	MathTruncate: {1, 2},
	MathAcos:     {1, 1},
	MathAsin:     {1, 1},
	MathAtan:     {1, 1},
	MathAtan2:    {2, 2},
	MathCos:      {1, 1},
	MathCot:      {1, 1},
	MathSin:      {1, 1},
	MathTan:      {1, 1},
}

func (k MathFunctionKind) String() string {
	if n, ok := mathNames[k]; ok {
		return n
	}
	return fmt.Sprintf("MATH(%d)", int(k))
}

// ArityRange returns the declared (min, max) argument count of the kind,
// formatted "min..max".
func (k MathFunctionKind) ArityRange() string { return mathArities[k].String() }

// MathFunctionKindOf resolves a kind from its (case-insensitive) name.
func MathFunctionKindOf(name string) (MathFunctionKind, bool) {
	for k, n := range mathNames {
		if identEqual(name, false, n, false) {
			return k, true
		}
	}
	return 0, false
}

// MathFunction is a call to one of the built-in mathematical functions.
// Every argument must be numeric-capable and the argument count must fall in
// the kind's declared arity range.
//
// Traversal order: the parameters in declaration order. Every parameter slot
// is required.
type MathFunction struct {
	base
	kind   MathFunctionKind
	params []Operand
}

// NewMathFunction builds a math function call, validating the argument count
// against the kind's declared arity range.
func NewMathFunction(kind MathFunctionKind, args ...Operand) (*MathFunction, error) {
	r, ok := mathArities[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown math function kind %d", ErrNullArgument, int(kind))
	}
	if err := checkArity(kind.String(), r, len(args)); err != nil {
		return nil, err
	}
	for i, a := range args {
		if a == nil {
			return nil, fmt.Errorf("%w: parameter %d of %s", ErrNullArgument, i, kind)
		}
		if err := checkNumericOperand(a, fmt.Sprintf("parameter %d", i), kind.String()); err != nil {
			return nil, err
		}
	}
	if err := adoptAll(args); err != nil {
		return nil, err
	}
	f := &MathFunction{kind: kind}
	f.params = append(f.params, args...)
	return f, nil
}

// Kind returns the function kind.
func (f *MathFunction) Kind() MathFunctionKind { return f.kind }

func (f *MathFunction) FunctionName() string { return f.kind.String() }
func (f *MathFunction) Arity() int           { return len(f.params) }

func (f *MathFunction) Parameters() []Operand {
	out := make([]Operand, len(f.params))
	copy(out, f.params)
	return out
}

func (f *MathFunction) Parameter(i int) (Operand, error) {
	return paramAt(f.params, i, f.kind.String())
}

func (f *MathFunction) SetParameter(i int, op Operand) (Operand, error) {
	return setParamAt(f, f.params, i, op, f.kind.String(), f.checkParam)
}

func (f *MathFunction) checkParam(op Operand) error {
	return checkNumericOperand(op, "a parameter", f.kind.String())
}

func (f *MathFunction) TypeClass() TypeClass { return TypeNumeric }
func (f *MathFunction) Name() string         { return f.kind.String() }
func (f *MathFunction) Category() Category   { return CategoryFunction }
func (f *MathFunction) operandNode()         {}
func (f *MathFunction) functionNode()        {}

func (f *MathFunction) Copy() (Node, error) {
	params, err := copyParams(f.params, f.kind.String())
	if err != nil {
		return nil, err
	}
	clone, err := NewMathFunction(f.kind, params...)
	if err != nil {
		return nil, copyFailed(f.kind.String(), err)
	}
	clone.SetPosition(f.Position().Copy())
	return clone, nil
}

func (f *MathFunction) ToADQL() string { return renderCall(f.kind.String(), f.params) }

// Translate renders the call in a dialect: the function composes its own
// NAME(...) shell and only delegates its parameters to tr.
func (f *MathFunction) Translate(tr Translator) (string, error) {
	return translateCall(tr, f.kind.String(), f.params)
}

func (f *MathFunction) Iterator() *Iterator { return newIterator(f) }

func (f *MathFunction) childSlots() []slot {
	return paramSlots(f, f.params, f.kind.String(), f.checkParam)
}
