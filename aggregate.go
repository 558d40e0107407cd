package adql

import "fmt"

// AggregateKind enumerates the set (aggregate) functions.
type AggregateKind int

const (
	AggCount AggregateKind = iota
	AggAvg
	AggMax
	AggMin
	AggSum
)

func (k AggregateKind) String() string {
	switch k {
	case AggCount:
		return "COUNT"
	case AggAvg:
		return "AVG"
	case AggMax:
		return "MAX"
	case AggMin:
		return "MIN"
	case AggSum:
		return "SUM"
	default:
		return fmt.Sprintf("AGGREGATE(%d)", int(k))
	}
}

// AggregateKindOf resolves a kind from its (case-insensitive) name.
func AggregateKindOf(name string) (AggregateKind, bool) {
	for k := AggCount; k <= AggSum; k++ {
		if identEqual(name, false, k.String(), false) {
			return k, true
		}
	}
	return 0, false
}

// AggregateFunction is a set function call: COUNT, AVG, MAX, MIN or SUM,
// optionally DISTINCT. COUNT may take the wildcard (*) instead of a
// parameter; every other kind takes exactly one parameter.
//
// Traversal order: the single parameter (COUNT(*) has no children). The
// parameter slot is required.
type AggregateFunction struct {
	base
	kind     AggregateKind
	distinct bool
	star     bool
	param    Operand
}

// NewAggregate builds a set function over one operand.
func NewAggregate(kind AggregateKind, param Operand, distinct bool) (*AggregateFunction, error) {
	if param == nil {
		return nil, fmt.Errorf("%w: the parameter of %s", ErrNullArgument, kind)
	}
	if err := adopt(param); err != nil {
		return nil, err
	}
	return &AggregateFunction{kind: kind, param: param, distinct: distinct}, nil
}

// NewCountStar builds COUNT(*).
func NewCountStar(distinct bool) *AggregateFunction {
	return &AggregateFunction{kind: AggCount, star: true, distinct: distinct}
}

// Kind returns the set function kind.
func (f *AggregateFunction) Kind() AggregateKind { return f.kind }

// Distinct reports whether the call is over DISTINCT values.
func (f *AggregateFunction) Distinct() bool { return f.distinct }

// Star reports whether the call is the wildcard form COUNT(*).
func (f *AggregateFunction) Star() bool { return f.star }

func (f *AggregateFunction) FunctionName() string { return f.kind.String() }

func (f *AggregateFunction) Arity() int {
	if f.star {
		return 0
	}
	return 1
}

func (f *AggregateFunction) Parameters() []Operand {
	if f.star {
		return nil
	}
	return []Operand{f.param}
}

func (f *AggregateFunction) Parameter(i int) (Operand, error) {
	if f.star || i != 0 {
		return nil, fmt.Errorf("%w: parameter %d of %s (arity %d)", ErrIndexOutOfRange, i, f.kind, f.Arity())
	}
	return f.param, nil
}

func (f *AggregateFunction) SetParameter(i int, op Operand) (Operand, error) {
	if f.star || i != 0 {
		return nil, fmt.Errorf("%w: parameter %d of %s (arity %d)", ErrIndexOutOfRange, i, f.kind, f.Arity())
	}
	if op == nil {
		return nil, fmt.Errorf("%w: parameter 0 of %s is required", ErrNullArgument, f.kind)
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := f.param
	f.param = op
	f.invalidatePosition()
	release(old)
	return old, nil
}

// TypeClass is numeric for COUNT, AVG and SUM; MAX and MIN take the class of
// their parameter (the extremum of strings is a string).
func (f *AggregateFunction) TypeClass() TypeClass {
	switch f.kind {
	case AggMax, AggMin:
		if f.param != nil {
			return f.param.TypeClass()
		}
		return TypeUnknown
	default:
		return TypeNumeric
	}
}

func (f *AggregateFunction) Name() string       { return f.kind.String() }
func (f *AggregateFunction) Category() Category { return CategoryFunction }
func (f *AggregateFunction) operandNode()       {}
func (f *AggregateFunction) functionNode()      {}

func (f *AggregateFunction) Copy() (Node, error) {
	if f.star {
		clone := NewCountStar(f.distinct)
		clone.SetPosition(f.Position().Copy())
		return clone, nil
	}
	param, err := copyAs(f.param, "parameter of "+f.kind.String())
	if err != nil {
		return nil, err
	}
	clone, err := NewAggregate(f.kind, param, f.distinct)
	if err != nil {
		return nil, copyFailed(f.kind.String(), err)
	}
	clone.SetPosition(f.Position().Copy())
	return clone, nil
}

func (f *AggregateFunction) ToADQL() string {
	inner := "*"
	if !f.star {
		inner = f.param.ToADQL()
	}
	if f.distinct {
		inner = "DISTINCT " + inner
	}
	return f.kind.String() + "(" + inner + ")"
}

// Translate renders the call in a dialect, delegating only the parameter.
func (f *AggregateFunction) Translate(tr Translator) (string, error) {
	inner := "*"
	if !f.star {
		s, err := tr.Translate(f.param)
		if err != nil {
			return "", err
		}
		inner = s
	}
	if f.distinct {
		inner = "DISTINCT " + inner
	}
	return f.kind.String() + "(" + inner + ")", nil
}

func (f *AggregateFunction) Iterator() *Iterator { return newIterator(f) }

func (f *AggregateFunction) childSlots() []slot {
	if f.star {
		return nil
	}
	return []slot{
		operandSlot(f.kind.String(), "parameter 0", func() Node { return f.param },
			func(op Operand) (Node, error) { return slotSet(&f.param, op, nil) }),
	}
}
