package adql

import (
	"fmt"
	"strings"
)

// Translator renders nodes in a target SQL dialect. Concrete dialects live
// in the translate package; this interface is the callback contract a
// function node delegates its child operands to.
//
// A failed translation must abort serialization of the whole enclosing tree:
// partial dialect text is never emitted.
type Translator interface {
	Translate(n Node) (string, error)
}

// Function is the common surface of every function call node: an
// arity-bounded ordered array of operand parameters, and a translation
// hand-off that composes the function's own textual shell around
// dialect-translated children.
type Function interface {
	Operand

	// FunctionName returns the called name, e.g. "ROUND", "CAST", or a UDF
	// name.
	FunctionName() string

	// Arity returns the current number of parameters.
	Arity() int

	// Parameters returns the parameters in order. The returned slice is a
	// copy; mutating it does not touch the node.
	Parameters() []Operand

	// Parameter returns the i-th parameter. It fails with ErrIndexOutOfRange
	// outside [0, Arity).
	Parameter(i int) (Operand, error)

	// SetParameter replaces the i-th parameter with op and returns the
	// displaced one. It fails with ErrNullArgument when op is nil and the
	// slot is required, and with ErrIndexOutOfRange when i is invalid.
	SetParameter(i int, op Operand) (Operand, error)

	// Translate renders the function in a dialect by composing its own
	// NAME(...) shell around tr-translated children. A function never asks
	// tr to re-translate itself: that would recurse indefinitely.
	Translate(tr Translator) (string, error)

	functionNode() // Marker method - seals functions to this package
}

// arityRange is a function kind's declared (min, max) argument count.
type arityRange struct {
	min, max int
}

func (r arityRange) String() string { return fmt.Sprintf("%d..%d", r.min, r.max) }

func (r arityRange) contains(n int) bool { return n >= r.min && n <= r.max }

// checkArity validates an argument count against a declared range.
func checkArity(fn string, r arityRange, got int) error {
	if !r.contains(got) {
		return fmt.Errorf("%w: %s expects %s arguments, got %d", ErrArityMismatch, fn, r, got)
	}
	return nil
}

// paramAt shares the bounds check of Parameter across function kinds.
func paramAt(params []Operand, i int, fn string) (Operand, error) {
	if i < 0 || i >= len(params) {
		return nil, fmt.Errorf("%w: parameter %d of %s (arity %d)", ErrIndexOutOfRange, i, fn, len(params))
	}
	return params[i], nil
}

// setParamAt shares the SetParameter semantics across function kinds: the
// slot is required, so a nil replacement is refused.
func setParamAt(owner Node, params []Operand, i int, op Operand, fn string, check func(Operand) error) (Operand, error) {
	if i < 0 || i >= len(params) {
		return nil, fmt.Errorf("%w: parameter %d of %s (arity %d)", ErrIndexOutOfRange, i, fn, len(params))
	}
	if op == nil {
		return nil, fmt.Errorf("%w: parameter %d of %s is required", ErrNullArgument, i, fn)
	}
	if check != nil {
		if err := check(op); err != nil {
			return nil, err
		}
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	old := params[i]
	params[i] = op
	owner.invalidatePosition()
	release(old)
	return old, nil
}

// adoptAll claims every argument, releasing the already-claimed ones on
// failure so no half-adopted state escapes.
func adoptAll(args []Operand) error {
	for i, a := range args {
		if err := adopt(a); err != nil {
			for _, claimed := range args[:i] {
				release(claimed)
			}
			return err
		}
	}
	return nil
}

// copyParams deep-copies a parameter array.
func copyParams(params []Operand, fn string) ([]Operand, error) {
	out := make([]Operand, 0, len(params))
	for i, p := range params {
		c, err := copyAs(p, fmt.Sprintf("parameter %d of %s", i, fn))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// renderCall serializes a call shell NAME(p1, p2, ...).
func renderCall(name string, params []Operand) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.ToADQL()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// translateCall composes a call shell around dialect-translated parameters.
func translateCall(tr Translator, name string, params []Operand) (string, error) {
	parts := make([]string, len(params))
	for i, p := range params {
		s, err := tr.Translate(p)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return name + "(" + strings.Join(parts, ", ") + ")", nil
}

// paramSlots builds the traversal slot table over a function's parameters.
// Function parameters are required slots: replaceable, never removable.
func paramSlots(owner Node, params []Operand, fn string, check func(Operand) error) []slot {
	slots := make([]slot, len(params))
	for i := range params {
		i := i
		name := fmt.Sprintf("parameter %d", i)
		slots[i] = operandSlot(fn, name, func() Node { return params[i] },
			func(op Operand) (Node, error) {
				if check != nil {
					if err := check(op); err != nil {
						return nil, err
					}
				}
				if err := adopt(op); err != nil {
					return nil, err
				}
				old := params[i]
				params[i] = op
				return old, nil
			})
	}
	return slots
}
