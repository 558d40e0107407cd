package adql

import "fmt"

// FunctionDef is the external signature of a user-defined function: its
// declared name and the type class of its return value. Signatures come from
// a service's UDF registry; this package only matches them against parsed
// calls.
type FunctionDef struct {
	FuncName string
	Class    TypeClass
}

// NewFunctionDef builds a signature.
func NewFunctionDef(name string, class TypeClass) (*FunctionDef, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: the name of a function signature", ErrNullArgument)
	}
	return &FunctionDef{FuncName: name, Class: class}, nil
}

// UserFunction is a call to a function outside the built-in catalog. The
// parameter list is variable-arity and ordered.
//
// A signature may be attached after construction. Without one, the call is
// unresolved and its TypeClass is TypeUnknown, which answers true to all
// three type views - a deliberate looseness: a Comparison will accept an
// unresolved call on either side without complaint, and only a later
// resolution step can reveal the pairing as incompatible.
//
// Traversal order: the parameters in call order. Every parameter slot is
// required.
type UserFunction struct {
	base
	name   string
	params []Operand
	def    *FunctionDef
}

// NewUserFunction builds a UDF call.
func NewUserFunction(name string, params ...Operand) (*UserFunction, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: the name of a user function", ErrNullArgument)
	}
	for i, p := range params {
		if p == nil {
			return nil, fmt.Errorf("%w: parameter %d of %s", ErrNullArgument, i, name)
		}
	}
	if err := adoptAll(params); err != nil {
		return nil, err
	}
	f := &UserFunction{name: name}
	f.params = append(f.params, params...)
	return f, nil
}

// AttachDefinition attaches an external signature. The signature's name must
// match the parsed function name, compared case-insensitively (after NFC
// normalization); a disagreement fails with ErrSignatureMismatch. Passing
// nil detaches the current signature and returns the call to its unresolved,
// permissive state.
func (f *UserFunction) AttachDefinition(def *FunctionDef) error {
	if def == nil {
		f.def = nil
		return nil
	}
	if !identEqual(def.FuncName, false, f.name, false) {
		return fmt.Errorf("%w: signature %q does not match function %q", ErrSignatureMismatch, def.FuncName, f.name)
	}
	f.def = def
	return nil
}

// Definition returns the attached signature, or nil while unresolved.
func (f *UserFunction) Definition() *FunctionDef { return f.def }

func (f *UserFunction) FunctionName() string { return f.name }
func (f *UserFunction) Arity() int           { return len(f.params) }

func (f *UserFunction) Parameters() []Operand {
	out := make([]Operand, len(f.params))
	copy(out, f.params)
	return out
}

func (f *UserFunction) Parameter(i int) (Operand, error) {
	return paramAt(f.params, i, f.name)
}

func (f *UserFunction) SetParameter(i int, op Operand) (Operand, error) {
	return setParamAt(f, f.params, i, op, f.name, nil)
}

// TypeClass reflects the attached signature, or TypeUnknown (permissive)
// while no signature is attached.
func (f *UserFunction) TypeClass() TypeClass {
	if f.def == nil {
		return TypeUnknown
	}
	return f.def.Class
}

func (f *UserFunction) Name() string       { return f.name }
func (f *UserFunction) Category() Category { return CategoryFunction }
func (f *UserFunction) operandNode()       {}
func (f *UserFunction) functionNode()      {}

func (f *UserFunction) Copy() (Node, error) {
	params, err := copyParams(f.params, f.name)
	if err != nil {
		return nil, err
	}
	clone, err := NewUserFunction(f.name, params...)
	if err != nil {
		return nil, copyFailed(f.name, err)
	}
	if f.def != nil {
		def := *f.def
		clone.def = &def
	}
	clone.SetPosition(f.Position().Copy())
	return clone, nil
}

func (f *UserFunction) ToADQL() string { return renderCall(f.name, f.params) }

// Translate renders the call in a dialect: the UDF composes its own
// name(...) shell and only delegates its parameters to tr.
func (f *UserFunction) Translate(tr Translator) (string, error) {
	return translateCall(tr, f.name, f.params)
}

func (f *UserFunction) Iterator() *Iterator { return newIterator(f) }

func (f *UserFunction) childSlots() []slot {
	return paramSlots(f, f.params, f.name, nil)
}
