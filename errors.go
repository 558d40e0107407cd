package adql

import "errors"

// Sentinel errors returned by constructors, setters and the traversal
// protocol. Callers discriminate with errors.Is; every error is wrapped with
// context naming the node and slot involved.
var (
	// ErrNullArgument reports a required child or argument that is absent.
	ErrNullArgument = errors.New("required argument is missing")

	// ErrTypeMismatch reports an operand whose type classification is
	// incompatible with the slot it was offered to.
	ErrTypeMismatch = errors.New("operand type mismatch")

	// ErrArityMismatch reports a function argument count outside the
	// function's declared range.
	ErrArityMismatch = errors.New("wrong number of function arguments")

	// ErrInvalidIteratorState reports a Replace or Remove attempted before
	// any successful Next.
	ErrInvalidIteratorState = errors.New("iterator has no current child")

	// ErrIteratorExhausted reports a Next called past the last child.
	ErrIteratorExhausted = errors.New("iterator exhausted")

	// ErrUnsupportedMutation reports the removal of a required slot, or a
	// replacement whose category does not match what the slot requires.
	ErrUnsupportedMutation = errors.New("unsupported mutation")

	// ErrSignatureMismatch reports a user-defined function signature whose
	// name disagrees with the function's parsed name.
	ErrSignatureMismatch = errors.New("function signature mismatch")

	// ErrCopyFailure reports a deep copy that failed because a child failed
	// to copy.
	ErrCopyFailure = errors.New("deep copy failed")

	// ErrIndexOutOfRange reports a parameter or element index outside the
	// valid bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)
