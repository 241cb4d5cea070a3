package samd

import "fmt"

// ErrorKind classifies samd package errors, mirroring sam.ErrorKind's
// wrapping-struct pattern.
type ErrorKind uint8

const (
	// NilStatic indicates NewDrafter was called with a nil static
	// automaton. A Drafter always needs a static SAM to fuse against,
	// even an empty one built over zero sequences.
	NilStatic ErrorKind = iota

	// NilTreeModel indicates NewDrafter was called with a nil TreeModel.
	// Since a weak match always delegates to the tree model, a Drafter
	// without one could not fulfill its contract.
	NilTreeModel
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case NilStatic:
		return "NilStatic"
	case NilTreeModel:
		return "NilTreeModel"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents a construction-time error raised by this package.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Is implements error comparison for errors.Is by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrNilStatic is returned by NewDrafter when static is nil.
var ErrNilStatic = &Error{Kind: NilStatic, Message: "samd: static automaton must not be nil"}

// ErrNilTreeModel is returned by NewDrafter when treeModel is nil.
var ErrNilTreeModel = &Error{Kind: NilTreeModel, Message: "samd: tree model must not be nil"}
