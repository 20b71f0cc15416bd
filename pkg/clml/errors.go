package clml

import "fmt"

// UnknownTagError reports an element encountered during structural or item
// dispatch that falls outside the recognized tag set. It is fatal: skipping
// unknown structure risks silently dropping legal text, which is worse than
// failing loudly. Node carries the serialized offending element so a schema
// gap can be diagnosed from the error alone.
type UnknownTagError struct {
	Context string // which dispatcher rejected the node
	Node    string // serialized form of the offending element
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown tag in %s dispatch: %s", e.Context, e.Node)
}

// MissingNumberError reports a numbered provision that reached list emission
// without a number string. Fatal, because downstream numbering display
// depends on every list entry carrying its source number.
type MissingNumberError struct {
	Node string // serialized form of the offending element
}

func (e *MissingNumberError) Error() string {
	return fmt.Sprintf("numbered provision has no number: %s", e.Node)
}
