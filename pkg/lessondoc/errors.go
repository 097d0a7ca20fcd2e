package lessondoc

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports a structurally invalid mutation: an unknown id or
// an operation against the wrong item type. Callers treat it as a no-op and
// surface a notice; the document is left unchanged.
type ValidationError struct {
	Op     string
	Id     uuid.UUID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lessondoc: %s on %s: %s", e.Op, e.Id, e.Reason)
}

func invalidOp(op string, id uuid.UUID, reason string) *ValidationError {
	return &ValidationError{Op: op, Id: id, Reason: reason}
}

// CodecError records a malformed wire payload encountered during decode.
// Decoding recovers by substituting the item type's default payload and
// continues with the rest of the document.
type CodecError struct {
	Index  int
	Type   string
	Reason string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("lessondoc: wire item %d (%s): %s", e.Index, e.Type, e.Reason)
}
