package stencil

import "fmt"

// ErrKind classifies setup failures. Incomplete stencils are not an error
// kind: they are expected on the fringe of a decomposed mesh and degrade
// the affected edges to low order instead.
type ErrKind uint8

const (
	ErrNone ErrKind = iota
	ErrUnsupportedOrder
	ErrDegenerateFit
	ErrBadTopology
)

func (k ErrKind) String() string {
	return [...]string{"None", "UnsupportedOrder", "DegenerateFit", "BadTopology"}[k]
}

// Error carries the failure kind and the global ID of the offending entity
// (-1 when the failure is not tied to a single cell or edge).
type Error struct {
	Kind   ErrKind
	Entity int
	msg    string
}

func (e *Error) Error() string {
	if e.Entity >= 0 {
		return fmt.Sprintf("%s [entity %d]: %s", e.Kind, e.Entity, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func newError(kind ErrKind, entity int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Entity: entity, msg: fmt.Sprintf(format, args...)}
}
