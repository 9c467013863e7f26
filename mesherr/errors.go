// Package mesherr defines the fatal error kinds shared across the mesh
// rebuild pipeline, so every package that can fail — validate, offset,
// clip, quadtree, group, and the root facade — reports through the
// same small vocabulary instead of ad-hoc sentinel errors.
package mesherr

import "fmt"

// Kind classifies a fatal error condition. None of them is recoverable
// locally; the caller must not resubmit the offending input, or must
// remove/replace it.
type Kind int

const (
	// InvalidWorld reports a world rectangle with area < 1 unit^2.
	InvalidWorld Kind = iota
	// InvalidPolygon reports a rejected authored polygon: too few
	// vertices, clockwise winding, or non-convex.
	InvalidPolygon
	// DegenerateBounds reports a zero-extent rectangle passed to the
	// quadtree.
	DegenerateBounds
	// EngineFailure reports the offset or clip engine returning no
	// usable ring when one was expected.
	EngineFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidWorld:
		return "InvalidWorld"
	case InvalidPolygon:
		return "InvalidPolygon"
	case DegenerateBounds:
		return "DegenerateBounds"
	case EngineFailure:
		return "EngineFailure"
	default:
		return "Unknown"
	}
}

// MeshError is the concrete error type returned by every fallible
// operation in this module. Callers that need to branch on the failure
// kind should use errors.As.
type MeshError struct {
	kind Kind
	msg  string
}

// New constructs a MeshError of the given kind.
func New(kind Kind, format string, args ...any) *MeshError {
	return &MeshError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Kind reports the classification of the error.
func (e *MeshError) Kind() Kind {
	if e == nil {
		return -1
	}
	return e.kind
}

func (e *MeshError) Error() string {
	return fmt.Sprintf("navmesh2d: %s: %s", e.kind, e.msg)
}
