package legoland

import "errors"

// Failure kinds surfaced by Space operations. Callers discriminate with
// errors.Is; every error returned by this package wraps exactly one of these.
var (
	// ErrDuplicateName is returned when binding a name that is already bound.
	ErrDuplicateName = errors.New("name already bound in this space")
	// ErrUnboundName is returned when resolving a name, timestep, or scene
	// that has no entry, or a timestep/scene outside the valid range.
	ErrUnboundName = errors.New("no such name, timestep, or scene in this space")
	// ErrEmptySelection is returned when naming an object with no ids.
	ErrEmptySelection = errors.New("the entity to name has no ids associated with it")
	// ErrUnknownProperty is returned when mutating a visual property that
	// was never registered with the space.
	ErrUnknownProperty = errors.New("no such visual property in this space")
	// ErrInvalidScene is returned by Snapshot when the pending scene has
	// recorded no additions, mutations, or deletions.
	ErrInvalidScene = errors.New("a snapshot requires at least one change in the pending scene")
	// ErrAmbiguousSelector is returned when zero or more than one of the
	// mutually exclusive selector fields is set.
	ErrAmbiguousSelector = errors.New("exactly one selector must be set")
	// ErrUnsupportedStyle is returned for composite styles other than "default".
	ErrUnsupportedStyle = errors.New("composite style not supported")
	// ErrMalformedCoordinate is returned for selection coordinates that are
	// not three-dimensional.
	ErrMalformedCoordinate = errors.New("coordinates must be three-dimensional")
)
