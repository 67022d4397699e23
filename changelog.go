package legoland

import "github.com/go-gl/mathgl/mgl64"

// Change is one entry in a space's change log. The variant set is closed:
// Addition, Mutation, and Deletion are the only implementations.
type Change interface {
	changeEntry()
}

// Addition records an object entering the space at a timestep.
type Addition struct {
	Timestep int
	Name     string
}

// Mutation records a visual-metadata update. Exactly one of the selector
// fields (Name, PrimitiveID, Timestep, SceneID) identifies what was
// mutated; unused int selectors hold -1. Subject carries either the
// selection coordinate or the before/after property values.
type Mutation struct {
	Name        string
	PrimitiveID int
	Timestep    int
	SceneID     int
	Subject     MutationSubject
}

// Deletion records an object leaving the space at a timestep. True deletion
// is deferred to a future masking scheme; entries of this kind are reserved
// for it.
type Deletion struct {
	Timestep int
	Name     string
}

func (Addition) changeEntry() {}
func (Mutation) changeEntry() {}
func (Deletion) changeEntry() {}

// MutationSubject is what a mutation touched: the selection coordinate (for
// coordinate-keyed mutations) or the before/after visual property values.
type MutationSubject struct {
	Coordinate *mgl64.Vec3
	Before     map[string]any
	After      map[string]any
}

// ChangeLog is the append-only ordered record of every high-level event
// applied to a space. Entries are never mutated or removed.
type ChangeLog struct {
	entries []Change
}

func NewChangeLog() *ChangeLog {
	return &ChangeLog{}
}

// Append adds one entry at the end of the log.
func (l *ChangeLog) Append(c Change) {
	l.entries = append(l.entries, c)
}

// Entries returns a copy of the log in order of occurrence.
func (l *ChangeLog) Entries() []Change {
	return append([]Change(nil), l.entries...)
}

// Len returns the number of logged entries.
func (l *ChangeLog) Len() int { return len(l.entries) }
