package legoland

import (
	"fmt"
	"sort"
)

// Standard visual property names shared by every box object.
const (
	PropFaceColor = "facecolor"
	PropEdgeColor = "edgecolor"
	PropLineWidth = "linewidth"
	PropAlpha     = "alpha"
)

// VisualMetadataStore maps property names to one value per primitive id,
// parallel to the FaceStore. Every registered property holds a value for
// every id: a property first observed mid-sequence is backfilled with its
// declared default for all earlier primitives, so lookups never hit a gap.
type VisualMetadataStore struct {
	defaults map[string]any
	values   map[string][]any
	size     int
}

func NewVisualMetadataStore() *VisualMetadataStore {
	return &VisualMetadataStore{
		defaults: make(map[string]any),
		values:   make(map[string][]any),
	}
}

// Declare registers a property name with the default used to backfill ids
// inserted before the property is first observed.
func (m *VisualMetadataStore) Declare(name string, def any) {
	m.defaults[name] = def
}

// SetOrExtend appends one entry per property for a single new primitive.
// Registered properties missing from props receive their default.
func (m *VisualMetadataStore) SetOrExtend(props map[string]any) {
	m.extend(props, 1)
}

// SetOrExtendMany appends n entries per property for the rows of a
// composite, broadcasting each value across the whole block.
func (m *VisualMetadataStore) SetOrExtendMany(props map[string]any, n int) {
	m.extend(props, n)
}

func (m *VisualMetadataStore) extend(props map[string]any, n int) {
	for name, value := range props {
		m.extendProperty(name, value, n)
	}
	// Keep previously seen properties parallel even if an insertion omits
	// them.
	for name := range m.values {
		if _, ok := props[name]; !ok {
			m.extendProperty(name, m.defaults[name], n)
		}
	}
	m.size += n
}

func (m *VisualMetadataStore) extendProperty(name string, value any, n int) {
	column, ok := m.values[name]
	if !ok {
		column = make([]any, m.size, m.size+n)
		def := m.defaults[name]
		for i := range column {
			column[i] = def
		}
	}
	for i := 0; i < n; i++ {
		column = append(column, value)
	}
	m.values[name] = column
}

// Has reports whether the property has been seen by the store.
func (m *VisualMetadataStore) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Keys returns the known property names in sorted order.
func (m *VisualMetadataStore) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for name := range m.values {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a property for one primitive id.
func (m *VisualMetadataStore) Get(name string, id int) (any, error) {
	column, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if id < 0 || id >= len(column) {
		return nil, fmt.Errorf("%w: primitive id %d", ErrUnboundName, id)
	}
	return column[id], nil
}

// GetRange returns an owned copy of the property values for ids in r.
func (m *VisualMetadataStore) GetRange(name string, r Range) ([]any, error) {
	column, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if r.Start < 0 || r.Stop > len(column) || r.Start > r.Stop {
		return nil, fmt.Errorf("%w: primitive range [%d, %d)", ErrUnboundName, r.Start, r.Stop)
	}
	out := make([]any, r.Len())
	copy(out, column[r.Start:r.Stop])
	return out, nil
}

// Row returns all property values for one primitive id.
func (m *VisualMetadataStore) Row(id int) map[string]any {
	row := make(map[string]any, len(m.values))
	for name, column := range m.values {
		if id >= 0 && id < len(column) {
			row[name] = column[id]
		}
	}
	return row
}

// Update overwrites the property value for a single primitive id.
func (m *VisualMetadataStore) Update(name string, id int, value any) error {
	column, ok := m.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if id < 0 || id >= len(column) {
		return fmt.Errorf("%w: primitive id %d", ErrUnboundName, id)
	}
	column[id] = value
	return nil
}

// UpdateRange broadcasts one value to every id in r.
func (m *VisualMetadataStore) UpdateRange(name string, r Range, value any) error {
	column, ok := m.values[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if r.Start < 0 || r.Stop > len(column) || r.Start > r.Stop {
		return fmt.Errorf("%w: primitive range [%d, %d)", ErrUnboundName, r.Start, r.Stop)
	}
	for id := r.Start; id < r.Stop; id++ {
		column[id] = value
	}
	return nil
}

// Size returns the number of primitives the store has seen.
func (m *VisualMetadataStore) Size() int { return m.size }
