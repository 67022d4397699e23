package legoland

import "fmt"

// NameIndex maps user-supplied names to the primitive ids and composite
// ranges they denote. Names are write-once: rebinding fails and leaves the
// first binding untouched. Unnamed objects never appear here.
type NameIndex struct {
	entries map[string]nameEntry
}

type nameEntry struct {
	primitives []int
	composites []Range
}

func NewNameIndex() *NameIndex {
	return &NameIndex{entries: make(map[string]nameEntry)}
}

// Bind associates name with the given ids. At least one of the two id sets
// must be non-empty.
func (n *NameIndex) Bind(name string, primitives []int, composites []Range) error {
	if _, ok := n.entries[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if len(primitives) == 0 && len(composites) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptySelection, name)
	}
	n.entries[name] = nameEntry{
		primitives: append([]int(nil), primitives...),
		composites: append([]Range(nil), composites...),
	}
	return nil
}

// Has reports whether name is bound.
func (n *NameIndex) Has(name string) bool {
	_, ok := n.entries[name]
	return ok
}

// Resolve returns copies of the ids bound to name.
func (n *NameIndex) Resolve(name string) ([]int, []Range, error) {
	entry, ok := n.entries[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: name %q", ErrUnboundName, name)
	}
	return append([]int(nil), entry.primitives...),
		append([]Range(nil), entry.composites...),
		nil
}

// Len returns the number of bound names.
func (n *NameIndex) Len() int { return len(n.entries) }
