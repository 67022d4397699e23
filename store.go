package legoland

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Range is a half-open span [Start, Stop) of primitive ids. Composites are
// always stored as one contiguous range.
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of primitive ids in the range.
func (r Range) Len() int { return r.Stop - r.Start }

// Contains reports whether id falls inside the range.
func (r Range) Contains(id int) bool { return id >= r.Start && id < r.Stop }

const initialStoreCapacity = 10

// FaceStore is the dense coordinate storage for every primitive in a space.
// Rows are assigned monotonically increasing ids in insertion order and are
// never reused. The backing buffer grows by doubling so that any single
// Append or AppendRange call reallocates at most once.
type FaceStore struct {
	rows     []Faces // allocated to capacity; only [0, count) is valid
	count    int
	reallocs int
}

func NewFaceStore() *FaceStore {
	return &FaceStore{rows: make([]Faces, initialStoreCapacity)}
}

// Append stores one primitive row and returns its id.
func (s *FaceStore) Append(f Faces) int {
	if s.count >= len(s.rows) {
		s.grow(2 * len(s.rows))
	}
	id := s.count
	s.rows[id] = f
	s.count++
	return id
}

// AppendRange stores a contiguous block of rows in one call and returns the
// id range they occupy. Capacity is doubled up-front until the whole block
// fits, so the block is never split across reallocations.
func (s *FaceStore) AppendRange(block []Faces) Range {
	k := len(block)
	if s.count+k >= len(s.rows) {
		capacity := len(s.rows)
		for 2*capacity < s.count+k {
			capacity *= 2
		}
		s.grow(2 * capacity)
	}
	r := Range{Start: s.count, Stop: s.count + k}
	copy(s.rows[r.Start:r.Stop], block)
	s.count += k
	return r
}

// Get returns the row for id. Ids at or beyond Len are invalid.
func (s *FaceStore) Get(id int) (Faces, error) {
	if id < 0 || id >= s.count {
		return Faces{}, fmt.Errorf("%w: primitive id %d", ErrUnboundName, id)
	}
	return s.rows[id], nil
}

// GetRange returns an owned copy of the rows in r. The copy stays valid
// across later insertions; the backing buffer does not.
func (s *FaceStore) GetRange(r Range) ([]Faces, error) {
	if r.Start < 0 || r.Stop > s.count || r.Start > r.Stop {
		return nil, fmt.Errorf("%w: primitive range [%d, %d)", ErrUnboundName, r.Start, r.Stop)
	}
	out := make([]Faces, r.Len())
	copy(out, s.rows[r.Start:r.Stop])
	return out, nil
}

// baseVector reads a row's identity point without copying the row. The id
// must be valid.
func (s *FaceStore) baseVector(id int) mgl64.Vec3 {
	return s.rows[id][0][0]
}

// Len returns the number of rows ever appended.
func (s *FaceStore) Len() int { return s.count }

// Cap returns the current backing capacity in rows.
func (s *FaceStore) Cap() int { return len(s.rows) }

func (s *FaceStore) grow(capacity int) {
	next := make([]Faces, capacity)
	copy(next, s.rows[:s.count])
	s.rows = next
	s.reallocs++
}
