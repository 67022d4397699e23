package legoland

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Space is a 3D coordinate space that tracks box-shaped objects over time.
//
// Every inserted object is indexed several ways at once: by insertion
// order, by name, by creation timestep, by scene, and by dense coordinate
// storage, so later calls can select and mutate subsets cheaply. The space
// exclusively owns all of its stores; reads that cross a mutation boundary
// are handed out as copies.
//
// A Space is not safe for concurrent use. All operations run to completion
// synchronously.
type Space struct {
	id  string
	log Logger

	coordinates *FaceStore
	metadata    *VisualMetadataStore
	index       *TemporalIndex
	names       *NameIndex
	bounds      *BoundsTracker
	changelog   *ChangeLog

	numObjs          int
	primitiveCounter int
	timeStep         int
	sceneCounter     int
}

// NewSpace returns an empty space with the standard visual properties
// declared and a no-op logger installed.
func NewSpace() *Space {
	metadata := NewVisualMetadataStore()
	metadata.Declare(PropFaceColor, defaultFaceColor)
	metadata.Declare(PropEdgeColor, defaultEdgeColor)
	metadata.Declare(PropLineWidth, defaultLineWidth)
	metadata.Declare(PropAlpha, defaultAlpha)

	return &Space{
		id:          uuid.NewString(),
		log:         NewNopLogger(),
		coordinates: NewFaceStore(),
		metadata:    metadata,
		index:       NewTemporalIndex(),
		names:       NewNameIndex(),
		bounds:      NewBoundsTracker(),
		changelog:   NewChangeLog(),
	}
}

// ID returns the space's unique identity tag.
func (s *Space) ID() string { return s.id }

// SetLogger replaces the space's logger.
func (s *Space) SetLogger(l Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	s.log = l
}

// Logger returns the space's logger; never nil.
func (s *Space) Logger() Logger { return s.log }

// AddCube inserts a cube primitive.
func (s *Space) AddCube(c *Cube) error { return s.AddPrimitive(c) }

// AddCuboid inserts a cuboid primitive.
func (s *Space) AddCuboid(c *Cuboid) error { return s.AddPrimitive(c) }

// AddPrimitive inserts one box-shaped object as a single primitive. The
// primitive counter, object count, and timestep each advance by one, and
// the space's bounds widen over exactly the inserted geometry.
func (s *Space) AddPrimitive(p Primitive) error {
	name := p.ObjectName()
	if name != "" && s.names.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	id := s.primitiveCounter
	s.insert([]Faces{p.PrimitiveFaces()}, p.BoundingBox(), p.VisualMetadata(), s.timeStep, false)
	if name != "" {
		if err := s.names.Bind(name, []int{id}, nil); err != nil {
			return err
		}
	}
	s.changelog.Append(Addition{Timestep: s.timeStep, Name: name})
	s.log.Debugf("primitive %d added at t=%d scene=%d", id, s.timeStep, s.sceneCounter)
	s.timeStep++
	return nil
}

// AddComposite inserts a grouped object as one contiguous block of
// primitive rows. The primitive counter advances by the row count, while
// the object count and timestep advance by exactly one: a composite is one
// object regardless of how many rows it adds.
func (s *Space) AddComposite(c Composite) error {
	if style := c.Style(); style != StyleDefault {
		return fmt.Errorf("%w: %q", ErrUnsupportedStyle, style)
	}
	name := c.ObjectName()
	if name != "" && s.names.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	rows := c.CompositeFaces()
	if len(rows) == 0 {
		return fmt.Errorf("%w: composite has no rows", ErrEmptySelection)
	}

	r := Range{Start: s.primitiveCounter, Stop: s.primitiveCounter + len(rows)}
	s.insert(rows, c.BoundingBox(), c.VisualMetadata(), s.timeStep, true)
	if name != "" {
		if err := s.names.Bind(name, nil, []Range{r}); err != nil {
			return err
		}
	}
	s.changelog.Append(Addition{Timestep: s.timeStep, Name: name})
	s.log.Debugf("composite [%d, %d) added at t=%d scene=%d", r.Start, r.Stop, s.timeStep, s.sceneCounter)
	s.timeStep++
	return nil
}

// insert performs the store updates shared by every insertion: bounds,
// coordinates, metadata, temporal index, and counters. The caller owns the
// timestep advance, naming, and change logging.
func (s *Space) insert(rows []Faces, box AABB, props map[string]any, timestep int, composite bool) {
	// One centroid and one denominator unit per object, but row-level
	// extrema: a composite widens dims over all of its rows.
	s.bounds.Observe(centroidOfRows(rows), box, s.primitiveCounter+1)

	if composite {
		r := s.coordinates.AppendRange(rows)
		s.metadata.SetOrExtendMany(props, r.Len())
		s.index.RegisterComposite(r, timestep, s.sceneCounter)
		s.primitiveCounter += r.Len()
	} else {
		id := s.coordinates.Append(rows[0])
		s.metadata.SetOrExtend(props)
		s.index.RegisterPrimitive(id, timestep, s.sceneCounter)
		s.primitiveCounter++
	}
	s.numObjs++
}

// SelectByCoordinate returns every standalone primitive and composite
// whose base vector equals coordinate. The coordinate is given in the
// caller's width/height/depth order and is compared after the documented
// permutation onto storage axes.
//
// Comparison is exact floating-point equality, with no tolerance: values
// that differ by one ulp do not match.
//
// A matching id counts as a composite only when it is the first row of a
// registered composite range; rows in the middle of a composite never
// match. No match at all yields empty results, not an error.
func (s *Space) SelectByCoordinate(coordinate []float64) ([]int, []Range, error) {
	if len(coordinate) != 3 {
		return nil, nil, fmt.Errorf("%w: got %d components", ErrMalformedCoordinate, len(coordinate))
	}
	target := permuteToStorage(mgl64.Vec3{coordinate[0], coordinate[1], coordinate[2]})

	var matches []int
	for id := 0; id < s.primitiveCounter; id++ {
		if s.coordinates.baseVector(id) == target {
			matches = append(matches, id)
		}
	}

	// Fresh insertion-order snapshots on every call. Both snapshots and
	// the match list are ascending in id, so a single forward walk
	// classifies each match.
	primOrder := s.index.PrimitivesInOrder()
	compOrder := s.index.CompositesInOrder()

	var primitives []int
	var composites []Range
	pi, ci := 0, 0
	for _, id := range matches {
		for pi < len(primOrder) && primOrder[pi] < id {
			pi++
		}
		if pi < len(primOrder) && primOrder[pi] == id {
			primitives = append(primitives, id)
			pi++
			continue
		}
		for ci < len(compOrder) && compOrder[ci].Start < id {
			ci++
		}
		if ci < len(compOrder) && compOrder[ci].Start == id {
			composites = append(composites, compOrder[ci])
			ci++
		}
	}
	return primitives, composites, nil
}

// SelectByName returns the ids bound to name.
func (s *Space) SelectByName(name string) ([]int, []Range, error) {
	return s.names.Resolve(name)
}

// SelectByTimestep returns the objects created at timestep t.
func (s *Space) SelectByTimestep(t int) ([]int, []Range, error) {
	if t < 0 || t > s.timeStep {
		return nil, nil, fmt.Errorf("%w: timestep %d", ErrUnboundName, t)
	}
	return s.index.PrimitivesByTimestep(t), s.index.CompositesByTimestep(t), nil
}

// SelectByScene returns the objects created in scene sc.
func (s *Space) SelectByScene(sc int) ([]int, []Range, error) {
	if sc < 0 || sc > s.sceneCounter {
		return nil, nil, fmt.Errorf("%w: scene %d", ErrUnboundName, sc)
	}
	return s.index.PrimitivesByScene(sc), s.index.CompositesByScene(sc), nil
}

// MutateByCoordinate applies the property updates to every object whose
// base vector equals coordinate.
func (s *Space) MutateByCoordinate(coordinate []float64, updates map[string]any) error {
	primitives, composites, err := s.SelectByCoordinate(coordinate)
	if err != nil {
		return err
	}
	target := mgl64.Vec3{coordinate[0], coordinate[1], coordinate[2]}
	return s.mutate(primitives, composites, updates, Mutation{
		PrimitiveID: -1,
		Timestep:    -1,
		SceneID:     -1,
		Subject:     MutationSubject{Coordinate: &target},
	})
}

// MutateByName applies the property updates to the object bound to name.
func (s *Space) MutateByName(name string, updates map[string]any) error {
	primitives, composites, err := s.SelectByName(name)
	if err != nil {
		return err
	}
	return s.mutate(primitives, composites, updates, Mutation{
		Name:        name,
		PrimitiveID: -1,
		Timestep:    -1,
		SceneID:     -1,
	})
}

// MutateByTimestep applies the property updates to every object created at
// timestep t.
func (s *Space) MutateByTimestep(t int, updates map[string]any) error {
	primitives, composites, err := s.SelectByTimestep(t)
	if err != nil {
		return err
	}
	return s.mutate(primitives, composites, updates, Mutation{
		PrimitiveID: -1,
		Timestep:    t,
		SceneID:     -1,
	})
}

// MutateByScene applies the property updates to every object created in
// scene sc.
func (s *Space) MutateByScene(sc int, updates map[string]any) error {
	primitives, composites, err := s.SelectByScene(sc)
	if err != nil {
		return err
	}
	return s.mutate(primitives, composites, updates, Mutation{
		PrimitiveID: -1,
		Timestep:    -1,
		SceneID:     sc,
	})
}

// mutate validates every property name before touching any store, so a
// failed call leaves the space unchanged. An empty selection applies and
// logs nothing.
func (s *Space) mutate(primitives []int, composites []Range, updates map[string]any, entry Mutation) error {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !s.metadata.Has(key) {
			return fmt.Errorf("%w: %q", ErrUnknownProperty, key)
		}
	}
	if len(primitives) == 0 && len(composites) == 0 {
		return nil
	}

	if entry.Subject.Coordinate == nil {
		firstID := 0
		if len(primitives) > 0 {
			firstID = primitives[0]
		} else {
			firstID = composites[0].Start
		}
		before := make(map[string]any, len(keys))
		after := make(map[string]any, len(keys))
		for _, key := range keys {
			value, _ := s.metadata.Get(key, firstID)
			before[key] = value
			after[key] = updates[key]
		}
		entry.Subject.Before = before
		entry.Subject.After = after
	}

	for _, key := range keys {
		for _, id := range primitives {
			if err := s.metadata.Update(key, id, updates[key]); err != nil {
				return err
			}
		}
		for _, r := range composites {
			if err := s.metadata.UpdateRange(key, r, updates[key]); err != nil {
				return err
			}
		}
	}

	s.changelog.Append(entry)
	s.index.MarkSceneActive(s.sceneCounter)
	s.log.Debugf("mutated %d primitives, %d composites in scene %d",
		len(primitives), len(composites), s.sceneCounter)
	return nil
}

// Selector picks objects by exactly one of its fields: a base-vector
// coordinate, a bound name, a creation timestep, or a creation scene.
type Selector struct {
	Coordinate []float64
	Name       string
	Timestep   *int
	Scene      *int
}

func (s *Space) resolveSelector(sel Selector) ([]int, []Range, error) {
	set := 0
	if sel.Coordinate != nil {
		set++
	}
	if sel.Name != "" {
		set++
	}
	if sel.Timestep != nil {
		set++
	}
	if sel.Scene != nil {
		set++
	}
	if set != 1 {
		return nil, nil, fmt.Errorf("%w: %d selectors set", ErrAmbiguousSelector, set)
	}

	switch {
	case sel.Coordinate != nil:
		return s.SelectByCoordinate(sel.Coordinate)
	case sel.Name != "":
		return s.SelectByName(sel.Name)
	case sel.Timestep != nil:
		return s.SelectByTimestep(*sel.Timestep)
	default:
		return s.SelectByScene(*sel.Scene)
	}
}

// CreateByOffset duplicates every object in the selection, shifted by
// offset (given in width/height/depth order, applied to base vectors).
// Clones inherit the source's visual metadata, with overrides applied on
// top, and are unnamed. All clones share a single new timestep regardless
// of how many objects the selection contained.
func (s *Space) CreateByOffset(offset []float64, sel Selector, overrides map[string]any) error {
	if len(offset) != 3 {
		return fmt.Errorf("%w: got %d components", ErrMalformedCoordinate, len(offset))
	}
	primitives, composites, err := s.resolveSelector(sel)
	if err != nil {
		return err
	}
	for key := range overrides {
		if !s.metadata.Has(key) {
			return fmt.Errorf("%w: %q", ErrUnknownProperty, key)
		}
	}
	if len(primitives) == 0 && len(composites) == 0 {
		return nil
	}

	delta := permuteToStorage(mgl64.Vec3{offset[0], offset[1], offset[2]})
	t := s.timeStep

	for _, id := range primitives {
		source, err := s.coordinates.Get(id)
		if err != nil {
			return err
		}
		rows := []Faces{translateFaces(source, delta)}
		s.insert(rows, boxOfRows(rows), s.cloneProps(id, overrides), t, false)
		s.changelog.Append(Addition{Timestep: t})
	}
	for _, r := range composites {
		source, err := s.coordinates.GetRange(r)
		if err != nil {
			return err
		}
		rows := make([]Faces, len(source))
		for i, row := range source {
			rows[i] = translateFaces(row, delta)
		}
		s.insert(rows, boxOfRows(rows), s.cloneProps(r.Start, overrides), t, true)
		s.changelog.Append(Addition{Timestep: t})
	}

	s.log.Debugf("created %d objects by offset at t=%d", len(primitives)+len(composites), t)
	s.timeStep++
	return nil
}

func (s *Space) cloneProps(sourceID int, overrides map[string]any) map[string]any {
	props := s.metadata.Row(sourceID)
	for key, value := range overrides {
		props[key] = value
	}
	return props
}

// Snapshot closes the pending scene, making it available to RenderView,
// and opens the next one. The pending scene must have recorded at least
// one addition, mutation, or deletion since the previous snapshot.
func (s *Space) Snapshot() error {
	if !s.index.SceneHasActivity(s.sceneCounter) {
		return fmt.Errorf("%w: scene %d", ErrInvalidScene, s.sceneCounter)
	}
	s.log.Debugf("scene %d closed at t=%d", s.sceneCounter, s.timeStep)
	s.sceneCounter++
	return nil
}

// NumObjects returns the number of add calls: a composite counts once.
func (s *Space) NumObjects() int { return s.numObjs }

// PrimitiveCount returns the number of primitive rows ever inserted.
func (s *Space) PrimitiveCount() int { return s.primitiveCounter }

// TimeStep returns the number of insertion calls performed so far.
func (s *Space) TimeStep() int { return s.timeStep }

// SceneCount returns the number of closed scenes.
func (s *Space) SceneCount() int { return s.sceneCounter }

// Dims returns the per-axis extrema over every primitive ever inserted.
func (s *Space) Dims() AABB { return s.bounds.Dims() }

// Mean returns the running centroid of the space.
func (s *Space) Mean() mgl64.Vec3 { return s.bounds.Mean() }

// Total returns the running per-axis centroid sum.
func (s *Space) Total() mgl64.Vec3 { return s.bounds.Total() }

// Changes returns a copy of the change log in order of occurrence.
func (s *Space) Changes() []Change { return s.changelog.Entries() }

// Faces returns the geometry of one primitive.
func (s *Space) Faces(id int) (Faces, error) { return s.coordinates.Get(id) }

// FacesRange returns an owned copy of the geometry for a range of
// primitives.
func (s *Space) FacesRange(r Range) ([]Faces, error) { return s.coordinates.GetRange(r) }

// Property returns the value of a visual property for one primitive.
func (s *Space) Property(name string, id int) (any, error) { return s.metadata.Get(name, id) }

// PropertyRange returns an owned copy of a property's values over a range
// of primitives.
func (s *Space) PropertyRange(name string, r Range) ([]any, error) {
	return s.metadata.GetRange(name, r)
}

// PropertyKeys returns the known visual property names in sorted order.
func (s *Space) PropertyKeys() []string { return s.metadata.Keys() }

// translateFaces shifts every vertex of a row by delta.
func translateFaces(f Faces, delta mgl64.Vec3) Faces {
	var out Faces
	for i, face := range f {
		for j, v := range face {
			out[i][j] = v.Add(delta)
		}
	}
	return out
}
