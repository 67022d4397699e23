package legoland

// TemporalIndex records when every primitive and composite entered the
// space: its timestep, its scene, and its position in insertion order. It
// also tracks which scenes have accumulated at least one change, which
// gates snapshots.
//
// Ordered getters return fresh slices on every call. Selection walks these
// snapshots from the start each time; no traversal state is shared between
// calls.
type TemporalIndex struct {
	primitiveOrder []int
	compositeOrder []Range

	primitivesByTimestep map[int][]int
	compositesByTimestep map[int][]Range
	primitivesByScene    map[int][]int
	compositesByScene    map[int][]Range

	activeScenes map[int]bool
}

func NewTemporalIndex() *TemporalIndex {
	return &TemporalIndex{
		primitivesByTimestep: make(map[int][]int),
		compositesByTimestep: make(map[int][]Range),
		primitivesByScene:    make(map[int][]int),
		compositesByScene:    make(map[int][]Range),
		activeScenes:         make(map[int]bool),
	}
}

// RegisterPrimitive records a standalone primitive created at the given
// timestep and scene. Registration counts as activity for the scene.
func (ix *TemporalIndex) RegisterPrimitive(id, timestep, scene int) {
	ix.primitiveOrder = append(ix.primitiveOrder, id)
	ix.primitivesByTimestep[timestep] = append(ix.primitivesByTimestep[timestep], id)
	ix.primitivesByScene[scene] = append(ix.primitivesByScene[scene], id)
	ix.activeScenes[scene] = true
}

// RegisterComposite records a composite range created at the given timestep
// and scene as one unit.
func (ix *TemporalIndex) RegisterComposite(r Range, timestep, scene int) {
	ix.compositeOrder = append(ix.compositeOrder, r)
	ix.compositesByTimestep[timestep] = append(ix.compositesByTimestep[timestep], r)
	ix.compositesByScene[scene] = append(ix.compositesByScene[scene], r)
	ix.activeScenes[scene] = true
}

// MarkSceneActive records non-insertion activity (a mutation or deletion)
// under the given scene.
func (ix *TemporalIndex) MarkSceneActive(scene int) {
	ix.activeScenes[scene] = true
}

// SceneHasActivity reports whether any change was recorded under the scene.
func (ix *TemporalIndex) SceneHasActivity(scene int) bool {
	return ix.activeScenes[scene]
}

// PrimitivesInOrder returns every standalone primitive id in insertion
// order. The result is a fresh copy.
func (ix *TemporalIndex) PrimitivesInOrder() []int {
	return append([]int(nil), ix.primitiveOrder...)
}

// CompositesInOrder returns every composite range in insertion order. The
// result is a fresh copy.
func (ix *TemporalIndex) CompositesInOrder() []Range {
	return append([]Range(nil), ix.compositeOrder...)
}

// PrimitivesByTimestep returns the standalone primitives created at t.
func (ix *TemporalIndex) PrimitivesByTimestep(t int) []int {
	return append([]int(nil), ix.primitivesByTimestep[t]...)
}

// CompositesByTimestep returns the composites created at t.
func (ix *TemporalIndex) CompositesByTimestep(t int) []Range {
	return append([]Range(nil), ix.compositesByTimestep[t]...)
}

// PrimitivesByScene returns the standalone primitives created in scene s.
func (ix *TemporalIndex) PrimitivesByScene(s int) []int {
	return append([]int(nil), ix.primitivesByScene[s]...)
}

// CompositesByScene returns the composites created in scene s.
func (ix *TemporalIndex) CompositesByScene(s int) []Range {
	return append([]Range(nil), ix.compositesByScene[s]...)
}
