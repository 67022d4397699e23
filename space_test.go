package legoland

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpace_TwoSceneScenario(t *testing.T) {
	space := NewSpace()

	a := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	a.Name = "a"
	require.NoError(t, space.AddCube(a))
	require.NoError(t, space.Snapshot())

	b := NewCube(mgl64.Vec3{1, 0, 0}, 1)
	b.Name = "b"
	require.NoError(t, space.AddCube(b))
	require.NoError(t, space.Snapshot())

	assert.Equal(t, 2, space.NumObjects())
	assert.Equal(t, 2, space.PrimitiveCount())
	assert.Equal(t, 2, space.TimeStep())
	assert.Equal(t, 2, space.SceneCount())

	primitives, composites, err := space.SelectByName("a")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, primitives)
	assert.Empty(t, composites)

	frames := space.RenderView()
	require.Len(t, frames, 3)
	assert.Equal(t, []int{0}, frames[0].Primitives)
	assert.Equal(t, []int{1}, frames[1].Primitives)
	assert.Empty(t, frames[2].Primitives)
	assert.Empty(t, frames[2].Composites)

	changes := space.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, Addition{Timestep: 0, Name: "a"}, changes[0])
	assert.Equal(t, Addition{Timestep: 1, Name: "b"}, changes[1])
}

func TestSpace_CompositeCounters(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 4, 3, 1)
	require.NoError(t, space.AddComposite(composite))

	assert.Equal(t, 1, space.NumObjects())
	assert.Equal(t, 12, space.PrimitiveCount())
	assert.Equal(t, 1, space.TimeStep())
}

func TestSpace_NamedCompositeRoundTrip(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 3, 1, 1)
	composite.Name = "wall"
	require.NoError(t, space.AddComposite(composite))

	primitives, composites, err := space.SelectByName("wall")
	require.NoError(t, err)
	assert.Empty(t, primitives)
	require.Len(t, composites, 1)
	assert.Equal(t, Range{Start: 0, Stop: 3}, composites[0])
	assert.Equal(t, 3, composites[0].Len())
}

func TestSpace_DuplicateNameLeavesSpaceUntouched(t *testing.T) {
	space := NewSpace()

	first := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	first.Name = "anchor"
	require.NoError(t, space.AddCube(first))

	second := NewCube(mgl64.Vec3{5, 5, 5}, 1)
	second.Name = "anchor"
	err := space.AddCube(second)
	require.ErrorIs(t, err, ErrDuplicateName)

	assert.Equal(t, 1, space.NumObjects())
	assert.Equal(t, 1, space.PrimitiveCount())
	assert.Equal(t, 1, space.TimeStep())
	assert.Len(t, space.Changes(), 1)
}

func TestSpace_SelectByCoordinate(t *testing.T) {
	space := NewSpace()

	cube := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	require.NoError(t, space.AddCube(cube))
	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 3, 1, 1)
	require.NoError(t, space.AddComposite(composite))

	// Both the primitive and the composite base at the origin.
	primitives, composites, err := space.SelectByCoordinate([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, primitives)
	assert.Equal(t, []Range{{Start: 1, Stop: 4}}, composites)

	// The second row of the composite sits at width 1, but a mid-composite
	// row is not an addressable object.
	primitives, composites, err = space.SelectByCoordinate([]float64{1, 0, 0})
	require.NoError(t, err)
	assert.Empty(t, primitives)
	assert.Empty(t, composites)

	// No match is not an error.
	primitives, composites, err = space.SelectByCoordinate([]float64{9, 9, 9})
	require.NoError(t, err)
	assert.Empty(t, primitives)
	assert.Empty(t, composites)

	_, _, err = space.SelectByCoordinate([]float64{0, 0})
	assert.ErrorIs(t, err, ErrMalformedCoordinate)
}

func TestSpace_SelectByCoordinatePermutesAxes(t *testing.T) {
	space := NewSpace()

	cube := NewCube(mgl64.Vec3{1, 2, 3}, 1)
	require.NoError(t, space.AddCube(cube))

	// Selection takes the same width/height/depth order the constructor did.
	primitives, _, err := space.SelectByCoordinate([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, primitives)

	// The storage-order permutation of the same point does not match.
	primitives, _, err = space.SelectByCoordinate([]float64{1, 3, 2})
	require.NoError(t, err)
	assert.Empty(t, primitives)
}

func TestSpace_SelectByTimestepAndScene(t *testing.T) {
	space := NewSpace()

	require.NoError(t, space.AddCube(NewCube(mgl64.Vec3{0, 0, 0}, 1)))
	require.NoError(t, space.Snapshot())
	require.NoError(t, space.AddComposite(NewCompositeCube(mgl64.Vec3{2, 0, 0}, 2, 1, 1)))

	primitives, composites, err := space.SelectByTimestep(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, primitives)
	assert.Empty(t, composites)

	primitives, composites, err = space.SelectByTimestep(1)
	require.NoError(t, err)
	assert.Empty(t, primitives)
	assert.Equal(t, []Range{{Start: 1, Stop: 3}}, composites)

	_, _, err = space.SelectByTimestep(7)
	assert.ErrorIs(t, err, ErrUnboundName)

	primitives, composites, err = space.SelectByScene(1)
	require.NoError(t, err)
	assert.Empty(t, primitives)
	assert.Equal(t, []Range{{Start: 1, Stop: 3}}, composites)

	_, _, err = space.SelectByScene(-1)
	assert.ErrorIs(t, err, ErrUnboundName)
}

func TestSpace_MutateByName(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 3, 1, 1)
	composite.Name = "wall"
	require.NoError(t, space.AddComposite(composite))

	require.NoError(t, space.MutateByName("wall", map[string]any{
		PropAlpha:     0.5,
		PropFaceColor: "red",
	}))

	values, err := space.PropertyRange(PropAlpha, Range{Start: 0, Stop: 3})
	require.NoError(t, err)
	assert.Equal(t, []any{0.5, 0.5, 0.5}, values)
	value, err := space.Property(PropFaceColor, 2)
	require.NoError(t, err)
	assert.Equal(t, "red", value)

	changes := space.Changes()
	require.Len(t, changes, 2)
	mutation, ok := changes[1].(Mutation)
	require.True(t, ok)
	assert.Equal(t, "wall", mutation.Name)
	assert.Equal(t, -1, mutation.Timestep)
	assert.Equal(t, map[string]any{PropAlpha: 0.0, PropFaceColor: ""}, mutation.Subject.Before)
	assert.Equal(t, map[string]any{PropAlpha: 0.5, PropFaceColor: "red"}, mutation.Subject.After)
}

func TestSpace_MutateByCoordinateRecordsTarget(t *testing.T) {
	space := NewSpace()
	require.NoError(t, space.AddCube(NewCube(mgl64.Vec3{1, 2, 3}, 1)))

	require.NoError(t, space.MutateByCoordinate([]float64{1, 2, 3}, map[string]any{
		PropEdgeColor: "blue",
	}))

	changes := space.Changes()
	require.Len(t, changes, 2)
	mutation, ok := changes[1].(Mutation)
	require.True(t, ok)
	require.NotNil(t, mutation.Subject.Coordinate)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, *mutation.Subject.Coordinate)
}

func TestSpace_MutateUnknownPropertyAppliesNothing(t *testing.T) {
	space := NewSpace()

	cube := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	cube.Name = "a"
	require.NoError(t, space.AddCube(cube))

	err := space.MutateByName("a", map[string]any{
		PropAlpha: 0.9,
		"glow":    true,
	})
	require.ErrorIs(t, err, ErrUnknownProperty)

	// The valid key must not have been applied either.
	value, err := space.Property(PropAlpha, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
	assert.Len(t, space.Changes(), 1)
}

func TestSpace_MutateEmptySelectionLogsNothing(t *testing.T) {
	space := NewSpace()
	require.NoError(t, space.AddCube(NewCube(mgl64.Vec3{0, 0, 0}, 1)))

	require.NoError(t, space.MutateByCoordinate([]float64{9, 9, 9}, map[string]any{
		PropAlpha: 0.4,
	}))

	assert.Len(t, space.Changes(), 1)
	value, err := space.Property(PropAlpha, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestSpace_SnapshotRequiresActivity(t *testing.T) {
	space := NewSpace()

	err := space.Snapshot()
	require.ErrorIs(t, err, ErrInvalidScene)

	require.NoError(t, space.AddCube(NewCube(mgl64.Vec3{0, 0, 0}, 1)))
	require.NoError(t, space.Snapshot())

	// A second snapshot with no intervening activity fails.
	err = space.Snapshot()
	require.ErrorIs(t, err, ErrInvalidScene)

	// A mutation alone is enough activity to close a scene.
	require.NoError(t, space.MutateByCoordinate([]float64{0, 0, 0}, map[string]any{
		PropAlpha: 0.2,
	}))
	require.NoError(t, space.Snapshot())
	assert.Equal(t, 2, space.SceneCount())
}

func TestSpace_MeanUsesRowDenominator(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 2, 1, 1)
	require.NoError(t, space.AddComposite(composite))
	require.NoError(t, space.AddCube(NewCube(mgl64.Vec3{4, 0, 0}, 1)))

	// Two observations went into the total, but the denominator tracks the
	// primitive counter: 3 rows, not 2 objects.
	want := space.Total().Mul(1.0 / 3.0)
	assert.True(t, vecNear(want, space.Mean()), "Expected mean %v, got %v", want, space.Mean())
}

func TestSpace_DimsWidenOverCompositeRows(t *testing.T) {
	space := NewSpace()

	require.NoError(t, space.AddComposite(NewCompositeCube(mgl64.Vec3{0, 0, 0}, 3, 2, 1)))

	dims := space.Dims()
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, dims.Min)
	assert.Equal(t, mgl64.Vec3{3, 1, 2}, dims.Max)
}

func TestSpace_CreateByOffset(t *testing.T) {
	space := NewSpace()

	cube := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	cube.Name = "seed"
	cube.FaceColor = "green"
	require.NoError(t, space.AddCube(cube))

	require.NoError(t, space.CreateByOffset([]float64{2, 0, 0}, Selector{Name: "seed"}, map[string]any{
		PropAlpha: 0.7,
	}))

	assert.Equal(t, 2, space.NumObjects())
	assert.Equal(t, 2, space.PrimitiveCount())
	assert.Equal(t, 2, space.TimeStep())

	// The clone lands at the shifted coordinate and is unnamed.
	primitives, _, err := space.SelectByCoordinate([]float64{2, 0, 0})
	require.NoError(t, err)
	require.Equal(t, []int{1}, primitives)
	changes := space.Changes()
	require.Len(t, changes, 2)
	assert.Equal(t, Addition{Timestep: 1}, changes[1])

	// Inherited metadata with the override on top; the source is untouched.
	value, err := space.Property(PropFaceColor, 1)
	require.NoError(t, err)
	assert.Equal(t, "green", value)
	value, err = space.Property(PropAlpha, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.7, value)
	value, err = space.Property(PropAlpha, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

func TestSpace_CreateByOffsetComposite(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 2, 1, 1)
	composite.Name = "pair"
	require.NoError(t, space.AddComposite(composite))

	require.NoError(t, space.CreateByOffset([]float64{0, 5, 0}, Selector{Name: "pair"}, nil))

	assert.Equal(t, 2, space.NumObjects())
	assert.Equal(t, 4, space.PrimitiveCount())
	assert.Equal(t, 2, space.TimeStep())

	// Height 5 in caller order lands on the third storage axis.
	faces, err := space.Faces(2)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, faces.BaseVector())

	_, composites, err := space.SelectByCoordinate([]float64{0, 5, 0})
	require.NoError(t, err)
	assert.Equal(t, []Range{{Start: 2, Stop: 4}}, composites)
}

func TestSpace_CreateByOffsetValidation(t *testing.T) {
	space := NewSpace()
	cube := NewCube(mgl64.Vec3{0, 0, 0}, 1)
	cube.Name = "seed"
	require.NoError(t, space.AddCube(cube))

	err := space.CreateByOffset([]float64{1, 0}, Selector{Name: "seed"}, nil)
	assert.ErrorIs(t, err, ErrMalformedCoordinate)

	timestep := 0
	err = space.CreateByOffset([]float64{1, 0, 0}, Selector{Name: "seed", Timestep: &timestep}, nil)
	assert.ErrorIs(t, err, ErrAmbiguousSelector)

	err = space.CreateByOffset([]float64{1, 0, 0}, Selector{}, nil)
	assert.ErrorIs(t, err, ErrAmbiguousSelector)

	err = space.CreateByOffset([]float64{1, 0, 0}, Selector{Name: "seed"}, map[string]any{"glow": 1})
	assert.ErrorIs(t, err, ErrUnknownProperty)

	assert.Equal(t, 1, space.PrimitiveCount())
	assert.Equal(t, 1, space.TimeStep())
}

func TestSpace_AddCompositeRejectsUnknownStyle(t *testing.T) {
	space := NewSpace()

	composite := NewCompositeCube(mgl64.Vec3{0, 0, 0}, 2, 1, 1)
	composite.StyleName = "classic"
	err := space.AddComposite(composite)
	require.ErrorIs(t, err, ErrUnsupportedStyle)

	assert.Equal(t, 0, space.NumObjects())
	assert.Equal(t, 0, space.PrimitiveCount())
}
