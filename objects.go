package legoland

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Faces is the fixed-shape geometry of one box primitive: 6 quadrilateral
// faces of 4 vertices each. Vertices are stored in the space's internal axis
// order (width, depth, height), and the first vertex of the first face is the
// primitive's base vector.
type Faces [6][4]mgl64.Vec3

// BaseVector returns the identity point of the primitive, the
// bottom-left-front-most vertex.
func (f Faces) BaseVector() mgl64.Vec3 {
	return f[0][0]
}

// Primitive is the contract an object must satisfy to be inserted into a
// Space as a single primitive.
type Primitive interface {
	PrimitiveFaces() Faces
	BoundingBox() AABB
	VisualMetadata() map[string]any
	ObjectName() string
}

// Composite is the contract a grouped object must satisfy to be inserted as
// one contiguous block of primitives. BoundingBox and VisualMetadata apply
// to the whole group.
type Composite interface {
	CompositeFaces() []Faces
	Style() string
	BoundingBox() AABB
	VisualMetadata() map[string]any
	ObjectName() string
}

// Default visual properties, shared by every box object.
const (
	defaultFaceColor = ""
	defaultEdgeColor = "black"
	defaultLineWidth = 0.1
	defaultAlpha     = 0.0

	// StyleDefault is the only composite style currently supported.
	StyleDefault = "default"
)

// Cube is a unit (or uniformly scaled) box primitive.
//
// Base is given in the caller's width/height/depth axis order; geometry is
// stored in the space's width/depth/height order.
type Cube struct {
	Base  mgl64.Vec3
	Scale float64

	Name      string
	FaceColor string
	EdgeColor string
	LineWidth float64
	Alpha     float64

	faces Faces
}

// NewCube returns a cube of side length scale whose base vector sits at base.
func NewCube(base mgl64.Vec3, scale float64) *Cube {
	c := &Cube{
		Base:      base,
		Scale:     scale,
		FaceColor: defaultFaceColor,
		EdgeColor: defaultEdgeColor,
		LineWidth: defaultLineWidth,
		Alpha:     defaultAlpha,
	}
	c.faces = cuboidFaces(permuteToStorage(base), scale, scale, scale)
	return c
}

func (c *Cube) PrimitiveFaces() Faces { return c.faces }

func (c *Cube) BoundingBox() AABB { return boxOfFaces(c.faces) }

func (c *Cube) VisualMetadata() map[string]any {
	return visualProps(c.FaceColor, c.EdgeColor, c.LineWidth, c.Alpha)
}

func (c *Cube) ObjectName() string { return c.Name }

// Cuboid is a box primitive with independent per-axis dimensions.
type Cuboid struct {
	Base   mgl64.Vec3
	Width  float64
	Height float64
	Depth  float64

	Name      string
	FaceColor string
	EdgeColor string
	LineWidth float64
	Alpha     float64

	faces Faces
}

// NewCuboid returns a box of the given width/height/depth whose base vector
// sits at base.
func NewCuboid(base mgl64.Vec3, width, height, depth float64) *Cuboid {
	c := &Cuboid{
		Base:      base,
		Width:     width,
		Height:    height,
		Depth:     depth,
		FaceColor: defaultFaceColor,
		EdgeColor: defaultEdgeColor,
		LineWidth: defaultLineWidth,
		Alpha:     defaultAlpha,
	}
	c.faces = cuboidFaces(permuteToStorage(base), width, depth, height)
	return c
}

func (c *Cuboid) PrimitiveFaces() Faces { return c.faces }

func (c *Cuboid) BoundingBox() AABB { return boxOfFaces(c.faces) }

func (c *Cuboid) VisualMetadata() map[string]any {
	return visualProps(c.FaceColor, c.EdgeColor, c.LineWidth, c.Alpha)
}

func (c *Cuboid) ObjectName() string { return c.Name }

// CompositeCube is a WxHxD grid of unit cubes treated as one object. Its
// rows are contiguous in the primitive store; the first row's base vector is
// the composite's base vector.
type CompositeCube struct {
	Base   mgl64.Vec3
	Width  int
	Height int
	Depth  int

	Name      string
	StyleName string
	FaceColor string
	EdgeColor string
	LineWidth float64
	Alpha     float64

	faces []Faces
}

// NewCompositeCube returns a composite of width*height*depth unit cubes with
// its base vector at base.
func NewCompositeCube(base mgl64.Vec3, width, height, depth int) *CompositeCube {
	c := &CompositeCube{
		Base:      base,
		Width:     width,
		Height:    height,
		Depth:     depth,
		StyleName: StyleDefault,
		FaceColor: defaultFaceColor,
		EdgeColor: defaultEdgeColor,
		LineWidth: defaultLineWidth,
		Alpha:     defaultAlpha,
	}

	origin := permuteToStorage(base)
	c.faces = make([]Faces, 0, width*height*depth)
	for w := 0; w < width; w++ {
		for h := 0; h < height; h++ {
			for d := 0; d < depth; d++ {
				cubeBase := origin.Add(mgl64.Vec3{float64(w), float64(d), float64(h)})
				c.faces = append(c.faces, cuboidFaces(cubeBase, 1, 1, 1))
			}
		}
	}
	return c
}

func (c *CompositeCube) CompositeFaces() []Faces { return c.faces }

func (c *CompositeCube) Style() string { return c.StyleName }

func (c *CompositeCube) BoundingBox() AABB {
	origin := permuteToStorage(c.Base)
	return AABB{
		Min: origin,
		Max: origin.Add(mgl64.Vec3{float64(c.Width), float64(c.Depth), float64(c.Height)}),
	}
}

func (c *CompositeCube) VisualMetadata() map[string]any {
	return visualProps(c.FaceColor, c.EdgeColor, c.LineWidth, c.Alpha)
}

func (c *CompositeCube) ObjectName() string { return c.Name }

// permuteToStorage maps a caller-facing width/height/depth vector onto the
// internal width/depth/height axis order. Callers must not assume the
// storage order matches the input order.
func permuteToStorage(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), v.Z(), v.Y()}
}

// cuboidFaces builds the six quads of a box in internal axis order, with
// base as the first vertex of the first face.
func cuboidFaces(base mgl64.Vec3, w, d, h float64) Faces {
	p := [8]mgl64.Vec3{
		base,
		base.Add(mgl64.Vec3{w, 0, 0}),
		base.Add(mgl64.Vec3{w, d, 0}),
		base.Add(mgl64.Vec3{0, d, 0}),
		base.Add(mgl64.Vec3{0, 0, h}),
		base.Add(mgl64.Vec3{w, 0, h}),
		base.Add(mgl64.Vec3{w, d, h}),
		base.Add(mgl64.Vec3{0, d, h}),
	}
	return Faces{
		{p[0], p[1], p[2], p[3]}, // bottom
		{p[4], p[5], p[6], p[7]}, // top
		{p[0], p[1], p[5], p[4]},
		{p[3], p[2], p[6], p[7]},
		{p[0], p[3], p[7], p[4]},
		{p[1], p[2], p[6], p[5]},
	}
}

func visualProps(faceColor, edgeColor string, lineWidth, alpha float64) map[string]any {
	return map[string]any{
		PropFaceColor: faceColor,
		PropEdgeColor: edgeColor,
		PropLineWidth: lineWidth,
		PropAlpha:     alpha,
	}
}
