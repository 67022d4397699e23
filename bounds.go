package legoland

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box in the space's internal axis order.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Union returns the smallest box covering both a and b.
func (a AABB) Union(b AABB) AABB {
	var out AABB
	for axis := 0; axis < 3; axis++ {
		out.Min[axis] = math.Min(a.Min[axis], b.Min[axis])
		out.Max[axis] = math.Max(a.Max[axis], b.Max[axis])
	}
	return out
}

// BoundsTracker keeps the running centroid and axis-aligned extrema over
// every primitive ever inserted into a space, visible or not. Extrema only
// ever widen.
//
// A composite folds a single centroid into the running total, yet the mean
// denominator supplied by the caller tracks primitive rows, so the extrema
// widen over all of a composite's rows while its centroid carries the
// weight of one observation.
type BoundsTracker struct {
	total  mgl64.Vec3
	mean   mgl64.Vec3
	dims   AABB
	seeded bool
}

func NewBoundsTracker() *BoundsTracker {
	return &BoundsTracker{}
}

// Observe folds one object's centroid into the running total, recomputes
// the mean with the caller-supplied denominator, and widens the extrema
// over the object's bounding box.
func (b *BoundsTracker) Observe(centroid mgl64.Vec3, box AABB, denominator int) {
	b.total = b.total.Add(centroid)
	b.mean = b.total.Mul(1 / float64(denominator))
	b.Widen(box)
}

// Widen grows the extrema to cover box. The first observation seeds the
// extrema directly; there is no comparison against an uninitialized
// placeholder.
func (b *BoundsTracker) Widen(box AABB) {
	if !b.seeded {
		b.dims = box
		b.seeded = true
		return
	}
	b.dims = b.dims.Union(box)
}

// Total returns the running per-axis sum of observed centroids.
func (b *BoundsTracker) Total() mgl64.Vec3 { return b.total }

// Mean returns the centroid of the space as of the last observation.
func (b *BoundsTracker) Mean() mgl64.Vec3 { return b.mean }

// Dims returns the per-axis extrema over everything observed so far.
func (b *BoundsTracker) Dims() AABB { return b.dims }

// boxOfFaces computes the bounding box over one primitive's vertices.
func boxOfFaces(f Faces) AABB {
	box := AABB{Min: f[0][0], Max: f[0][0]}
	for _, face := range f {
		for _, v := range face {
			for axis := 0; axis < 3; axis++ {
				box.Min[axis] = math.Min(box.Min[axis], v[axis])
				box.Max[axis] = math.Max(box.Max[axis], v[axis])
			}
		}
	}
	return box
}

// boxOfRows computes the bounding box over a block of rows.
func boxOfRows(rows []Faces) AABB {
	box := boxOfFaces(rows[0])
	for _, row := range rows[1:] {
		box = box.Union(boxOfFaces(row))
	}
	return box
}

// centroidOfRows computes the mean of every face vertex in the block. For a
// box this equals the center of its bounding volume; each corner appears in
// the same number of faces.
func centroidOfRows(rows []Faces) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, row := range rows {
		for _, face := range row {
			for _, v := range face {
				sum = sum.Add(v)
			}
		}
	}
	return sum.Mul(1 / float64(len(rows)*6*4))
}
