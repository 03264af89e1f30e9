// Package geom provides the small amount of computational geometry the
// sphere sampler needs: segment rays, ray-triangle intersection and
// barycentric coordinates.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// Ray is a bounded ray (segment) from Origin along Dir. Dir is not
// normalized; the segment ends at Origin + Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRayFromPoints builds a segment ray from a to b. Returns false when
// the two points coincide and no direction can be derived.
func NewRayFromPoints(a, b mgl64.Vec3) (Ray, bool) {
	dir := b.Sub(a)
	if dir.Dot(dir) < epsilon*epsilon {
		return Ray{}, false
	}

	return Ray{Origin: a, Dir: dir}, true
}

// IntersectTriangle returns the intersection point of the ray segment
// with triangle (a, b, c), using the Moller-Trumbore algorithm. The
// second return value is false when the segment misses the triangle.
func (r Ray) IntersectTriangle(a, b, c mgl64.Vec3) (mgl64.Vec3, bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	p := r.Dir.Cross(ac)

	det := ab.Dot(p)
	if math.Abs(det) < epsilon {
		// Ray is parallel to the triangle plane.
		return mgl64.Vec3{}, false
	}

	invDet := 1.0 / det

	s := r.Origin.Sub(a)

	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return mgl64.Vec3{}, false
	}

	q := s.Cross(ab)

	v := r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return mgl64.Vec3{}, false
	}

	t := ac.Dot(q) * invDet
	if t < 0 || t > 1 {
		// Hit lies outside the segment bounds.
		return mgl64.Vec3{}, false
	}

	return r.Origin.Add(r.Dir.Mul(t)), true
}

// Barycentric returns the barycentric coordinates (ka, kb, kc) of point
// p with respect to triangle (a, b, c). For points inside the triangle
// the three weights are each in [0, 1] and sum to 1.
func Barycentric(p, a, b, c mgl64.Vec3) (ka, kb, kc float64) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < epsilon {
		// Degenerate triangle; attribute everything to the first vertex.
		return 1, 0, 0
	}

	kb = (d11*d20 - d01*d21) / denom
	kc = (d00*d21 - d01*d20) / denom
	ka = 1 - kb - kc

	return ka, kb, kc
}

// LerpVec3 linearly interpolates between a and b with parameter t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
