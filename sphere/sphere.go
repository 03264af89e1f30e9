package sphere

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-hrtf/internal/geom"
)

// rayScale stretches the sampling direction far enough past the unit
// sphere to guarantee the segment crosses the mesh surface.
const rayScale = 10.0

// Point is a single vertex of an HRIR sphere: a position on the unit
// sphere plus the pre-transformed frequency-domain responses for both
// ears. Points are immutable after load except for whole-sphere
// geometric transforms.
type Point struct {
	pos   mgl64.Vec3
	left  []complex128
	right []complex128
}

// Pos returns the vertex position.
func (p *Point) Pos() mgl64.Vec3 {
	return p.pos
}

// LeftSpectrum returns the left-ear spectrum, padded to the working
// length. Callers must not modify it.
func (p *Point) LeftSpectrum() []complex128 {
	return p.left
}

// RightSpectrum returns the right-ear spectrum, padded to the working
// length. Callers must not modify it.
func (p *Point) RightSpectrum() []complex128 {
	return p.right
}

// face is one mesh triangle, indexing into the point list.
type face struct {
	a, b, c int
}

// Sphere is a loaded HRIR sphere: the impulse-response store the
// binaural renderer samples from. It is read-only after load apart from
// [Sphere.Transform].
type Sphere struct {
	length     int // impulse response length in samples
	padLen     int // length + blockLen - 1, the overlap-save working length
	sampleRate uint32
	points     []Point
	faces      []face
}

// Length returns the impulse response length in samples.
func (s *Sphere) Length() int {
	return s.length
}

// PadLength returns the padded working length all stored spectra share.
func (s *Sphere) PadLength() int {
	return s.padLen
}

// SampleRate returns the sample rate the sphere was measured at.
func (s *Sphere) SampleRate() uint32 {
	return s.sampleRate
}

// Points returns the sphere's vertices.
func (s *Sphere) Points() []Point {
	return s.points
}

// TriangleCount returns the number of mesh triangles.
func (s *Sphere) TriangleCount() int {
	return len(s.faces)
}

// Transform applies a rotation/scale matrix to every point position.
// Useful to align the sphere with a different chirality or orientation
// convention. The matrix must not carry a translation part; with one the
// result of bilinear sampling is undefined.
func (s *Sphere) Transform(m mgl64.Mat4) {
	for i := range s.points {
		p := &s.points[i]
		p.pos = m.Mul4x1(p.pos.Vec4(0)).Vec3()
	}
}

// SampleBilinear interpolates the sphere's response for the given
// direction and writes the blended spectra into left and right, which
// must both have length [Sphere.PadLength].
//
// The direction is intersected with the mesh; the first triangle hit in
// face order wins and its corner spectra are blended with barycentric
// weights. A degenerate (zero) direction falls back to the first stored
// point. If the ray misses every triangle, which can only happen at mesh
// seams or on malformed spheres, left and right are left untouched and
// keep the previously sampled spectra.
func (s *Sphere) SampleBilinear(dir mgl64.Vec3, left, right []complex128) {
	ray, ok := geom.NewRayFromPoints(mgl64.Vec3{}, dir.Mul(rayScale))
	if !ok {
		pt := &s.points[0]
		copy(left, pt.left)
		copy(right, pt.right)

		return
	}

	for _, f := range s.faces {
		a := &s.points[f.a]
		b := &s.points[f.b]
		c := &s.points[f.c]

		p, hit := ray.IntersectTriangle(a.pos, b.pos, c.pos)
		if !hit {
			continue
		}

		ka, kb, kc := geom.Barycentric(p, a.pos, b.pos, c.pos)

		for i := 0; i < s.padLen; i++ {
			left[i] = a.left[i]*complex(ka, 0) + b.left[i]*complex(kb, 0) + c.left[i]*complex(kc, 0)
		}

		for i := 0; i < s.padLen; i++ {
			right[i] = a.right[i]*complex(ka, 0) + b.right[i]*complex(kb, 0) + c.right[i]*complex(kc, 0)
		}

		return
	}
}
