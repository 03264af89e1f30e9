package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-hrtf/core"
)

// BenchmarkRenderSource measures one full frame render with IRCAM-style
// geometry: 512-tap impulses, 513-sample blocks, 8 interpolation steps.
func BenchmarkRenderSource(b *testing.B) {
	const (
		impulseLen = 512
		blockLen   = 513
		steps      = 8
	)

	irs := func(v int) (left, right []float32) {
		ir := make([]float32, impulseLen)
		for i := range ir {
			ir[i] = float32(math.Exp(-float64(i)/64) * math.Cos(float64(v+i)*0.1))
		}

		return ir, ir
	}

	sph := buildSphereWith(b, impulseLen, blockLen, irs)

	cfg := core.ApplyOptions(
		core.WithSampleRate(testRate),
		core.WithBlockLen(blockLen),
		core.WithInterpolationSteps(steps),
	)

	r, err := New(sph, cfg)
	if err != nil {
		b.Fatal(err)
	}

	signal := make([]float64, cfg.FrameLength())
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 440 * float64(i) / testRate)
	}

	src := newTestSource(sph, mgl64.Vec3{0.5, 0.2, 0.8}, 0.9, signal)
	out := make([]Frame, cfg.FrameLength())

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := r.RenderSource(src, out); err != nil {
			b.Fatal(err)
		}
	}
}
