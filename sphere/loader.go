package sphere

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/algo-hrtf/core"
)

// magic is the HRIR sphere file signature.
var magic = [4]byte{'H', 'R', 'I', 'R'}

// header is the fixed part of the file following the signature.
type header struct {
	SampleRate    uint32
	ImpulseLength uint32
	VertexCount   uint32
	IndexCount    uint32
}

// Info describes an HRIR sphere file without loading its payload.
type Info struct {
	SampleRate    uint32
	ImpulseLength int
	VertexCount   int
	IndexCount    int
}

// TriangleCount returns the number of mesh triangles.
func (i Info) TriangleCount() int {
	return i.IndexCount / 3
}

// readHeader validates the signature and reads the fixed header fields.
func readHeader(r io.Reader) (header, error) {
	var sig [4]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return header{}, fmt.Errorf("sphere: read signature: %w", err)
	}

	if sig != magic {
		return header{}, ErrInvalidFileFormat
	}

	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return header{}, fmt.Errorf("sphere: read header: %w", err)
	}

	return hdr, nil
}

// ReadInfo parses the header of an HRIR sphere stream. Only the
// signature is validated; sample rate and impulse length checks are left
// to [Read] so that tooling can inspect mismatched files.
func ReadInfo(r io.Reader) (Info, error) {
	hdr, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return Info{}, err
	}

	return Info{
		SampleRate:    hdr.SampleRate,
		ImpulseLength: int(hdr.ImpulseLength),
		VertexCount:   int(hdr.VertexCount),
		IndexCount:    int(hdr.IndexCount),
	}, nil
}

// LoadInfo reads the header of an HRIR sphere file.
func LoadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("sphere: %w", err)
	}
	defer f.Close()

	return ReadInfo(f)
}

// Read parses an HRIR sphere from r and builds the frequency-domain
// store. The declared sample rate must match the configured device rate
// (default 44100 Hz, override with [core.WithSampleRate]); on mismatch a
// *SampleRateError carrying both rates is returned. Each impulse
// response is zero-padded to the overlap-save working length derived
// from [core.Config.BlockLen] and forward-transformed once, so the
// per-render cost is limited to the signal transform.
func Read(r io.Reader, opts ...core.Option) (*Sphere, error) {
	cfg := core.ApplyOptions(opts...)

	br := bufio.NewReader(r)

	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	if hdr.SampleRate != cfg.SampleRate {
		return nil, &SampleRateError{Got: hdr.SampleRate, Want: cfg.SampleRate}
	}

	if hdr.ImpulseLength == 0 {
		return nil, ErrInvalidImpulseLength
	}

	if hdr.VertexCount == 0 || hdr.IndexCount%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertices, %d indices", ErrInvalidFileFormat, hdr.VertexCount, hdr.IndexCount)
	}

	faces, err := readFaces(br, int(hdr.IndexCount), int(hdr.VertexCount))
	if err != nil {
		return nil, err
	}

	length := int(hdr.ImpulseLength)
	padLen := cfg.PadLength(length)

	plan, err := algofft.NewPlan64(padLen)
	if err != nil {
		return nil, fmt.Errorf("sphere: create FFT plan for pad length %d: %w", padLen, err)
	}

	points, err := readPoints(br, int(hdr.VertexCount), length, padLen, plan)
	if err != nil {
		return nil, err
	}

	return &Sphere{
		length:     length,
		padLen:     padLen,
		sampleRate: hdr.SampleRate,
		points:     points,
		faces:      faces,
	}, nil
}

// Load reads an HRIR sphere file from disk. See [Read].
func Load(path string, opts ...core.Option) (*Sphere, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

func readFaces(r io.Reader, indexCount, vertexCount int) ([]face, error) {
	indices := make([]uint32, indexCount)
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return nil, fmt.Errorf("sphere: read faces: %w", err)
	}

	faces := make([]face, 0, indexCount/3)

	for i := 0; i+2 < indexCount; i += 3 {
		f := face{a: int(indices[i]), b: int(indices[i+1]), c: int(indices[i+2])}

		if f.a >= vertexCount || f.b >= vertexCount || f.c >= vertexCount {
			return nil, fmt.Errorf("%w: face index out of range", ErrInvalidFileFormat)
		}

		faces = append(faces, f)
	}

	return faces, nil
}

func readPoints(r io.Reader, vertexCount, length, padLen int, plan *algofft.Plan[complex128]) ([]Point, error) {
	points := make([]Point, 0, vertexCount)

	hrir := make([]float32, length)
	scratch := make([]complex128, padLen)

	for v := 0; v < vertexCount; v++ {
		var pos [3]float32
		if err := binary.Read(r, binary.LittleEndian, &pos); err != nil {
			return nil, fmt.Errorf("sphere: read vertex %d position: %w", v, err)
		}

		left, err := readSpectrum(r, hrir, scratch, plan)
		if err != nil {
			return nil, fmt.Errorf("sphere: vertex %d left response: %w", v, err)
		}

		right, err := readSpectrum(r, hrir, scratch, plan)
		if err != nil {
			return nil, fmt.Errorf("sphere: vertex %d right response: %w", v, err)
		}

		points = append(points, Point{
			pos:   mgl64.Vec3{float64(pos[0]), float64(pos[1]), float64(pos[2])},
			left:  left,
			right: right,
		})
	}

	return points, nil
}

// readSpectrum reads one impulse response, zero-pads it to the working
// length and returns its forward transform.
func readSpectrum(r io.Reader, hrir []float32, scratch []complex128, plan *algofft.Plan[complex128]) ([]complex128, error) {
	if err := binary.Read(r, binary.LittleEndian, hrir); err != nil {
		return nil, err
	}

	for i := range scratch {
		scratch[i] = 0
	}

	for i, s := range hrir {
		scratch[i] = complex(float64(s), 0)
	}

	spectrum := make([]complex128, len(scratch))
	if err := plan.Forward(spectrum, scratch); err != nil {
		return nil, fmt.Errorf("forward FFT: %w", err)
	}

	return spectrum, nil
}
