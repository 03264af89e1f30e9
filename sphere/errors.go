package sphere

import (
	"errors"
	"fmt"
)

// Errors returned by the HRIR sphere loader. All are fatal for the load;
// none are retriable without correcting the file or the configuration.
var (
	// ErrInvalidFileFormat indicates the file does not carry the HRIR
	// signature.
	ErrInvalidFileFormat = errors.New("sphere: invalid HRIR file signature")

	// ErrInvalidImpulseLength indicates the file declares a zero-length
	// impulse response.
	ErrInvalidImpulseLength = errors.New("sphere: impulse response length is zero")
)

// SampleRateError reports a mismatch between the sample rate declared by
// an HRIR sphere file and the configured device rate. The sphere must be
// resampled and rebuilt; resampling is never attempted here.
type SampleRateError struct {
	Got  uint32 // rate declared by the file
	Want uint32 // configured device rate
}

func (e *SampleRateError) Error() string {
	return fmt.Sprintf("sphere: HRIR sample rate %d Hz does not match device rate %d Hz", e.Got, e.Want)
}
