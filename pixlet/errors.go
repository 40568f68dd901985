package pixlet

import "errors"

var (
	// ErrInvalidData is returned when the packet fails validation or the
	// entropy-coded payload is corrupt
	ErrInvalidData = errors.New("pixlet: invalid data")

	// ErrUnsupported is returned for well-formed packets the decoder does not
	// handle (unknown version, bit depth outside 8-15)
	ErrUnsupported = errors.New("pixlet: unsupported")

	// ErrImageTooLarge is returned before any allocation when the header
	// declares dimensions beyond the sanity cap
	ErrImageTooLarge = errors.New("pixlet: image too large")
)
