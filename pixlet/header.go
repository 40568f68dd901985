package pixlet

import "fmt"

// headerSize is the byte-aligned big-endian prefix of every packet
const headerSize = 44

// frameHeader holds the validated frame parameters
type frameHeader struct {
	width, height int // image dimensions
	alignedW      int
	alignedH      int
	depth         int
	pktSize       int
}

// parseHeader consumes and validates the 44-byte packet header. All fields
// are big-endian except the version word.
func parseHeader(r *byteReader) (frameHeader, error) {
	var hdr frameHeader

	pktSize := r.uint32BE()
	if pktSize <= headerSize || int64(pktSize)-4 > int64(r.bytesLeft()) {
		return hdr, fmt.Errorf("invalid packet size %d: %w", pktSize, ErrInvalidData)
	}
	hdr.pktSize = int(pktSize)

	version := r.uint32LE()
	if version != 1 {
		return hdr, fmt.Errorf("version %d: %w", version, ErrUnsupported)
	}

	r.skip(4)
	if sentinel := r.uint32BE(); sentinel != 1 {
		return hdr, fmt.Errorf("missing sentinel (got %d): %w", sentinel, ErrInvalidData)
	}
	r.skip(4)

	width := r.uint32BE()
	height := r.uint32BE()

	levels := r.uint32BE()
	if levels != numLevels {
		return hdr, fmt.Errorf("levels %d: %w", levels, ErrInvalidData)
	}
	depth := r.uint32BE()
	if depth < 8 || depth > 15 {
		return hdr, fmt.Errorf("depth %d: %w", depth, ErrUnsupported)
	}
	hdr.depth = int(depth)

	if width == 0 || height == 0 {
		return hdr, fmt.Errorf("invalid dimensions %dx%d: %w", width, height, ErrInvalidData)
	}
	if width > maxDimension || height > maxDimension {
		return hdr, fmt.Errorf("dimensions %dx%d exceed %d: %w", width, height, maxDimension, ErrImageTooLarge)
	}
	hdr.width = int(width)
	hdr.height = int(height)
	hdr.alignedW = alignDimension(hdr.width)
	hdr.alignedH = alignDimension(hdr.height)

	r.skip(8)

	return hdr, nil
}
