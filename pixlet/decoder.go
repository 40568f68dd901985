// Package pixlet implements a decoder for the Apple Pixlet intra-frame
// video codec. Every packet is a self-contained keyframe: per plane, a
// lowpass subband seeded by a DC value plus 12 entropy-coded detail
// subbands, reassembled by a four-level inverse wavelet synthesis and mapped
// to full-range 16-bit YUV 4:2:0 output.
package pixlet

import (
	"fmt"

	"github.com/cocosip/go-pixlet-codec/pixlet/wavelet"
)

// Decoder decodes Pixlet packets. A Decoder is not safe for concurrent use;
// decode independent frames on separate instances (see Clone).
type Decoder struct {
	w, h int // aligned dimensions the scratch is sized for; 0 until first use

	filter     [2][]int16 // column scratch, padded filter scratch
	prediction []int16
	planes     [3][]int16 // signed working planes, packed strides

	scaling [3][2][numLevels]float32
	band    [3][numBands]subBand

	grayscale bool
}

// NewDecoder creates a new Pixlet decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Clone returns a fresh decoder with the same configuration and no shared
// scratch, for decoding independent frames concurrently.
func (d *Decoder) Clone() *Decoder {
	return &Decoder{grayscale: d.grayscale}
}

// SetGrayscale restricts decoding to the luma plane; chroma output is filled
// with the neutral midpoint.
func (d *Decoder) SetGrayscale(gray bool) {
	d.grayscale = gray
}

// Close releases the decoder's scratch buffers. Closing an unused or
// already-closed decoder is a no-op; the decoder may be reused afterwards.
func (d *Decoder) Close() {
	d.filter[0] = nil
	d.filter[1] = nil
	d.prediction = nil
	for p := range d.planes {
		d.planes[p] = nil
	}
	d.w = 0
	d.h = 0
}

// Decode decodes one packet into a newly allocated frame.
func (d *Decoder) Decode(data []byte) (*Frame, error) {
	r := newByteReader(data)
	hdr, err := parseHeader(r)
	if err != nil {
		return nil, err
	}
	frame := NewFrame(hdr.width, hdr.height)
	if err := d.decodeFrame(r, hdr, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// DecodeInto decodes one packet into a caller-allocated frame, honoring the
// frame's strides. Returns the number of packet bytes consumed.
func (d *Decoder) DecodeInto(data []byte, frame *Frame) (int, error) {
	r := newByteReader(data)
	hdr, err := parseHeader(r)
	if err != nil {
		return 0, err
	}
	if err := frame.validateFor(hdr); err != nil {
		return 0, err
	}
	frame.Width = hdr.width
	frame.Height = hdr.height
	if err := d.decodeFrame(r, hdr, frame); err != nil {
		return 0, err
	}
	return hdr.pktSize, nil
}

func (d *Decoder) decodeFrame(r *byteReader, hdr frameHeader, frame *Frame) error {
	if d.w != hdr.alignedW || d.h != hdr.alignedH {
		d.Close()
		d.w = hdr.alignedW
		d.h = hdr.alignedH
		d.allocScratch()
	}

	frame.Depth = hdr.depth
	frame.PictureType = PictureTypeIntra
	frame.Keyframe = true
	frame.FullRange = true

	nplanes := 3
	if d.grayscale {
		nplanes = 1
	}
	for p := 0; p < nplanes; p++ {
		if err := d.decodePlane(r, p); err != nil {
			return err
		}
	}

	postprocessLuma(frame.Planes[0], frame.Strides[0], d.planes[0], d.w, d.w, d.h, hdr.depth)
	if d.grayscale {
		fillNeutralChroma(frame)
	} else {
		for p := 1; p < 3; p++ {
			postprocessChroma(frame.Planes[p], frame.Strides[p], d.planes[p], d.w>>1, d.w>>1, d.h>>1, hdr.depth)
		}
	}

	return nil
}

func (d *Decoder) allocScratch() {
	w, h := d.w, d.h

	d.filter[0] = make([]int16, h)
	d.filter[1] = make([]int16, max(w, h)+16)
	d.prediction = make([]int16, w>>numLevels)

	for p := 0; p < 3; p++ {
		shift := 0
		if p > 0 {
			shift = 1
		}
		pw := w >> uint(shift)
		ph := h >> uint(shift)
		d.planes[p] = make([]int16, pw*ph)
		d.band[p] = initBands(pw, ph)
	}
}

// decodePlane runs the full per-plane pipeline: scaling prefix, DC seed,
// lowpass entropy streams, detail bands, prediction, synthesis.
func (d *Decoder) decodePlane(r *byteReader, plane int) error {
	shift := 0
	if plane > 0 {
		shift = 1
	}
	w := d.w >> uint(shift)
	h := d.h >> uint(shift)
	stride := w
	dst := d.planes[plane]

	// Scales arrive coarsest level first.
	for i := numLevels - 1; i >= 0; i-- {
		sh := r.int32BE()
		sv := r.int32BE()
		if sh == 0 || sv == 0 {
			return fmt.Errorf("zero scaling factor for plane %d, level %d: %w", plane, i, ErrInvalidData)
		}
		d.scaling[plane][dirH][i] = float32(1000000 / float64(sh))
		d.scaling[plane][dirV][i] = float32(1000000 / float64(sv))
	}

	r.skip(4)

	dst[0] = r.int16BE()

	bw := d.band[plane][0].width
	bh := d.band[plane][0].height

	// The three lowpass regions share one bit reader; each region ends
	// byte-aligned and the cumulative count from the last call is what
	// gets skipped.
	br := newBitReader(r.remaining())

	if _, err := readLowCoeffs(&br, dst[1:], bw-1, bw-1, 0); err != nil {
		return fmt.Errorf("lowpass coefficients for plane %d, top row: %w", plane, err)
	}
	if _, err := readLowCoeffs(&br, dst[stride:], bh-1, 1, stride); err != nil {
		return fmt.Errorf("lowpass coefficients for plane %d, left column: %w", plane, err)
	}
	n, err := readLowCoeffs(&br, dst[stride+1:], (bw-1)*(bh-1), bw-1, stride)
	if err != nil {
		return fmt.Errorf("lowpass coefficients for plane %d, rest: %w", plane, err)
	}
	r.skip(n)

	if r.bytesLeft() <= 0 {
		return fmt.Errorf("no bytes left for plane %d highpass: %w", plane, ErrInvalidData)
	}

	if err := d.readHighpass(r, plane, dst, stride); err != nil {
		return err
	}

	lowpassPrediction(dst, d.prediction, bw, bh, stride)

	wavelet.Reconstruct(dst, w, h, stride, numLevels,
		d.scaling[plane][dirH][:], d.scaling[plane][dirV][:],
		d.filter[0], d.filter[1])

	return nil
}

func fillNeutralChroma(frame *Frame) {
	for p := 1; p < 3; p++ {
		plane := frame.Planes[p]
		for i := range plane {
			plane[i] = 1 << 15
		}
	}
}
