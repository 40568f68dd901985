package pixlet

import (
	"github.com/cocosip/go-pixlet-codec/codec"
)

var _ codec.Codec = (*Codec)(nil)

// FourCC is the QuickTime four-character code for Pixlet streams
const FourCC = "pxlt"

const codecName = "pixlet"

// Codec adapts the Pixlet decoder to the codec registry. Pixlet is
// decode-only; Encode always fails.
type Codec struct{}

// NewCodec creates a new Pixlet codec
func NewCodec() *Codec {
	return &Codec{}
}

// Name returns the codec name
func (c *Codec) Name() string {
	return codecName
}

// FourCC returns the QuickTime four-character code
func (c *Codec) FourCC() string {
	return FourCC
}

// Decode decodes one Pixlet packet
func (c *Codec) Decode(data []byte) (*codec.DecodeResult, error) {
	dec := NewDecoder()
	defer dec.Close()

	frame, err := dec.Decode(data)
	if err != nil {
		return nil, err
	}

	return &codec.DecodeResult{
		Planes:    frame.Planes[:],
		Strides:   frame.Strides[:],
		Width:     frame.Width,
		Height:    frame.Height,
		BitDepth:  16,
		Keyframe:  frame.Keyframe,
		FullRange: frame.FullRange,
	}, nil
}

// Encode is not supported; the codec is decode-only
func (c *Codec) Encode(codec.EncodeParams) ([]byte, error) {
	return nil, codec.ErrEncodingUnsupported
}

// init automatically registers the codec
func init() {
	codec.Register(NewCodec())
}
