package qoi

import (
	"fmt"

	"github.com/cocosip/go-qoi-codec/codec"
)

// QOICodec implements the codec.Codec interface for the QOI format
type QOICodec struct{}

// NewCodec creates a new QOI codec
func NewCodec() *QOICodec {
	return &QOICodec{}
}

// Options contains QOI-specific encoding options
type Options struct {
	// Colorspace tag written into the header (ColorspaceSRGB or
	// ColorspaceLinear). Metadata only; does not change the encoding.
	Colorspace uint8
}

// Validate checks if the options are valid
func (o *Options) Validate() error {
	if o.Colorspace != ColorspaceSRGB && o.Colorspace != ColorspaceLinear {
		return fmt.Errorf("%w: colorspace = %d", ErrInvalidColorspace, o.Colorspace)
	}
	return nil
}

// Encode encodes interleaved pixel data as a QOI stream
func (c *QOICodec) Encode(params codec.EncodeParams) ([]byte, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", params.Width, params.Height)
	}
	if params.Components != 3 && params.Components != 4 {
		return nil, fmt.Errorf("invalid components: %d (must be 3 or 4)", params.Components)
	}
	expected := params.Width * params.Height * params.Components
	if len(params.PixelData) != expected {
		return nil, fmt.Errorf("pixel data length %d, want %d", len(params.PixelData), expected)
	}

	colorspace := ColorspaceSRGB
	if opts, ok := params.Options.(*Options); ok {
		if err := opts.Validate(); err != nil {
			return nil, err
		}
		colorspace = opts.Colorspace
	}

	img, err := NewImage(uint32(params.Width), uint32(params.Height))
	if err != nil {
		return nil, err
	}
	img.Channels = uint8(params.Components)
	img.Colorspace = colorspace

	src := params.PixelData
	if params.Components == 4 {
		for i := range img.Pix {
			img.Pix[i] = Color{src[i*4], src[i*4+1], src[i*4+2], src[i*4+3]}
		}
	} else {
		for i := range img.Pix {
			img.Pix[i] = Color{src[i*3], src[i*3+1], src[i*3+2], 255}
		}
	}

	return EncodeBytes(img)
}

// Decode decodes a QOI stream into interleaved RGBA pixel data
func (c *QOICodec) Decode(data []byte) (*codec.DecodeResult, error) {
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(img.Pix)*4)
	for i, px := range img.Pix {
		out[i*4+0] = px.R
		out[i*4+1] = px.G
		out[i*4+2] = px.B
		out[i*4+3] = px.A
	}

	return &codec.DecodeResult{
		PixelData:  out,
		Width:      int(img.Width),
		Height:     int(img.Height),
		Components: 4,
	}, nil
}

// MIME returns the media type for QOI streams
func (c *QOICodec) MIME() string {
	return "image/qoi"
}

// Name returns a human-readable name for this codec
func (c *QOICodec) Name() string {
	return "qoi"
}

// RegisterCodec registers the QOI codec in the global registry
func RegisterCodec() {
	codec.Register(NewCodec())
}

// init automatically registers the codec
func init() {
	RegisterCodec()
}
