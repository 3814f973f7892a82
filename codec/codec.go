package codec

// Codec is the universal interface for all raster image codecs
type Codec interface {
	// Encode encodes pixel data
	Encode(params EncodeParams) ([]byte, error)

	// Decode decodes compressed data
	Decode(data []byte) (*DecodeResult, error)

	// MIME returns the media type of the encoded stream
	MIME() string

	// Name returns a human-readable name
	Name() string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw pixel data, interleaved
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (3=RGB, 4=RGBA)
	Options    Options // Codec-specific options
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data, interleaved
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
}
