package qoi

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed-size container metadata. It is built fresh for every
// encode from the image being encoded, and parsed once per decode from the
// first HeaderSize bytes of the stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8 // 3 or 4; informational, decode always yields RGBA
	Colorspace uint8
}

// EncodeHeader encodes h into its fixed 14-byte wire layout, multi-byte
// fields big-endian.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Width)
	binary.BigEndian.PutUint32(buf[8:12], h.Height)
	buf[12] = h.Channels
	buf[13] = h.Colorspace
	return buf
}

// DecodeHeader parses the leading fixed header block of a QOI stream.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrEndOfStream, HeaderSize, len(data))
	}
	if string(data[0:4]) != magic {
		return Header{}, ErrInvalidMagic
	}
	h := Header{
		Width:      binary.BigEndian.Uint32(data[4:8]),
		Height:     binary.BigEndian.Uint32(data[8:12]),
		Channels:   data[12],
		Colorspace: data[13],
	}
	if err := h.validateTags(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// validateTags checks the channel-format and colorspace bytes against the
// recognized values.
func (h Header) validateTags() error {
	if h.Channels != ChannelsRGB && h.Channels != ChannelsRGBA {
		return fmt.Errorf("%w: channels = %d", ErrInvalidChannels, h.Channels)
	}
	if h.Colorspace != ColorspaceSRGB && h.Colorspace != ColorspaceLinear {
		return fmt.Errorf("%w: colorspace = %d", ErrInvalidColorspace, h.Colorspace)
	}
	return nil
}

// IsValidContainer reports whether data plausibly holds a complete QOI
// stream: a well-formed header, acceptable dimensions, and at least enough
// bytes for the header plus the end marker. It does not decode pixels.
func IsValidContainer(data []byte) bool {
	h, err := DecodeHeader(data)
	if err != nil {
		return false
	}
	if _, err := pixelCount(h.Width, h.Height); err != nil {
		return false
	}
	return len(data) >= HeaderSize+len(endMarker)
}
