// Package qoi implements the QOI ("Quite OK Image") lossless raster image
// format: a 14-byte header followed by a byte-oriented opcode stream over
// 8-bit RGBA pixels, terminated by a fixed end-of-stream marker.
//
// Exactly one wire version is supported (the qoif layout below); encoder and
// decoder share the same opcode table and color-cache rules, so a stream
// produced here decodes bit-exactly in any conforming implementation.
package qoi

// HeaderSize is the fixed size of the container header in bytes.
const HeaderSize = 14

// MaxPixels bounds width*height; larger images are rejected before the
// pixel buffer is allocated.
const MaxPixels = 400_000_000

const magic = "qoif"

// Opcode tags. The two-bit prefixes classify single-byte opcodes; opRGB and
// opRGBA are full-byte sentinels carved out of the top of the opRun range,
// which is why runs cap at 62.
const (
	opIndex byte = 0b00000000 // 00xxxxxx cache index
	opDiff  byte = 0b01000000 // 01rrggbb small delta
	opLuma  byte = 0b10000000 // 10gggggg luma delta, one extra byte
	opRun   byte = 0b11000000 // 11xxxxxx run of length x+1
	opRGB   byte = 0b11111110 // literal RGB, three extra bytes
	opRGBA  byte = 0b11111111 // literal RGBA, four extra bytes

	opMask2 byte = 0b11000000
)

const maxRunLength = 62

// endMarker terminates every encoded stream. The decoder stops once the
// declared pixel count is produced and never interprets these bytes.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Channel-format tags. Informational only: decoding always produces RGBA.
const (
	ChannelsRGB  uint8 = 3
	ChannelsRGBA uint8 = 4
)

// Colorspace tags. Consumer metadata; they do not affect codec arithmetic.
const (
	ColorspaceSRGB   uint8 = 0 // sRGB with linear alpha
	ColorspaceLinear uint8 = 1 // all channels linear
)
