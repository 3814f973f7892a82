package qoi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decoder is an incremental QOI decoder. ReadRun fetches one opcode at a
// time, yielding a color and a repeat count. The decoder reads exactly the
// bytes each opcode requires and never looks ahead, so it is safe against
// slow or exactly-sized sources.
type Decoder struct {
	r       io.Reader
	header  Header
	cache   colorCache
	current Color

	remaining uint64
	scratch   [4]byte
}

// NewDecoder reads and validates the container header from r. The declared
// dimensions are checked against MaxPixels here, before any caller gets a
// chance to allocate for them.
func NewDecoder(r io.Reader) (*Decoder, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, eosError(err)
	}
	h, err := DecodeHeader(hdr[:])
	if err != nil {
		return nil, err
	}
	n, err := pixelCount(h.Width, h.Height)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		r:         r,
		header:    h,
		current:   Color{0, 0, 0, 255},
		remaining: n,
	}, nil
}

// Header returns the parsed container header.
func (d *Decoder) Header() Header {
	return d.header
}

// Remaining returns how many pixels have not been produced yet.
func (d *Decoder) Remaining() uint64 {
	return d.remaining
}

// ReadRun fetches the next opcode and returns the color it produces and the
// number of times it repeats. Once the declared pixel count is exhausted it
// returns io.EOF without touching the source again; the end marker and any
// trailing bytes are never read.
func (d *Decoder) ReadRun() (Color, int, error) {
	if d.remaining == 0 {
		return Color{}, 0, io.EOF
	}
	tag, err := d.readByte()
	if err != nil {
		return Color{}, 0, err
	}

	// Full-byte sentinels first, then the two-bit prefix classes. The
	// prefixes cover every remaining byte value, so there is no fallthrough.
	var c Color
	switch {
	case tag == opRGB:
		if err := d.readFull(d.scratch[:3]); err != nil {
			return Color{}, 0, err
		}
		c = Color{d.scratch[0], d.scratch[1], d.scratch[2], d.current.A}
	case tag == opRGBA:
		if err := d.readFull(d.scratch[:4]); err != nil {
			return Color{}, 0, err
		}
		c = Color{d.scratch[0], d.scratch[1], d.scratch[2], d.scratch[3]}
	default:
		switch tag & opMask2 {
		case opRun:
			n := uint64(tag&0x3f) + 1
			if n > d.remaining {
				return Color{}, 0, fmt.Errorf("%w: run of %d overruns remaining %d pixels", ErrInvalidData, n, d.remaining)
			}
			d.remaining -= n
			return d.current, int(n), nil
		case opIndex:
			c = d.cache[tag&0x3f]
		case opDiff:
			c = Color{
				R: d.current.R + (tag >> 4 & 0x3) - 2,
				G: d.current.G + (tag >> 2 & 0x3) - 2,
				B: d.current.B + (tag & 0x3) - 2,
				A: d.current.A,
			}
		case opLuma:
			rb, err := d.readByte()
			if err != nil {
				return Color{}, 0, err
			}
			dg := (tag & 0x3f) - 32
			c = Color{
				R: d.current.R + dg + (rb >> 4 & 0xf) - 8,
				G: d.current.G + dg,
				B: d.current.B + dg + (rb & 0xf) - 8,
				A: d.current.A,
			}
		}
	}

	// Non-run opcodes mutate the cache, mirroring the encoder exactly. For
	// index opcodes the store is idempotent.
	d.cache[hashIndex(c)] = c
	d.current = c
	d.remaining--
	return c, 1, nil
}

func (d *Decoder) readByte() (byte, error) {
	if err := d.readFull(d.scratch[:1]); err != nil {
		return 0, err
	}
	return d.scratch[0], nil
}

func (d *Decoder) readFull(p []byte) error {
	if _, err := io.ReadFull(d.r, p); err != nil {
		return eosError(err)
	}
	return nil
}

// eosError maps source exhaustion onto ErrEndOfStream; other I/O errors
// pass through untouched.
func eosError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrEndOfStream, err)
	}
	return err
}

// Decode reads one complete QOI stream from r. On success the returned
// image is exclusively the caller's; on any error no image is returned.
func Decode(r io.Reader) (*Image, error) {
	dec, err := NewDecoder(r)
	if err != nil {
		return nil, err
	}
	img, err := NewImage(dec.header.Width, dec.header.Height)
	if err != nil {
		return nil, err
	}
	img.Channels = dec.header.Channels
	img.Colorspace = dec.header.Colorspace

	pos := 0
	for dec.remaining > 0 {
		c, n, err := dec.ReadRun()
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			img.Pix[pos] = c
			pos++
		}
	}
	return img, nil
}

// DecodeBytes decodes a complete in-memory QOI stream. The buffer length is
// validated against the minimum the header implies before any pixel work.
func DecodeBytes(data []byte) (*Image, error) {
	if len(data) < HeaderSize+len(endMarker) {
		return nil, fmt.Errorf("%w: %d bytes is shorter than header plus end marker", ErrInvalidData, len(data))
	}
	return Decode(bytes.NewReader(data))
}
