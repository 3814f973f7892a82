package qoi

import (
	"bytes"
	"fmt"
	"io"
)

// Encoder is an incremental QOI encoder. Pixels are pushed one at a time
// with WritePixel; Close flushes any open run and appends the end-of-stream
// marker. The whole-buffer entry points are built on the same path, so both
// modes produce byte-identical streams.
type Encoder struct {
	w     io.Writer
	cache colorCache
	prev  Color
	run   uint8

	pushed  uint64
	total   uint64
	scratch [5]byte
}

// NewEncoder validates h, writes the container header to w and returns an
// encoder expecting exactly width*height pixels.
func NewEncoder(w io.Writer, h Header) (*Encoder, error) {
	total, err := pixelCount(h.Width, h.Height)
	if err != nil {
		return nil, err
	}
	if err := h.validateTags(); err != nil {
		return nil, err
	}
	if _, err := w.Write(EncodeHeader(h)); err != nil {
		return nil, err
	}
	return &Encoder{
		w:     w,
		prev:  Color{0, 0, 0, 255},
		total: total,
	}, nil
}

// WritePixel pushes the next pixel in row-major order. Opcode selection is
// strictly ordered: run, cache hit, small delta, luma delta, then literal.
// The ordering is part of the wire contract.
func (e *Encoder) WritePixel(c Color) error {
	if e.pushed == e.total {
		return fmt.Errorf("%w: more than %d pixels pushed", ErrInvalidData, e.total)
	}
	e.pushed++

	if c == e.prev {
		e.run++
		if e.run == maxRunLength {
			return e.flushRun()
		}
		return nil
	}
	if e.run > 0 {
		if err := e.flushRun(); err != nil {
			return err
		}
	}

	var err error
	index := hashIndex(c)
	if e.cache[index] == c {
		err = e.writeIndex(index)
	} else {
		e.cache[index] = c
		switch {
		case c.A != e.prev.A:
			err = e.writeRGBA(c)
		default:
			// All deltas are wrapping 8-bit, compared through their bias:
			// a delta is in range iff the biased byte fits the field.
			dr := c.R - e.prev.R + 2
			dg := c.G - e.prev.G + 2
			db := c.B - e.prev.B + 2
			vg := c.G - e.prev.G + 32
			vgr := (c.R - e.prev.R) - (c.G - e.prev.G) + 8
			vgb := (c.B - e.prev.B) - (c.G - e.prev.G) + 8
			switch {
			case dr <= 3 && dg <= 3 && db <= 3:
				err = e.writeDiff(dr, dg, db)
			case vg <= 63 && vgr <= 15 && vgb <= 15:
				err = e.writeLuma(vg, vgr, vgb)
			default:
				err = e.writeRGB(c)
			}
		}
	}
	e.prev = c
	return err
}

// Flush emits any open run opcode. The stream stays valid: flushing early
// only changes where runs split, not the decoded pixels.
func (e *Encoder) Flush() error {
	if e.run > 0 {
		return e.flushRun()
	}
	return nil
}

// Close flushes the open run and writes the end-of-stream marker. It fails
// if fewer pixels were pushed than the header declared.
func (e *Encoder) Close() error {
	if err := e.Flush(); err != nil {
		return err
	}
	if e.pushed != e.total {
		return fmt.Errorf("%w: %d of %d pixels pushed", ErrInvalidData, e.pushed, e.total)
	}
	_, err := e.w.Write(endMarker[:])
	return err
}

func (e *Encoder) flushRun() error {
	e.scratch[0] = opRun | (e.run - 1)
	e.run = 0
	return e.emit(1)
}

func (e *Encoder) writeIndex(index int) error {
	e.scratch[0] = opIndex | byte(index)
	return e.emit(1)
}

func (e *Encoder) writeDiff(dr, dg, db uint8) error {
	e.scratch[0] = opDiff | dr<<4 | dg<<2 | db
	return e.emit(1)
}

func (e *Encoder) writeLuma(vg, vgr, vgb uint8) error {
	e.scratch[0] = opLuma | vg
	e.scratch[1] = vgr<<4 | vgb
	return e.emit(2)
}

func (e *Encoder) writeRGB(c Color) error {
	e.scratch[0] = opRGB
	e.scratch[1] = c.R
	e.scratch[2] = c.G
	e.scratch[3] = c.B
	return e.emit(4)
}

func (e *Encoder) writeRGBA(c Color) error {
	e.scratch[0] = opRGBA
	e.scratch[1] = c.R
	e.scratch[2] = c.G
	e.scratch[3] = c.B
	e.scratch[4] = c.A
	return e.emit(5)
}

func (e *Encoder) emit(n int) error {
	_, err := e.w.Write(e.scratch[:n])
	return err
}

// Encode writes img to w as a complete QOI stream.
func Encode(w io.Writer, img *Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidData)
	}
	h := Header{
		Width:      img.Width,
		Height:     img.Height,
		Channels:   img.Channels,
		Colorspace: img.Colorspace,
	}
	if h.Channels == 0 {
		h.Channels = ChannelsRGBA
	}
	total, err := pixelCount(h.Width, h.Height)
	if err != nil {
		return err
	}
	if uint64(len(img.Pix)) != total {
		return fmt.Errorf("%w: %d pixels for %dx%d image", ErrInvalidData, len(img.Pix), img.Width, img.Height)
	}
	enc, err := NewEncoder(w, h)
	if err != nil {
		return err
	}
	for _, c := range img.Pix {
		if err := enc.WritePixel(c); err != nil {
			return err
		}
	}
	return enc.Close()
}

// EncodeBytes encodes img into a freshly allocated byte slice.
func EncodeBytes(img *Image) ([]byte, error) {
	var buf bytes.Buffer
	if img != nil {
		buf.Grow(HeaderSize + len(img.Pix) + len(endMarker))
	}
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
