package qoi

import "fmt"

// Color is one RGBA pixel with 8 bits per channel. It is a value type:
// two colors are equal iff all four channels match.
type Color struct {
	R, G, B, A uint8
}

// RGB returns a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Image owns a width*height grid of Color values in row-major order.
// Channels records what the source carried (3 or 4); the pixel grid is
// always full RGBA regardless.
type Image struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
	Pix        []Color
}

// NewImage allocates an image of the given dimensions. The width*height
// product is validated against MaxPixels before any allocation happens.
func NewImage(width, height uint32) (*Image, error) {
	n, err := pixelCount(width, height)
	if err != nil {
		return nil, err
	}
	return &Image{
		Width:      width,
		Height:     height,
		Channels:   ChannelsRGBA,
		Colorspace: ColorspaceSRGB,
		Pix:        make([]Color, n),
	}, nil
}

// At returns the pixel at (x, y). Bounds are the caller's responsibility.
func (m *Image) At(x, y int) Color {
	return m.Pix[y*int(m.Width)+x]
}

// Set writes the pixel at (x, y).
func (m *Image) Set(x, y int, c Color) {
	m.Pix[y*int(m.Width)+x] = c
}

// pixelCount validates dimensions and returns width*height. The product is
// computed in uint64 so it cannot silently wrap.
func pixelCount(width, height uint32) (uint64, error) {
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("%w: zero dimension %dx%d", ErrInvalidData, width, height)
	}
	n := uint64(width) * uint64(height)
	if n > MaxPixels {
		return 0, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, width, height, uint64(MaxPixels))
	}
	return n, nil
}
