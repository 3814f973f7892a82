package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/cocosip/go-qoi-codec/qoi"
)

func TestStdImageRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 80), B: 30, A: 255})
		}
	}

	img, err := fromStdImage(src)
	if err != nil {
		t.Fatalf("fromStdImage failed: %v", err)
	}
	if img.Channels != qoi.ChannelsRGB {
		t.Errorf("Channels = %d, want %d for an opaque source", img.Channels, qoi.ChannelsRGB)
	}

	back := toStdImage(img)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if back.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, back.NRGBAAt(x, y), src.NRGBAAt(x, y))
			}
		}
	}
}

func TestFromStdImageAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img, err := fromStdImage(src)
	if err != nil {
		t.Fatalf("fromStdImage failed: %v", err)
	}
	if img.Channels != qoi.ChannelsRGBA {
		t.Errorf("Channels = %d, want %d for a translucent source", img.Channels, qoi.ChannelsRGBA)
	}
	if img.Pix[0] != (qoi.Color{R: 10, G: 20, B: 30, A: 128}) {
		t.Errorf("pixel 0 = %+v", img.Pix[0])
	}
}
