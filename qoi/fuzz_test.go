package qoi

import (
	"bytes"
	"testing"
)

// fuzzInputLimit bounds decoder fuzz inputs.
const fuzzInputLimit = 1 << 20

// addDecodeSeeds adds valid, truncated and corrupted streams to the corpus.
func addDecodeSeeds(f *testing.F) {
	f.Helper()

	img, err := NewImage(8, 8)
	if err != nil {
		f.Fatal(err)
	}
	for i := range img.Pix {
		img.Pix[i] = Color{uint8(i * 3), uint8(i * 5), uint8(i * 7), 255}
	}
	valid, err := EncodeBytes(img)
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add(valid[:len(valid)/2])
	f.Add(valid[:HeaderSize])

	overrun := EncodeHeader(Header{Width: 2, Height: 2, Channels: 4, Colorspace: 0})
	overrun = append(overrun, opRun|61) // run of 62 into a 4-pixel image
	overrun = append(overrun, endMarker[:]...)
	f.Add(overrun)

	f.Add([]byte("qoif"))
	f.Add([]byte{})
}

// FuzzDecodeBytes tests that arbitrary input always terminates in either a
// valid image or a defined error, with no panic or out-of-bounds access
func FuzzDecodeBytes(f *testing.F) {
	addDecodeSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > fuzzInputLimit {
			t.Skip()
		}
		img, err := DecodeBytes(data)
		if err != nil {
			return
		}
		if uint64(len(img.Pix)) != uint64(img.Width)*uint64(img.Height) {
			t.Fatalf("decoded %d pixels for %dx%d image", len(img.Pix), img.Width, img.Height)
		}
	})
}

// FuzzDecodeOpcodeStream tests adversarial opcode bytes behind a plausible
// header
func FuzzDecodeOpcodeStream(f *testing.F) {
	f.Add([]byte{opRGBA, 1, 2, 3, 4})
	f.Add([]byte{opRun | 61})
	f.Add(bytes.Repeat([]byte{opLuma | 1, 0x88}, 9))
	f.Add([]byte{})

	header := EncodeHeader(Header{Width: 16, Height: 16, Channels: 4, Colorspace: 0})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > fuzzInputLimit {
			t.Skip()
		}
		stream := append(append([]byte(nil), header...), data...)
		img, err := DecodeBytes(stream)
		if err != nil {
			return
		}
		if len(img.Pix) != 16*16 {
			t.Fatalf("decoded %d pixels, want %d", len(img.Pix), 16*16)
		}
	})
}

// FuzzRoundTrip tests decode(encode(img)) == img for fuzz-derived images
func FuzzRoundTrip(f *testing.F) {
	f.Add(uint16(1), uint16(1), []byte{0, 0, 0, 255})
	f.Add(uint16(3), uint16(2), bytes.Repeat([]byte{10, 20, 30, 40}, 6))

	f.Fuzz(func(t *testing.T, w, h uint16, pix []byte) {
		if w == 0 || h == 0 {
			t.Skip()
		}
		n := int(w) * int(h)
		if n > 1<<16 {
			t.Skip()
		}

		img, err := NewImage(uint32(w), uint32(h))
		if err != nil {
			t.Fatal(err)
		}
		for i := range img.Pix {
			base := i * 4
			c := Color{A: 255}
			if base+3 < len(pix) {
				c = Color{pix[base], pix[base+1], pix[base+2], pix[base+3]}
			}
			img.Pix[i] = c
		}

		encoded, err := EncodeBytes(img)
		if err != nil {
			t.Fatalf("EncodeBytes failed: %v", err)
		}
		decoded, err := DecodeBytes(encoded)
		if err != nil {
			t.Fatalf("DecodeBytes failed: %v", err)
		}
		for i := range img.Pix {
			if decoded.Pix[i] != img.Pix[i] {
				t.Fatalf("pixel %d = %+v, want %+v", i, decoded.Pix[i], img.Pix[i])
			}
		}
	})
}
