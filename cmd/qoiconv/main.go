// Command qoiconv converts between QOI and common raster formats.
//
// Usage:
//
//	qoiconv [options] <input> <output>
//
// The direction is picked from the file extensions: .qoi (optionally
// .qoi.zst) on either side, .png or .bmp on the other. JPEG and GIF are
// accepted as input.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"

	"github.com/cocosip/go-qoi-codec/qoi"
)

var (
	flagZstd   = flag.Bool("z", false, "zstd-compress QOI output (implied by a .zst extension)")
	flagLinear = flag.Bool("linear", false, "tag QOI output as linear colorspace")
)

// zstdMagic is the zstandard frame magic, used to sniff compressed input.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qoiconv [options] <input> <output>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := convert(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, "qoiconv:", err)
		os.Exit(1)
	}
}

func convert(inPath, outPath string) error {
	img, err := readInput(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}
	if err := writeOutput(outPath, img); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("%s (%dx%d) -> %s\n", inPath, img.Width, img.Height, outPath)
	return nil
}

// readInput loads any supported input into the codec's pixel grid.
func readInput(path string) (*qoi.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, err
		}
	}

	if qoi.IsValidContainer(data) {
		return qoi.DecodeBytes(data)
	}

	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return fromStdImage(m)
}

func writeOutput(path string, img *qoi.Image) error {
	switch {
	case strings.HasSuffix(path, ".qoi"), strings.HasSuffix(path, ".qoi.zst"):
		if *flagLinear {
			img.Colorspace = qoi.ColorspaceLinear
		}
		data, err := qoi.EncodeBytes(img)
		if err != nil {
			return err
		}
		if *flagZstd || strings.HasSuffix(path, ".zst") {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				return err
			}
			data = enc.EncodeAll(data, nil)
			if err := enc.Close(); err != nil {
				return err
			}
		}
		return os.WriteFile(path, data, 0o644)

	case strings.HasSuffix(path, ".png"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return png.Encode(f, toStdImage(img))

	case strings.HasSuffix(path, ".bmp"):
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return bmp.Encode(f, toStdImage(img))
	}
	return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}

// fromStdImage converts a standard library image into the codec's pixel
// grid, recording whether the source carried alpha.
func fromStdImage(m image.Image) (*qoi.Image, error) {
	b := m.Bounds()
	img, err := qoi.NewImage(uint32(b.Dx()), uint32(b.Dy()))
	if err != nil {
		return nil, err
	}

	opaque := true
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if px.A != 255 {
				opaque = false
			}
			img.Set(x, y, qoi.RGBA(px.R, px.G, px.B, px.A))
		}
	}
	if opaque {
		img.Channels = qoi.ChannelsRGB
	}
	return img, nil
}

func toStdImage(img *qoi.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, int(img.Width), int(img.Height)))
	for i, px := range img.Pix {
		out.Pix[i*4+0] = px.R
		out.Pix[i*4+1] = px.G
		out.Pix[i*4+2] = px.B
		out.Pix[i*4+3] = px.A
	}
	return out
}
