// Package framecodec encodes rendered frames for transport and storage.
package framecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// Codec turns a frame into bytes and back. Raw codecs carry no dimensions, so
// Decode takes them from the caller.
type Codec interface {
	Name() string
	ContentType() string
	Encode(img *image.RGBA) ([]byte, error)
	Decode(data []byte, width, height int) (*image.RGBA, error)
}

// Codec names accepted by Lookup
const (
	PNG    = "png"
	Zstd   = "zstd"
	Snappy = "snappy"
)

var codecs = map[string]Codec{
	PNG:    pngCodec{},
	Zstd:   zstdCodec{},
	Snappy: snappyCodec{},
}

// Lookup returns the codec registered under name. An empty name selects PNG.
func Lookup(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = PNG
	}
	codec, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("unknown frame codec %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return codec, nil
}

// Names lists the registered codec names in sorted order
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type pngCodec struct{}

func (pngCodec) Name() string        { return PNG }
func (pngCodec) ContentType() string { return "image/png" }

func (pngCodec) Encode(img *image.RGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode ignores width and height; PNG carries its own.
func (pngCodec) Decode(data []byte, _, _ int) (*image.RGBA, error) {
	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return toRGBA(decoded), nil
}

type zstdCodec struct{}

func (zstdCodec) Name() string        { return Zstd }
func (zstdCodec) ContentType() string { return "application/zstd" }

func (zstdCodec) Encode(img *image.RGBA) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(packPixels(img), nil), nil
}

func (zstdCodec) Decode(data []byte, width, height int) (*image.RGBA, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()
	pixels, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decode zstd frame: %w", err)
	}
	return unpackPixels(pixels, width, height)
}

type snappyCodec struct{}

func (snappyCodec) Name() string        { return Snappy }
func (snappyCodec) ContentType() string { return "application/x-snappy" }

func (snappyCodec) Encode(img *image.RGBA) ([]byte, error) {
	return snappy.Encode(nil, packPixels(img)), nil
}

func (snappyCodec) Decode(data []byte, width, height int) (*image.RGBA, error) {
	pixels, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("decode snappy frame: %w", err)
	}
	return unpackPixels(pixels, width, height)
}

// packPixels returns the image's pixels as tightly packed rows, dropping any stride padding
func packPixels(img *image.RGBA) []byte {
	bounds := img.Bounds()
	rowLen := bounds.Dx() * 4
	if img.Stride == rowLen && bounds.Min == (image.Point{}) {
		return img.Pix[:rowLen*bounds.Dy()]
	}
	packed := make([]byte, 0, rowLen*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		start := img.PixOffset(bounds.Min.X, y)
		packed = append(packed, img.Pix[start:start+rowLen]...)
	}
	return packed
}

func unpackPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if expected := width * height * 4; len(pixels) != expected {
		return nil, fmt.Errorf("frame holds %d bytes, expected %d for %dx%d", len(pixels), expected, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return img, nil
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return rgba
}
