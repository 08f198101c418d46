package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Quality bounds for lossy encoders.
const (
	MinQuality     = 1
	MaxQuality     = 100
	DefaultQuality = 92
)

// Decode decodes an image from the given reader, auto-detecting the format.
// The returned name is the format name registered with the decoder
// ("png", "jpeg", "bmp", ...).
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return ToNRGBA(img), name, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*image.NRGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// DecodeConfig reads the format and dimensions from the header of an
// image held in memory. No pixels are decoded.
func DecodeConfig(data []byte) (image.Config, string, error) {
	if len(data) == 0 {
		return image.Config{}, "", ErrEmptyData
	}
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("image: decode config: %w", err)
	}
	return cfg, name, nil
}

// Encode writes img to w in the given format. quality applies to JPEG and
// is clamped to [MinQuality, MaxQuality].
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		quality = min(max(quality, MinQuality), MaxQuality)
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", f, err)
	}
	return nil
}

// Save encodes img to the file at path. No file is created for a format
// that cannot be encoded.
func Save(path string, img image.Image, f Format, quality int) error {
	if !f.CanEncode() {
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(file, img, f, quality); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

// ToNRGBA returns img as a zero-origin *image.NRGBA. An image that already
// has that form is returned as is; anything else is converted.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	n, ok := img.(*image.NRGBA)
	if ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if ok {
		// Straight-alpha rows are copied as is; a draw would round-trip
		// them through premultiplied color.
		for y := range b.Dy() {
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return dst
	}
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}
