// Package export renders a layer stack to an encoded raster image.
//
// Export flattens the visible layers, optionally enlarges the result by an
// integer factor with nearest-neighbor sampling, and encodes it as PNG,
// JPEG, BMP or TIFF.
//
//	settings := export.Settings{Format: export.PNG, Scale: 4}
//	err := export.Encode(w, stack, settings)
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lightplay/sprite"
	intImage "github.com/lightplay/sprite/internal/image"
)

// Format identifies an output file format.
type Format = intImage.Format

// Output formats.
const (
	// PNG is lossless with alpha.
	PNG = intImage.FormatPNG

	// JPEG is lossy; transparency is lost.
	JPEG = intImage.FormatJPEG

	// BMP is Windows bitmap.
	BMP = intImage.FormatBMP

	// TIFF is lossless with alpha.
	TIFF = intImage.FormatTIFF

	// WebP is accepted by ParseFormat but cannot be encoded.
	WebP = intImage.FormatWebP
)

// Quality bounds for JPEG output.
const (
	MinQuality     = intImage.MinQuality
	MaxQuality     = intImage.MaxQuality
	DefaultQuality = intImage.DefaultQuality
)

// Errors.
var (
	// ErrInvalidScale is returned when a scale factor is not one of Scales.
	ErrInvalidScale = errors.New("export: invalid scale")

	// ErrUnsupportedFormat is returned for formats that cannot be encoded.
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat
)

// Scales lists the accepted scale factors.
var Scales = []int{1, 2, 4, 8, 16}

// ValidScale reports whether n is one of Scales.
func ValidScale(n int) bool {
	return slices.Contains(Scales, n)
}

// ParseFormat maps a format name or extension ("png", ".jpg") to a Format.
func ParseFormat(s string) (Format, error) {
	return intImage.ParseFormat(s)
}

// FormatFromPath maps the extension of path to a Format.
func FormatFromPath(path string) (Format, error) {
	return intImage.FormatFromPath(path)
}

// Settings selects the output of an export.
type Settings struct {
	// Format is the file format.
	Format Format

	// Quality is the JPEG quality, clamped to [MinQuality, MaxQuality].
	// Other formats ignore it.
	Quality int

	// Scale is the integer enlargement factor, one of Scales.
	Scale int
}

// DefaultSettings returns PNG at 1× with quality 92.
func DefaultSettings() Settings {
	return Settings{Format: PNG, Quality: DefaultQuality, Scale: 1}
}

// Validate checks that the settings can be exported.
func (s Settings) Validate() error {
	if !ValidScale(s.Scale) {
		return fmt.Errorf("%w: %d", ErrInvalidScale, s.Scale)
	}
	if !s.Format.CanEncode() {
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, s.Format)
	}
	return nil
}

// Normalized returns s with Quality clamped and an unset Scale replaced
// by 1.
func (s Settings) Normalized() Settings {
	if s.Scale == 0 {
		s.Scale = 1
	}
	s.Quality = min(max(s.Quality, MinQuality), MaxQuality)
	return s
}

// Extension returns the file extension of the output, e.g. ".png".
func (s Settings) Extension() string {
	if ext := s.Format.Extension(); ext != "" {
		return ext
	}
	return PNG.Extension()
}

// FileName replaces the extension of name with the output extension.
// An empty name becomes "Untitled".
func (s Settings) FileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled"
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return name + s.Extension()
}

// Render flattens stack and enlarges the result by scale.
func Render(stack *sprite.LayerStack, scale int) (*image.NRGBA, error) {
	if !ValidScale(scale) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidScale, scale)
	}
	return renderFlat(stack.Flatten(nil), scale), nil
}

func renderFlat(flat *sprite.PixelBuffer, scale int) *image.NRGBA {
	img := flat.ToImage()
	if scale == 1 {
		return img
	}
	return intImage.ScaleNearest(img, scale)
}

// Encode renders stack with the given settings and writes the encoded image
// to w.
func Encode(w io.Writer, stack *sprite.LayerStack, s Settings) error {
	s = s.Normalized()
	if err := s.Validate(); err != nil {
		return err
	}
	img := renderFlat(stack.Flatten(nil), s.Scale)
	if err := intImage.Encode(w, img, s.Format, s.Quality); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	sprite.Logger().Info("export: encoded", "format", s.Format.String(), "scale", s.Scale,
		"width", img.Rect.Dx(), "height", img.Rect.Dy())
	return nil
}

// EncodeToBytes is like Encode but returns the encoded bytes.
func EncodeToBytes(stack *sprite.LayerStack, s Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, stack, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save renders stack with the given settings and writes it to the file at
// path. Invalid settings create no file.
func Save(path string, stack *sprite.LayerStack, s Settings) error {
	s = s.Normalized()
	if err := s.Validate(); err != nil {
		return err
	}
	img := renderFlat(stack.Flatten(nil), s.Scale)
	if err := intImage.Save(path, img, s.Format, s.Quality); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	sprite.Logger().Info("export: saved", "path", path, "format", s.Format.String(), "scale", s.Scale)
	return nil
}

// Result is one encoded image produced by Batch.
type Result struct {
	Scale int
	Data  []byte
}

// Batch flattens stack once and encodes it at every listed scale, in
// parallel. Results are returned in the order of scales. The first error,
// or cancellation of ctx, stops the batch.
func Batch(ctx context.Context, stack *sprite.LayerStack, s Settings, scales []int) ([]Result, error) {
	s = s.Normalized()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for _, n := range scales {
		if !ValidScale(n) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidScale, n)
		}
	}

	// The flattened snapshot is shared read-only by the workers.
	flat := stack.Flatten(nil)
	results := make([]Result, len(scales))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, n := range scales {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := intImage.Encode(&buf, renderFlat(flat, n), s.Format, s.Quality); err != nil {
				return fmt.Errorf("export: scale %d: %w", n, err)
			}
			results[i] = Result{Scale: n, Data: buf.Bytes()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sprite.Logger().Info("export: batch encoded", "format", s.Format.String(), "scales", scales)
	return results, nil
}
