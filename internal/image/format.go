// Package image holds the raster file codecs used for import and export.
//
// Decoding accepts every registered format (PNG, JPEG, GIF, BMP, TIFF,
// WebP). Encoding covers PNG, JPEG, BMP and TIFF. All decoded images are
// normalized to *image.NRGBA, which matches the straight-alpha RGBA layout
// of sprite pixel buffers.
package image

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an image file format.
type Format uint8

const (
	// FormatPNG is lossless PNG with alpha.
	FormatPNG Format = iota

	// FormatJPEG is lossy JPEG; alpha is discarded on encode.
	FormatJPEG

	// FormatBMP is Windows bitmap.
	FormatBMP

	// FormatTIFF is TIFF with unassociated alpha.
	FormatTIFF

	// FormatWebP is WebP. It can be decoded but not encoded.
	FormatWebP

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a file format.
type FormatInfo struct {
	// Name is the short lowercase name, as reported by image.Decode.
	Name string

	// Extension is the preferred file extension, with the leading dot.
	Extension string

	// MIMEType is the media type of encoded data.
	MIMEType string

	// CanEncode indicates if images can be written in this format.
	CanEncode bool

	// Lossy indicates if encoding discards pixel information.
	Lossy bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatPNG: {
		Name:      "png",
		Extension: ".png",
		MIMEType:  "image/png",
		CanEncode: true,
	},
	FormatJPEG: {
		Name:      "jpeg",
		Extension: ".jpg",
		MIMEType:  "image/jpeg",
		CanEncode: true,
		Lossy:     true,
	},
	FormatBMP: {
		Name:      "bmp",
		Extension: ".bmp",
		MIMEType:  "image/bmp",
		CanEncode: true,
	},
	FormatTIFF: {
		Name:      "tiff",
		Extension: ".tiff",
		MIMEType:  "image/tiff",
		CanEncode: true,
	},
	FormatWebP: {
		Name:      "webp",
		Extension: ".webp",
		MIMEType:  "image/webp",
		Lossy:     true,
	},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Extension returns the preferred file extension, e.g. ".png".
func (f Format) Extension() string {
	return f.Info().Extension
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	return f.Info().MIMEType
}

// CanEncode returns true if images can be written in this format.
func (f Format) CanEncode() bool {
	return f.Info().CanEncode
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// String returns the short name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return formatInfoTable[f].Name
}

// ParseFormat maps a format name or extension ("png", ".JPG", "tif") to a
// Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "webp":
		return FormatWebP, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath returns the Format matching the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: no extension in %q", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}
