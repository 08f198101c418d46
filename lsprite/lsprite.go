// Package lsprite reads and writes .lsprite documents, the JSON file format
// that stores a layered sprite.
//
// A document looks like:
//
//	{
//	  "version": 1,
//	  "width": 32, "height": 32, "colorDepth": 32,
//	  "activeLayerIndex": 0,
//	  "layers": [
//	    {"name": "Background", "visible": true, "opacity": 1, "locked": false,
//	     "pixels": "<base64 of width*height*4 RGBA bytes>"}
//	  ]
//	}
//
// Pixels are the raw straight-alpha RGBA bytes of each layer, base64 encoded
// without compression.
package lsprite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lightplay/sprite"
)

// Document format constants.
const (
	// Version is the document version written by Marshal.
	Version = 1

	// Extension is the file extension of sprite documents.
	Extension = ".lsprite"

	// MIMEType is the media type of encoded documents.
	MIMEType = "application/json"

	// DefaultColorDepth is assumed when a document omits colorDepth.
	DefaultColorDepth = sprite.DefaultColorDepth

	// MaxDimension bounds the width and height accepted by Unmarshal.
	MaxDimension = 1 << 15
)

// ErrFormat is returned (wrapped) for every malformed document.
var ErrFormat = errors.New("lsprite: invalid document")

// document is the JSON wire form.
type document struct {
	Version          int     `json:"version"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ColorDepth       int     `json:"colorDepth"`
	ActiveLayerIndex int     `json:"activeLayerIndex"`
	Layers           []layer `json:"layers"`
}

// layer is one entry of the layers array. Visible and Opacity are pointers
// so that absent fields can take their defaults.
type layer struct {
	Name    string   `json:"name"`
	Visible *bool    `json:"visible"`
	Opacity *float64 `json:"opacity"`
	Locked  bool     `json:"locked"`
	Pixels  []byte   `json:"pixels"`
}

// Marshal encodes s as a version 1 document.
func Marshal(s *sprite.LayerStack) ([]byte, error) {
	doc := document{
		Version:          Version,
		Width:            s.Width(),
		Height:           s.Height(),
		ColorDepth:       s.ColorDepth(),
		ActiveLayerIndex: s.ActiveIndex(),
		Layers:           make([]layer, 0, s.Len()),
	}
	if doc.ColorDepth == 0 {
		doc.ColorDepth = DefaultColorDepth
	}
	for _, l := range s.Layers() {
		visible, opacity := l.Visible(), l.Opacity()
		doc.Layers = append(doc.Layers, layer{
			Name:    l.Name(),
			Visible: &visible,
			Opacity: &opacity,
			Locked:  l.Locked(),
			Pixels:  l.Buffer().Pix(),
		})
	}

	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("lsprite: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a document into a new LayerStack.
//
// version, width and height must be present and positive and layers must
// be a non-empty array, or the error wraps ErrFormat. Every pixel payload
// must hold exactly width*height*4 bytes. activeLayerIndex is clamped to
// the layer range. Absent layer fields default to name "Layer", visible
// true, opacity 1 and unlocked; an absent colorDepth defaults to 32.
func Unmarshal(data []byte) (*sprite.LayerStack, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	switch {
	case doc.Version <= 0:
		return nil, fmt.Errorf("%w: missing version", ErrFormat)
	case doc.Version > Version:
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, doc.Version)
	case doc.Width <= 0 || doc.Height <= 0:
		return nil, fmt.Errorf("%w: missing or invalid size %dx%d", ErrFormat, doc.Width, doc.Height)
	case doc.Width > MaxDimension || doc.Height > MaxDimension:
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d", ErrFormat, doc.Width, doc.Height, MaxDimension)
	case len(doc.Layers) == 0:
		return nil, fmt.Errorf("%w: missing layers", ErrFormat)
	}
	if doc.ColorDepth == 0 {
		doc.ColorDepth = DefaultColorDepth
	}

	want := doc.Width * doc.Height * 4
	specs := make([]sprite.LayerSpec, len(doc.Layers))
	for i, l := range doc.Layers {
		if len(l.Pixels) != want {
			return nil, fmt.Errorf("%w: layer %d has %d pixel bytes, want %d", ErrFormat, i, len(l.Pixels), want)
		}
		buf := sprite.NewPixelBuffer(doc.Width, doc.Height)
		copy(buf.Pix(), l.Pixels)

		spec := sprite.LayerSpec{
			Name:    l.Name,
			Buffer:  buf,
			Visible: true,
			Opacity: 1,
			Locked:  l.Locked,
		}
		if sprite.NormalizeName(spec.Name) == "" {
			spec.Name = "Layer"
		}
		if l.Visible != nil {
			spec.Visible = *l.Visible
		}
		if l.Opacity != nil {
			spec.Opacity = *l.Opacity
		}
		specs[i] = spec
	}

	s, err := sprite.NewLayerStackFromLayers(doc.Width, doc.Height, doc.ColorDepth, specs, doc.ActiveLayerIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	sprite.Logger().Debug("lsprite: decoded", "width", doc.Width, "height", doc.Height, "layers", len(specs))
	return s, nil
}

// Encode writes s to w as a document.
func Encode(w io.Writer, s *sprite.LayerStack) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("lsprite: write: %w", err)
	}
	return nil
}

// Decode reads a whole document from r.
func Decode(r io.Reader) (*sprite.LayerStack, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("lsprite: read: %w", err)
	}
	return Unmarshal(buf.Bytes())
}

// Load reads the document at path.
func Load(path string) (*sprite.LayerStack, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("lsprite: open file: %w", err)
	}
	return Unmarshal(data)
}

// Save writes s to path.
func Save(path string, s *sprite.LayerStack) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("lsprite: write file: %w", err)
	}
	return nil
}

// IsDocumentName reports whether name carries the .lsprite extension.
func IsDocumentName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}
