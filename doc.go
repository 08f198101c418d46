// Package sprite provides the pixel data model of a layered pixel-art editor.
//
// # Overview
//
// sprite holds the three pieces every editor operation touches: a fixed-size
// straight-alpha RGBA raster ([PixelBuffer]), an ordered stack of layers that
// composite bottom to top ([LayerStack]), and a byte-budgeted undo/redo
// history of whole-stack snapshots ([History]).
//
// # Quick Start
//
//	stack := sprite.NewLayerStack(32, 32, 32)
//	hist := sprite.NewHistory()
//
//	hist.Push(stack)
//	stack.ActiveLayer().Buffer().SetPixel(4, 4, sprite.RGBA8(255, 0, 0, 255))
//
//	flat := stack.Flatten(nil)
//	_ = flat.ToImage()
//
//	if prev := hist.Undo(stack); prev != nil {
//	    stack = prev
//	}
//
// # Architecture
//
// The library is organized into:
//   - Public API: PixelBuffer, Color, Layer, LayerStack, History
//   - editor: tool state machines, clipboard, tabs and the editing session
//   - lsprite: the JSON document format
//   - export: flattened, upscaled raster export
//   - Internal: blend (straight-alpha compositing), raster (lines, ellipses,
//     flood fill), image (codecs and scaling)
//
// # Coordinate System
//
// Pixel coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Out-of-range coordinates are never an error: reads report absence and
// writes are dropped.
//
// # Concurrency
//
// None of the types in this package are safe for concurrent mutation. An
// editor drives them from a single logical thread.
package sprite

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
