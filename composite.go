package sprite

import (
	"github.com/lightplay/sprite/internal/blend"
)

// compositeLayer blends layer onto dst with the layer's opacity.
func compositeLayer(dst *PixelBuffer, layer *Layer) {
	blend.SourceOver(dst.pix, layer.buffer.pix, layer.opacity)
}

// Flatten composites the visible layers bottom to top, each with its own
// opacity, into a single buffer.
//
// If reuse is non-nil and matches the stack dimensions it is overwritten and
// returned, avoiding an allocation; otherwise a new buffer is allocated.
// A stack with exactly one visible layer at full opacity is copied without
// blending.
func (s *LayerStack) Flatten(reuse *PixelBuffer) *PixelBuffer {
	result := reuse
	if result == nil || result.width != s.width || result.height != s.height {
		result = NewPixelBuffer(s.width, s.height)
		reuse = nil
	}

	visible := 0
	var single *Layer
	for _, l := range s.layers {
		if l.visible {
			visible++
			single = l
		}
	}

	if visible == 1 && single.opacity == 1 {
		copy(result.pix, single.buffer.pix)
		Logger().Debug("sprite: flatten fast path", "layer", single.name)
		return result
	}

	if reuse != nil {
		result.Clear()
	}

	for i, l := range s.layers {
		if !l.visible {
			continue
		}
		// The result is still empty below an opaque bottom layer.
		if i == 0 && l.opacity == 1 {
			copy(result.pix, l.buffer.pix)
			continue
		}
		compositeLayer(result, l)
	}
	return result
}
