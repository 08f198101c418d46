package sprite

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

// ErrInvalidDimensions is returned when a width or height is non-positive
// or exceeds a configured maximum.
var ErrInvalidDimensions = errors.New("sprite: invalid dimensions")

// PixelBuffer is a fixed-size raster of straight-alpha RGBA pixels stored
// row-major, 4 bytes per pixel.
//
// Coordinates outside the buffer are never an error: GetPixel reports false
// and writes are silently dropped, so tool algorithms can probe freely near
// the edges.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer creates a zero-filled (transparent black) buffer.
// Negative dimensions are treated as zero.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Pix returns the raw pixel data (RGBA format). Mutating the slice mutates the buffer.
func (b *PixelBuffer) Pix() []uint8 {
	return b.pix
}

// ByteSize returns the number of bytes of pixel storage.
func (b *PixelBuffer) ByteSize() int64 {
	return int64(len(b.pix))
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *PixelBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// GetPixel returns the pixel at (x, y). The second result is false when the
// coordinates are out of bounds.
func (b *PixelBuffer) GetPixel(x, y int) (Color, bool) {
	if !b.InBounds(x, y) {
		return Color{}, false
	}
	i := (y*b.width + x) * 4
	return Color{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, true
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *PixelBuffer) SetPixel(x, y int, c Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.width + x) * 4
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// SetRGBA sets the pixel at (x, y) from integer channels clamped to [0, 255].
func (b *PixelBuffer) SetRGBA(x, y, r, g, bl, a int) {
	b.SetPixel(x, y, ClampedRGBA(r, g, bl, a))
}

// Clone returns an independent copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	c := &PixelBuffer{
		width:  b.width,
		height: b.height,
		pix:    make([]uint8, len(b.pix)),
	}
	copy(c.pix, b.pix)
	return c
}

// Clear zeroes every byte of the buffer.
func (b *PixelBuffer) Clear() {
	clear(b.pix)
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c Color) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// ClearRect zeroes the pixels of the given rectangle, clipped to the buffer.
func (b *PixelBuffer) ClearRect(x, y, w, h int) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, b.width), min(y+h, b.height)
	for yy := y0; yy < y1; yy++ {
		row := (yy*b.width + x0) * 4
		end := (yy*b.width + x1) * 4
		if end > row {
			clear(b.pix[row:end])
		}
	}
}

// CopyFrom overwrites the buffer with the contents of src. It returns false
// and leaves the buffer untouched when the dimensions differ.
func (b *PixelBuffer) CopyFrom(src *PixelBuffer) bool {
	if src == nil || src.width != b.width || src.height != b.height {
		return false
	}
	copy(b.pix, src.pix)
	return true
}

// SubBuffer copies the w×h region whose top-left corner is (x, y) into a new
// buffer. Parts of the region outside b are transparent in the result.
func (b *PixelBuffer) SubBuffer(x, y, w, h int) *PixelBuffer {
	return b.Resize(w, h, -x, -y)
}

// Blit writes every non-transparent pixel of src into b with its top-left
// corner at (x, y). Pixels are replaced, not blended.
func (b *PixelBuffer) Blit(src *PixelBuffer, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			si := (sy*src.width + sx) * 4
			if src.pix[si+3] == 0 {
				continue
			}
			b.SetPixel(x+sx, y+sy, Color{R: src.pix[si], G: src.pix[si+1], B: src.pix[si+2], A: src.pix[si+3]})
		}
	}
}

// Resize returns a new newWidth×newHeight buffer holding the overlap of b
// shifted by (offsetX, offsetY). Source pixels landing outside the new bounds
// are dropped; newly exposed pixels are transparent black.
func (b *PixelBuffer) Resize(newWidth, newHeight, offsetX, offsetY int) *PixelBuffer {
	resized := NewPixelBuffer(newWidth, newHeight)

	// Destination columns [dx0, dx1) receive source columns starting at dx0-offsetX.
	dx0 := max(offsetX, 0)
	dx1 := min(b.width+offsetX, resized.width)
	if dx1 <= dx0 {
		return resized
	}
	n := (dx1 - dx0) * 4

	for y := 0; y < b.height; y++ {
		dy := y + offsetY
		if dy < 0 || dy >= resized.height {
			continue
		}
		si := (y*b.width + dx0 - offsetX) * 4
		di := (dy*resized.width + dx0) * 4
		copy(resized.pix[di:di+n], b.pix[si:si+n])
	}
	return resized
}

// Equal reports whether b and o have the same dimensions and pixels.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if o == nil || b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ToImage converts the buffer to an image.NRGBA sharing no memory with b.
func (b *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// FromImage creates a buffer from any image, converting to straight alpha.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	buf := NewPixelBuffer(bounds.Dx(), bounds.Dy())

	if n, ok := img.(*image.NRGBA); ok && n.Stride == bounds.Dx()*4 && n.Rect.Min == (image.Point{}) {
		copy(buf.pix, n.Pix)
		return buf
	}

	dst := &image.NRGBA{Pix: buf.pix, Stride: buf.width * 4, Rect: image.Rect(0, 0, buf.width, buf.height)}
	draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	return buf
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	c, _ := b.GetPixel(x, y)
	return c.NRGBA()
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
