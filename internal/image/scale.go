package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ScaleNearest returns src enlarged by an integer factor with
// nearest-neighbor sampling, so every source pixel becomes a
// factor×factor block. A factor below 2 returns a copy of src.
func ScaleNearest(src *image.NRGBA, factor int) *image.NRGBA {
	src = ToNRGBA(src)
	if factor < 2 {
		dst := image.NewNRGBA(src.Rect)
		copy(dst.Pix, src.Pix)
		return dst
	}
	dst := image.NewNRGBA(image.Rect(0, 0, src.Rect.Dx()*factor, src.Rect.Dy()*factor))

	// Nearest-neighbor sampling never mixes pixels, so the straight-alpha
	// bytes go through the RGBA byte-copy path unchanged.
	xdraw.NearestNeighbor.Scale(asRGBA(dst), dst.Rect, asRGBA(src), src.Rect, xdraw.Src, nil)
	return dst
}

// asRGBA views the bytes of n as an *image.RGBA without converting them.
func asRGBA(n *image.NRGBA) *image.RGBA {
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}
