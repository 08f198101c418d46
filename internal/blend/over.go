// Package blend implements straight-alpha layer compositing.
//
// All operations work on non-premultiplied RGBA bytes in the range 0-255,
// which is how sprite layers store pixels. Results are rounded half-up by
// adding 0.5 and truncating, so the same inputs always yield the same bytes.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// SourceOver composites src onto dst in place using the "over" operator in
// straight-alpha form, with the source alpha scaled by opacity.
//
// Both slices hold RGBA pixels, 4 bytes each; only the common prefix is
// processed. For every pixel:
//
//	srcA = (sa/255) * opacity
//	outA = srcA + dstA*(1-srcA)
//	out  = (s*srcA + d*dstA*(1-srcA)) / outA
//
// Pixels whose raw source alpha is 0, or whose scaled alpha is 0, leave the
// destination untouched.
func SourceOver(dst, src []byte, opacity float64) {
	n := min(len(dst), len(src)) &^ 3
	for i := 0; i < n; i += 4 {
		overPixel(dst[i:i+4:i+4], src[i:i+4:i+4], opacity)
	}
}

// overPixel blends a single RGBA pixel. dst and src must hold 4 bytes.
func overPixel(dst, src []byte, opacity float64) {
	sa := src[3]
	if sa == 0 {
		return
	}
	srcA := float64(float64(sa)/255) * opacity
	if srcA == 0 {
		return
	}

	da := float64(dst[3]) / 255
	dstW := float64(da * (1 - srcA))
	outA := srcA + dstW
	if outA <= 0 {
		return
	}

	inv := 1 / outA
	dst[0] = channel(src[0], dst[0], srcA, dstW, inv)
	dst[1] = channel(src[1], dst[1], srcA, dstW, inv)
	dst[2] = channel(src[2], dst[2], srcA, dstW, inv)
	dst[3] = round255(float64(outA * 255))
}

// channel blends one color channel. The explicit float64 conversions keep
// products from being fused into FMA instructions, which would change
// rounding on some architectures.
func channel(s, d byte, srcA, dstW, inv float64) byte {
	num := float64(float64(s)*srcA) + float64(float64(d)*dstW)
	return round255(float64(num * inv))
}

// round255 rounds half-up by truncation and clamps to a byte.
func round255(v float64) byte {
	r := int(v + 0.5)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return byte(r)
}
