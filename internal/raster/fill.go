// Copyright 2026 The lightplay Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// FloodFill repaints the 4-connected region around (x, y) in pix, a
// row-major RGBA buffer of w*h pixels, with fill. A pixel belongs to the
// region when every channel differs from the seed pixel's by at most tol.
//
// The fill works span by span: each queued seed is widened to the left,
// then the span is painted rightward while the rows above and below are
// checked. A neighbor row gets one seed per contiguous matching run. A
// visited bitmap keeps every pixel from being painted twice, so fill colors
// that still match the target cannot loop.
//
// FloodFill returns the number of pixels painted; 0 if the seed lies
// outside the buffer.
func FloodFill(pix []byte, w, h, x, y int, fill [4]byte, tol int) int {
	if x < 0 || y < 0 || x >= w || y >= h || len(pix) < w*h*4 {
		return 0
	}
	si := (y*w + x) * 4
	target := [4]byte{pix[si], pix[si+1], pix[si+2], pix[si+3]}

	matches := func(i int) bool {
		return near(pix[i], target[0], tol) &&
			near(pix[i+1], target[1], tol) &&
			near(pix[i+2], target[2], tol) &&
			near(pix[i+3], target[3], tol)
	}

	visited := make([]bool, w*h)
	queue := []int{x, y}
	painted := 0

	for qi := 0; qi < len(queue); qi += 2 {
		x, y := queue[qi], queue[qi+1]

		// Widen to the left edge of the span.
		for x > 0 {
			key := y*w + x - 1
			if !matches(key*4) || visited[key] {
				break
			}
			x--
		}

		spanUp, spanDown := false, false
		for ; x < w; x++ {
			key := y*w + x
			if visited[key] {
				continue
			}
			i := key * 4
			if !matches(i) {
				break
			}
			visited[key] = true
			copy(pix[i:i+4], fill[:])
			painted++

			if y > 0 {
				above := key - w
				if !visited[above] && matches(above*4) {
					if !spanUp {
						queue = append(queue, x, y-1)
						spanUp = true
					}
				} else {
					spanUp = false
				}
			}
			if y < h-1 {
				below := key + w
				if !visited[below] && matches(below*4) {
					if !spanDown {
						queue = append(queue, x, y+1)
						spanDown = true
					}
				} else {
					spanDown = false
				}
			}
		}
	}
	return painted
}

func near(a, b byte, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}
