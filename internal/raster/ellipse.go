// Copyright 2026 The lightplay Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// minEllipseSteps is the lowest number of samples taken around an outline.
const minEllipseSteps = 16

// EllipseOutline plots the outline of the axis-aligned ellipse centered at
// (cx, cy) with radii rx and ry.
//
// The ellipse is sampled at max(4*max(rx, ry), 16) angles and consecutive
// samples are joined with Line, so the outline has no gaps. A zero-radius
// ellipse plots the center only.
func EllipseOutline(cx, cy, rx, ry int, plot PlotFunc) {
	if rx == 0 && ry == 0 {
		plot(cx, cy)
		return
	}
	steps := max(4*max(rx, ry), minEllipseSteps)
	step := 2 * math.Pi / float64(steps)

	var px, py int
	for i := 0; i <= steps; i++ {
		a := float64(i) * step
		x := Round(float64(cx) + float64(rx)*math.Cos(a))
		y := Round(float64(cy) + float64(ry)*math.Sin(a))
		if i > 0 {
			Line(px, py, x, y, plot)
		}
		px, py = x, y
	}
}

// FillEllipse plots every pixel (x, y) with
// ((x-cx)/rx)^2 + ((y-cy)/ry)^2 <= 1, scanning the box from
// floor(c-r) to ceil(c+r) on each axis. Nothing is plotted unless both
// radii are positive.
func FillEllipse(cx, cy, rx, ry float64, plot PlotFunc) {
	if rx <= 0 || ry <= 0 {
		return
	}
	top, bottom := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))
	left, right := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
	for y := top; y <= bottom; y++ {
		dy := (float64(y) - cy) / ry
		for x := left; x <= right; x++ {
			dx := (float64(x) - cx) / rx
			if dx*dx+dy*dy <= 1 {
				plot(x, y)
			}
		}
	}
}
