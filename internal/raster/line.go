// Copyright 2026 The lightplay Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides the integer rasterizers behind the drawing tools:
// Bresenham lines, sampled ellipse outlines, point-in-ellipse fills and a
// scanline flood fill over RGBA byte slices.
//
// Rasterizers do not clip. They report every covered pixel to a PlotFunc
// and the caller discards coordinates outside its canvas.
package raster

import "math"

// PlotFunc receives one covered pixel.
type PlotFunc func(x, y int)

// Round rounds half up (2.5 -> 3, -2.5 -> -2).
func Round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// Line plots an 8-connected Bresenham line from (x0, y0) to (x1, y1),
// inclusive of both endpoints.
func Line(x0, y0, x1, y1 int, plot PlotFunc) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
