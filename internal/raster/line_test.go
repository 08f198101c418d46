// Copyright 2026 The lightplay Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"testing"
)

type pt struct{ x, y int }

func collect(fn func(PlotFunc)) []pt {
	var pts []pt
	fn(func(x, y int) { pts = append(pts, pt{x, y}) })
	return pts
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{2.5, 3},
		{-0.5, 0},
		{-2.5, -2},
		{-2.51, -3},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLineStraight(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []pt
	}{
		{"point", 3, 3, 3, 3, []pt{{3, 3}}},
		{"horizontal", 0, 0, 3, 0, []pt{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"horizontal reversed", 3, 0, 0, 0, []pt{{3, 0}, {2, 0}, {1, 0}, {0, 0}}},
		{"vertical up", 1, 2, 1, 0, []pt{{1, 2}, {1, 1}, {1, 0}}},
		{"diagonal", 0, 0, 2, 2, []pt{{0, 0}, {1, 1}, {2, 2}}},
		{"anti-diagonal", 2, 0, 0, 2, []pt{{2, 0}, {1, 1}, {0, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(func(p PlotFunc) { Line(tt.x0, tt.y0, tt.x1, tt.y1, p) })
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

// TestLineAllOctants checks endpoints, pixel count and 8-connectivity for a
// line into every octant.
func TestLineAllOctants(t *testing.T) {
	ends := []pt{
		{7, 3}, {3, 7}, {-3, 7}, {-7, 3},
		{-7, -3}, {-3, -7}, {3, -7}, {7, -3},
	}
	for _, e := range ends {
		got := collect(func(p PlotFunc) { Line(0, 0, e.x, e.y, p) })
		if got[0] != (pt{0, 0}) || got[len(got)-1] != e {
			t.Errorf("line to %v: endpoints %v..%v", e, got[0], got[len(got)-1])
		}
		if want := max(abs(e.x), abs(e.y)) + 1; len(got) != want {
			t.Errorf("line to %v: %d pixels, want %d", e, len(got), want)
		}
		for i := 1; i < len(got); i++ {
			if abs(got[i].x-got[i-1].x) > 1 || abs(got[i].y-got[i-1].y) > 1 {
				t.Errorf("line to %v: gap between %v and %v", e, got[i-1], got[i])
			}
		}
	}
}
