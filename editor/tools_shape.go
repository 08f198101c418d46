package editor

import (
	"image"
	"math"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/internal/raster"
)

// shapeTool implements Line, Rectangle and Ellipse. The layer is copied on
// pointer down; every move restores that copy and redraws the shape from
// the start point to the pointer, so only the final shape remains. The
// active layer is looked up on every move, so a gesture interrupted by
// undo or a tab switch draws into the live document.
type shapeTool struct {
	kind     ToolKind
	snapshot *sprite.PixelBuffer
	start    image.Point
}

func (t *shapeTool) Kind() ToolKind      { return t.kind }
func (t *shapeTool) Options() ToolOption { return toolInfoTable[t.kind].options }

func (t *shapeTool) Down(e *Editor, x, y int, _ Input) {
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	e.PushHistory()
	t.snapshot = buf.Clone()
	t.start = image.Pt(x, y)
}

func (t *shapeTool) Move(e *Editor, x, y int) {
	if t.snapshot == nil {
		return
	}
	buf := e.paintTarget()
	if buf == nil || !buf.CopyFrom(t.snapshot) {
		return
	}
	c := e.fg
	switch t.kind {
	case Line:
		size := e.brushSize
		raster.Line(t.start.X, t.start.Y, x, y, func(px, py int) {
			stamp(buf, px, py, size, c)
		})
	case Rectangle:
		drawRect(buf, t.start, image.Pt(x, y), e.shapeFilled, c)
	case Ellipse:
		drawEllipse(buf, t.start, image.Pt(x, y), e.shapeFilled, c)
	}
	e.MarkDirty()
}

func (t *shapeTool) Up(*Editor, int, int) {
	t.snapshot = nil
}

// drawRect draws the rectangle with corners a and b, both inclusive.
func drawRect(buf *sprite.PixelBuffer, a, b image.Point, filled bool, c sprite.Color) {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X, b.X), max(a.Y, b.Y)
	if filled {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				buf.SetPixel(x, y, c)
			}
		}
		return
	}
	for x := x0; x <= x1; x++ {
		buf.SetPixel(x, y0, c)
		buf.SetPixel(x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		buf.SetPixel(x0, y, c)
		buf.SetPixel(x1, y, c)
	}
}

// drawEllipse draws the ellipse inscribed in the box with corners a and b.
// Boxes thinner than two pixels in both directions draw nothing.
func drawEllipse(buf *sprite.PixelBuffer, a, b image.Point, filled bool, c sprite.Color) {
	cx := float64(a.X+b.X) / 2
	cy := float64(a.Y+b.Y) / 2
	rx := math.Abs(float64(b.X-a.X)) / 2
	ry := math.Abs(float64(b.Y-a.Y)) / 2
	if rx < 0.5 && ry < 0.5 {
		return
	}
	plot := func(x, y int) { buf.SetPixel(x, y, c) }
	if filled {
		raster.FillEllipse(cx, cy, rx, ry, plot)
		return
	}
	raster.EllipseOutline(raster.Round(cx), raster.Round(cy), raster.Round(rx), raster.Round(ry), plot)
}
