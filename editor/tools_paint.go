package editor

import (
	"image"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/internal/raster"
)

// brushTool implements Pencil and Eraser: a square brush stamped along the
// pointer path.
type brushTool struct {
	kind    ToolKind
	last    image.Point
	drawing bool
}

func (t *brushTool) Kind() ToolKind      { return t.kind }
func (t *brushTool) Options() ToolOption { return toolInfoTable[t.kind].options }

func (t *brushTool) color(e *Editor) sprite.Color {
	if t.kind == Eraser {
		return sprite.Transparent
	}
	return e.fg
}

func (t *brushTool) Down(e *Editor, x, y int, _ Input) {
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	e.PushHistory()
	t.last = image.Pt(x, y)
	t.drawing = true
	stamp(buf, x, y, e.brushSize, t.color(e))
	e.MarkDirty()
}

func (t *brushTool) Move(e *Editor, x, y int) {
	if !t.drawing {
		return
	}
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	c, size := t.color(e), e.brushSize
	// Interpolate so fast drags leave no gaps.
	raster.Line(t.last.X, t.last.Y, x, y, func(px, py int) {
		stamp(buf, px, py, size, c)
	})
	t.last = image.Pt(x, y)
	e.MarkDirty()
}

func (t *brushTool) Up(*Editor, int, int) {
	t.drawing = false
}

// stamp paints a size×size square centered on (cx, cy).
func stamp(buf *sprite.PixelBuffer, cx, cy, size int, c sprite.Color) {
	half := size / 2
	for dy := range size {
		for dx := range size {
			buf.SetPixel(cx-half+dx, cy-half+dy, c)
		}
	}
}

// fillTool is the paint bucket.
type fillTool struct{ baseTool }

func (fillTool) Kind() ToolKind      { return Fill }
func (fillTool) Options() ToolOption { return toolInfoTable[Fill].options }

func (fillTool) Down(e *Editor, x, y int, _ Input) {
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	target, ok := buf.GetPixel(x, y)
	if !ok || target.Matches(e.fg, e.fillTolerance) {
		return
	}
	e.PushHistory()
	fg := e.fg
	n := raster.FloodFill(buf.Pix(), buf.Width(), buf.Height(), x, y,
		[4]byte{fg.R, fg.G, fg.B, fg.A}, e.fillTolerance)
	sprite.Logger().Debug("editor: flood fill", "x", x, "y", y, "tolerance", e.fillTolerance, "pixels", n)
	e.MarkDirty()
}

// eyedropperTool picks the foreground color from the active layer.
type eyedropperTool struct{ baseTool }

func (eyedropperTool) Kind() ToolKind      { return Eyedropper }
func (eyedropperTool) Options() ToolOption { return 0 }

func (eyedropperTool) Down(e *Editor, x, y int, _ Input) {
	if c, ok := e.cur.stack.ActiveLayer().Buffer().GetPixel(x, y); ok {
		e.fg = c
	}
}
