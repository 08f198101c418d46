package editor

import (
	"image"
)

// selectionTool drags out a rectangular selection.
type selectionTool struct {
	start    image.Point
	dragging bool
}

func (t *selectionTool) Kind() ToolKind      { return Selection }
func (t *selectionTool) Options() ToolOption { return 0 }

func (t *selectionTool) Down(e *Editor, x, y int, _ Input) {
	e.cur.floating = nil
	e.cur.selection = image.Rectangle{}
	t.start = image.Pt(x, y)
	t.dragging = true
}

func (t *selectionTool) Move(e *Editor, x, y int) {
	if !t.dragging {
		return
	}
	// Both corners are inclusive.
	e.cur.selection = image.Rect(
		min(t.start.X, x), min(t.start.Y, y),
		max(t.start.X, x)+1, max(t.start.Y, y)+1,
	)
}

func (t *selectionTool) Up(e *Editor, _, _ int) {
	if s := e.cur.selection; s.Dx() <= 1 && s.Dy() <= 1 {
		// A click without a drag deselects.
		e.cur.selection = image.Rectangle{}
	}
	t.dragging = false
}

// moveTool drags the floating paste, lifting the selection into one first
// when needed.
type moveTool struct {
	last     image.Point
	dragging bool
}

func (t *moveTool) Kind() ToolKind      { return Move }
func (t *moveTool) Options() ToolOption { return 0 }

func (t *moveTool) Down(e *Editor, x, y int, in Input) {
	t.last = image.Pt(x, y)
	t.dragging = false

	if e.cur.floating != nil {
		t.dragging = true
		return
	}
	sel := e.cur.selection
	if sel.Empty() {
		return
	}
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	e.PushHistory()
	lifted := buf.SubBuffer(sel.Min.X, sel.Min.Y, sel.Dx(), sel.Dy())
	if !in.Shift {
		buf.ClearRect(sel.Min.X, sel.Min.Y, sel.Dx(), sel.Dy())
	}
	e.cur.floating = &FloatingPaste{Pos: sel.Min, Buffer: lifted}
	e.cur.selection = image.Rectangle{}
	t.dragging = true
	e.MarkDirty()
}

func (t *moveTool) Move(e *Editor, x, y int) {
	p := image.Pt(x, y)
	if t.dragging && e.cur.floating != nil {
		e.cur.floating.Pos = e.cur.floating.Pos.Add(p.Sub(t.last))
		e.MarkDirty()
	}
	t.last = p
}

func (t *moveTool) Up(*Editor, int, int) {
	t.dragging = false
}
