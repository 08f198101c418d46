package editor

import (
	"image"
)

// Selection returns the selected rectangle of the active tab and whether
// one exists.
func (e *Editor) Selection() (image.Rectangle, bool) {
	s := e.cur.selection
	return s, !s.Empty()
}

// FloatingPaste returns the pending floating paste of the active tab.
// The buffer is shared with the editor and must not be modified.
func (e *Editor) FloatingPaste() (FloatingPaste, bool) {
	if e.cur.floating == nil {
		return FloatingPaste{}, false
	}
	return *e.cur.floating, true
}

// HasClipboard reports whether a region has been copied.
func (e *Editor) HasClipboard() bool {
	return e.clipboard != nil
}

// SelectAll selects the whole canvas.
func (e *Editor) SelectAll() {
	if e.busy.Load() {
		return
	}
	e.CommitFloatingPaste()
	s := e.cur.stack
	e.cur.selection = image.Rect(0, 0, s.Width(), s.Height())
	e.redraw()
}

// Deselect commits a pending floating paste and clears the selection.
func (e *Editor) Deselect() {
	if e.busy.Load() {
		return
	}
	e.CommitFloatingPaste()
	e.cur.selection = image.Rectangle{}
	e.redraw()
}

// CopySelection copies the selected region of the active layer to the
// clipboard. It reports false when nothing is selected.
func (e *Editor) CopySelection() bool {
	sel, ok := e.Selection()
	if !ok {
		return false
	}
	e.clipboard = e.cur.stack.ActiveLayer().Buffer().SubBuffer(sel.Min.X, sel.Min.Y, sel.Dx(), sel.Dy())
	return true
}

// CutSelection copies the selected region to the clipboard and clears it
// in the active layer.
func (e *Editor) CutSelection() bool {
	if e.busy.Load() || e.cur.stack.ActiveLayer().Locked() || !e.CopySelection() {
		return false
	}
	e.clearSelection()
	return true
}

// DeleteSelection clears the selected region of the active layer.
func (e *Editor) DeleteSelection() bool {
	if e.busy.Load() || e.cur.stack.ActiveLayer().Locked() {
		return false
	}
	if _, ok := e.Selection(); !ok {
		return false
	}
	e.clearSelection()
	return true
}

func (e *Editor) clearSelection() {
	sel := e.cur.selection
	e.PushHistory()
	e.cur.stack.ActiveLayer().Buffer().ClearRect(sel.Min.X, sel.Min.Y, sel.Dx(), sel.Dy())
	e.MarkDirty()
	e.redraw()
}

// Paste places a copy of the clipboard as a floating paste at the canvas
// origin and switches to the Move tool. It reports false when the
// clipboard is empty or the active layer is locked.
func (e *Editor) Paste() bool {
	if e.busy.Load() || e.clipboard == nil || e.cur.stack.ActiveLayer().Locked() {
		return false
	}
	e.CommitFloatingPaste()
	e.PushHistory()
	e.SetTool(Move)
	e.cur.floating = &FloatingPaste{Buffer: e.clipboard.Clone()}
	e.cur.selection = image.Rectangle{}
	e.MarkDirty()
	e.redraw()
	return true
}

// CommitFloatingPaste writes a pending floating paste into the active
// layer. Transparent pixels of the paste leave the layer unchanged. A
// locked layer is not written and the paste keeps floating.
func (e *Editor) CommitFloatingPaste() {
	fp := e.cur.floating
	if fp == nil {
		return
	}
	buf := e.paintTarget()
	if buf == nil {
		return
	}
	e.cur.floating = nil
	buf.Blit(fp.Buffer, fp.Pos.X, fp.Pos.Y)
	e.MarkDirty()
	e.redraw()
}
