package editor

import (
	"image"
	"slices"
	"testing"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/export"
)

var red = sprite.RGBA8(255, 0, 0, 255)

func newTestEditor(opts ...Option) *Editor {
	return New(append([]Option{WithDefaultCanvas(8, 8)}, opts...)...)
}

func pixel(e *Editor, x, y int) sprite.Color {
	c, _ := e.LayerStack().ActiveLayer().Buffer().GetPixel(x, y)
	return c
}

func click(e *Editor, x, y int) {
	e.PointerDown(x, y, Input{})
	e.PointerUp(x, y)
}

func drag(e *Editor, x0, y0, x1, y1 int) {
	e.PointerDown(x0, y0, Input{})
	e.PointerMove(x1, y1)
	e.PointerUp(x1, y1)
}

func TestNew(t *testing.T) {
	e := New()
	s := e.LayerStack()
	if s.Width() != DefaultCanvasSize || s.Height() != DefaultCanvasSize || s.Len() != 1 {
		t.Errorf("canvas = %dx%d with %d layers, want %dx%d with 1",
			s.Width(), s.Height(), s.Len(), DefaultCanvasSize, DefaultCanvasSize)
	}
	if e.Tool() != Pencil {
		t.Errorf("Tool() = %v, want Pencil", e.Tool())
	}
	if e.Foreground() != sprite.Black || e.Background() != sprite.White {
		t.Errorf("colors = %v/%v, want black/white", e.Foreground(), e.Background())
	}
	if e.BrushSize() != 1 || e.ShapeFilled() || e.FillTolerance() != 0 {
		t.Errorf("brush=%d filled=%v tolerance=%d", e.BrushSize(), e.ShapeFilled(), e.FillTolerance())
	}
	if e.IsDirty() || e.HasImage() || e.CanUndo() || e.CanRedo() {
		t.Error("new editor should be clean, empty and without history")
	}
	if z := e.View().Zoom; z != DefaultZoom {
		t.Errorf("Zoom = %v, want %v", z, DefaultZoom)
	}
	if e.ExportSettings() != export.DefaultSettings() {
		t.Errorf("ExportSettings() = %+v", e.ExportSettings())
	}
}

func TestSettingsClamp(t *testing.T) {
	e := New()
	tests := []struct {
		set  func(int)
		get  func() int
		in   int
		want int
	}{
		{e.SetBrushSize, e.BrushSize, 0, 1},
		{e.SetBrushSize, e.BrushSize, 5, 5},
		{e.SetBrushSize, e.BrushSize, 100, MaxBrushSize},
		{e.SetFillTolerance, e.FillTolerance, -4, 0},
		{e.SetFillTolerance, e.FillTolerance, 40, 40},
		{e.SetFillTolerance, e.FillTolerance, 300, MaxFillTolerance},
	}
	for _, tt := range tests {
		tt.set(tt.in)
		if got := tt.get(); got != tt.want {
			t.Errorf("set(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSwapColors(t *testing.T) {
	e := New()
	e.SetForeground(red)
	e.SwapColors()
	if e.Foreground() != sprite.White || e.Background() != red {
		t.Errorf("after swap fg=%v bg=%v", e.Foreground(), e.Background())
	}
}

func TestSetToolByShortcut(t *testing.T) {
	e := New()
	if !e.SetToolByShortcut('g') || e.Tool() != Fill {
		t.Errorf("shortcut g selected %v, want Fill", e.Tool())
	}
	if e.SetToolByShortcut('z') {
		t.Error("shortcut z should not match a tool")
	}
	if e.Tool() != Fill {
		t.Errorf("unknown shortcut changed tool to %v", e.Tool())
	}
	e.SetTool(ToolKind(99))
	if e.Tool() != Fill {
		t.Errorf("invalid kind changed tool to %v", e.Tool())
	}
}

func TestMarkDirtyNotifiesOnce(t *testing.T) {
	var got []bool
	e := New(WithDirtyChangeFunc(func(d bool) { got = append(got, d) }))
	e.MarkDirty()
	e.MarkDirty()
	click(e, 0, 0)
	if !slices.Equal(got, []bool{true}) {
		t.Errorf("notifications = %v, want [true]", got)
	}
}

func TestUndoRedo(t *testing.T) {
	e := newTestEditor()
	if e.Undo() || e.Redo() {
		t.Fatal("Undo/Redo succeeded without history")
	}
	click(e, 1, 1)
	if pixel(e, 1, 1) != sprite.Black {
		t.Fatalf("pencil did not paint")
	}
	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if pixel(e, 1, 1) != sprite.Transparent {
		t.Errorf("after undo (1,1) = %v, want transparent", pixel(e, 1, 1))
	}
	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if pixel(e, 1, 1) != sprite.Black {
		t.Errorf("after redo (1,1) = %v, want black", pixel(e, 1, 1))
	}
	if !e.IsDirty() {
		t.Error("undo/redo should leave the document dirty")
	}
}

func TestUndoDropsFloatingPaste(t *testing.T) {
	e := newTestEditor()
	e.LayerStack().ActiveLayer().Buffer().SetPixel(0, 0, red)
	e.SelectAll()
	e.CopySelection()
	e.Paste()
	if _, ok := e.FloatingPaste(); !ok {
		t.Fatal("Paste() did not create a floating paste")
	}
	e.cur.selection = image.Rect(0, 0, 2, 2)
	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if _, ok := e.FloatingPaste(); ok {
		t.Error("floating paste survived undo")
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection survived undo")
	}
}

func TestBusyIgnoresInput(t *testing.T) {
	e := newTestEditor()
	e.busy.Store(true)
	click(e, 2, 2)
	e.SetTool(Fill)
	if pixel(e, 2, 2) != sprite.Transparent || e.CanUndo() {
		t.Error("input was applied while busy")
	}
	if e.Tool() != Pencil {
		t.Error("tool changed while busy")
	}
	if e.AddLayer("x") || e.LayerStack().Len() != 1 {
		t.Error("layer action applied while busy")
	}
	e.busy.Store(false)
	click(e, 2, 2)
	if pixel(e, 2, 2) != sprite.Black {
		t.Error("input ignored after busy cleared")
	}
}

func TestRedrawCallback(t *testing.T) {
	n := 0
	e := newTestEditor(WithRedrawFunc(func() { n++ }))
	drag(e, 0, 0, 3, 3)
	if n != 3 {
		t.Errorf("redraws = %d, want 3", n)
	}
}

func TestSnapshot(t *testing.T) {
	e := newTestEditor()
	click(e, 0, 0)
	e.AddLayer("top")
	e.SetForeground(red)
	click(e, 1, 0)

	snap := e.Snapshot()
	if c, _ := snap.GetPixel(0, 0); c != sprite.Black {
		t.Errorf("snapshot (0,0) = %v, want black", c)
	}
	if c, _ := snap.GetPixel(1, 0); c != red {
		t.Errorf("snapshot (1,0) = %v, want red", c)
	}
	snap.SetPixel(0, 0, red)
	if c, _ := e.LayerStack().Layer(0).Buffer().GetPixel(0, 0); c != sprite.Black {
		t.Error("snapshot shares memory with the document")
	}
}

func TestSelectAllAndDeselect(t *testing.T) {
	e := newTestEditor()
	e.SelectAll()
	if sel, ok := e.Selection(); !ok || sel != image.Rect(0, 0, 8, 8) {
		t.Errorf("Selection() = %v, %v", sel, ok)
	}
	e.Deselect()
	if _, ok := e.Selection(); ok {
		t.Error("selection kept after Deselect")
	}
}

func TestUndoKeepsSelectionWithoutPaste(t *testing.T) {
	e := newTestEditor()
	e.SelectAll()
	click(e, 1, 1)
	if !e.Undo() {
		t.Fatal("Undo() = false")
	}
	if sel, ok := e.Selection(); !ok || sel != image.Rect(0, 0, 8, 8) {
		t.Errorf("Selection() = %v, %v, want the whole canvas kept", sel, ok)
	}
}
