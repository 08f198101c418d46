package editor

import (
	"errors"
	"image"
	"sync/atomic"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/export"
)

// Errors returned at the I/O edge.
var (
	// ErrCanceled is returned when a collaborator reports that the user
	// canceled a save or export.
	ErrCanceled = errors.New("editor: canceled")

	// ErrBusy is returned when another save, export or open is in flight.
	ErrBusy = errors.New("editor: busy")

	// ErrNoCallback is returned when the collaborator for an operation was
	// not configured.
	ErrNoCallback = errors.New("editor: no callback configured")
)

// Brush and fill limits.
const (
	MinBrushSize = 1
	MaxBrushSize = 32

	MaxFillTolerance = 255
)

// ViewState is the zoom and pan of a tab's canvas view. The editor only
// stores it so that switching tabs restores the view.
type ViewState struct {
	Zoom float64
	PanX float64
	PanY float64
}

// FloatingPaste is a detached pixel region being positioned over the
// active layer. Pos is the top-left corner in canvas coordinates.
type FloatingPaste struct {
	Pos    image.Point
	Buffer *sprite.PixelBuffer
}

// Input carries modifier state for a pointer-down event.
type Input struct {
	// Shift makes the Move tool copy the selection instead of cutting it.
	Shift bool
}

// Editor is a sprite editing session over one or more tabs.
type Editor struct {
	opts options

	tabs      []*tab
	cur       *tab
	nextTabID int

	tools [toolCount]Tool
	tool  ToolKind

	fg            sprite.Color
	bg            sprite.Color
	brushSize     int
	shapeFilled   bool
	fillTolerance int

	// clipboard is shared by all tabs.
	clipboard *sprite.PixelBuffer

	exportSettings export.Settings

	busy atomic.Bool
}

// New creates an editor holding one blank tab with the Pencil tool active.
func New(opts ...Option) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Editor{
		opts:           o,
		nextTabID:      1,
		tools:          newTools(),
		tool:           Pencil,
		fg:             sprite.Black,
		bg:             sprite.White,
		brushSize:      MinBrushSize,
		exportSettings: export.DefaultSettings(),
	}
	e.cur = e.newTab()
	e.tabs = []*tab{e.cur}
	return e
}

// Tool returns the active tool kind.
func (e *Editor) Tool() ToolKind {
	return e.tool
}

// SetTool activates a tool. A pending floating paste is committed first.
func (e *Editor) SetTool(kind ToolKind) {
	if e.busy.Load() || !kind.IsValid() {
		return
	}
	e.CommitFloatingPaste()
	e.tool = kind
}

// SetToolByShortcut activates the tool bound to shortcut letter r and
// reports whether one was found.
func (e *Editor) SetToolByShortcut(r rune) bool {
	kind, ok := ToolByShortcut(r)
	if !ok {
		return false
	}
	e.SetTool(kind)
	return true
}

// ToolOptions returns the options the active tool uses.
func (e *Editor) ToolOptions() ToolOption {
	return e.tools[e.tool].Options()
}

// Foreground returns the paint color.
func (e *Editor) Foreground() sprite.Color { return e.fg }

// Background returns the secondary color.
func (e *Editor) Background() sprite.Color { return e.bg }

// SetForeground sets the paint color.
func (e *Editor) SetForeground(c sprite.Color) { e.fg = c }

// SetBackground sets the secondary color.
func (e *Editor) SetBackground(c sprite.Color) { e.bg = c }

// SwapColors exchanges the foreground and background colors.
func (e *Editor) SwapColors() {
	e.fg, e.bg = e.bg, e.fg
}

// BrushSize returns the side of the square brush in pixels.
func (e *Editor) BrushSize() int { return e.brushSize }

// SetBrushSize sets the brush size, clamped to [MinBrushSize, MaxBrushSize].
func (e *Editor) SetBrushSize(n int) {
	e.brushSize = min(max(n, MinBrushSize), MaxBrushSize)
}

// ShapeFilled reports whether Rectangle and Ellipse draw filled shapes.
func (e *Editor) ShapeFilled() bool { return e.shapeFilled }

// SetShapeFilled selects filled or outlined shapes.
func (e *Editor) SetShapeFilled(v bool) { e.shapeFilled = v }

// FillTolerance returns the per-channel tolerance of the Fill tool.
func (e *Editor) FillTolerance() int { return e.fillTolerance }

// SetFillTolerance sets the fill tolerance, clamped to [0, MaxFillTolerance].
func (e *Editor) SetFillTolerance(n int) {
	e.fillTolerance = min(max(n, 0), MaxFillTolerance)
}

// PointerDown starts a gesture of the active tool at canvas pixel (x, y).
func (e *Editor) PointerDown(x, y int, in Input) {
	if e.busy.Load() {
		return
	}
	e.tools[e.tool].Down(e, x, y, in)
	e.redraw()
}

// PointerMove continues the current gesture.
func (e *Editor) PointerMove(x, y int) {
	if e.busy.Load() {
		return
	}
	e.tools[e.tool].Move(e, x, y)
	e.redraw()
}

// PointerUp ends the current gesture.
func (e *Editor) PointerUp(x, y int) {
	if e.busy.Load() {
		return
	}
	e.tools[e.tool].Up(e, x, y)
	e.redraw()
}

// LayerStack returns the document of the active tab. The stack is replaced
// by undo, redo and canvas resizes, so callers should not keep it.
func (e *Editor) LayerStack() *sprite.LayerStack {
	return e.cur.stack
}

// History returns the undo history of the active tab.
func (e *Editor) History() *sprite.History {
	return e.cur.history
}

// PushHistory records the current document as an undo step.
func (e *Editor) PushHistory() {
	e.cur.history.Push(e.cur.stack)
}

// CanUndo reports whether the active tab has an undo step.
func (e *Editor) CanUndo() bool { return e.cur.history.CanUndo() }

// CanRedo reports whether the active tab has a redo step.
func (e *Editor) CanRedo() bool { return e.cur.history.CanRedo() }

// Undo restores the previous document. A floating paste is dropped, not
// committed, and takes the selection with it.
func (e *Editor) Undo() bool {
	if e.busy.Load() {
		return false
	}
	prev := e.cur.history.Undo(e.cur.stack)
	if prev == nil {
		return false
	}
	e.adopt(prev)
	return true
}

// Redo reapplies the last undone change.
func (e *Editor) Redo() bool {
	if e.busy.Load() {
		return false
	}
	next := e.cur.history.Redo(e.cur.stack)
	if next == nil {
		return false
	}
	e.adopt(next)
	return true
}

func (e *Editor) adopt(s *sprite.LayerStack) {
	e.cur.stack = s
	if e.cur.floating != nil {
		e.cur.floating = nil
		e.cur.selection = image.Rectangle{}
	}
	e.MarkDirty()
	e.redraw()
}

// IsDirty reports whether the active tab has unsaved changes.
func (e *Editor) IsDirty() bool { return e.cur.dirty }

// HasImage reports whether the active tab holds a created or opened image.
func (e *Editor) HasImage() bool { return e.cur.hasImage }

// FileName returns the name the active tab was last opened or saved under.
func (e *Editor) FileName() string { return e.cur.fileName }

// MarkDirty flags the active tab as modified. The dirty-change callback
// runs only when the flag flips.
func (e *Editor) MarkDirty() {
	if e.cur.dirty {
		return
	}
	e.cur.dirty = true
	if e.opts.onDirtyChange != nil {
		e.opts.onDirtyChange(true)
	}
}

func (e *Editor) setClean() {
	e.cur.dirty = false
	if e.opts.onDirtyChange != nil {
		e.opts.onDirtyChange(false)
	}
}

func (e *Editor) redraw() {
	if e.opts.onRedraw != nil {
		e.opts.onRedraw()
	}
}

// paintTarget returns the buffer of the active layer, or nil when the
// layer is locked.
func (e *Editor) paintTarget() *sprite.PixelBuffer {
	l := e.cur.stack.ActiveLayer()
	if l.Locked() {
		return nil
	}
	return l.Buffer()
}

// Snapshot returns the flattened image of the active tab.
func (e *Editor) Snapshot() *sprite.PixelBuffer {
	return e.cur.stack.Flatten(nil)
}
