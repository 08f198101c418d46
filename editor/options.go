package editor

import (
	"context"

	"github.com/lightplay/sprite"
)

// Default session settings.
const (
	// DefaultMaxCanvasSize bounds the width and height of new and resized canvases.
	DefaultMaxCanvasSize = 4096

	// DefaultCanvasSize is the width and height of a blank tab.
	DefaultCanvasSize = 32

	// DefaultZoom is the initial zoom of every tab.
	DefaultZoom = 8
)

// SaveFunc persists an encoded document and returns the name actually
// used. Returning an empty name, or an error wrapping ErrCanceled, means
// the user canceled.
type SaveFunc func(ctx context.Context, data []byte, suggestedName string, tabID int) (string, error)

// ExportFunc delivers an encoded image. ext is the file extension of the
// encoded format, including the leading dot.
type ExportFunc func(ctx context.Context, data []byte, suggestedName, ext string) error

// Option configures an Editor during creation.
//
// Example:
//
//	ed := editor.New(editor.WithMaxCanvasSize(1024), editor.WithHistoryLimits(100, 0))
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	historyOpts   []sprite.HistoryOption
	maxCanvasSize int
	defaultWidth  int
	defaultHeight int

	onSave        SaveFunc
	onSaveAs      SaveFunc
	onExport      ExportFunc
	onDirtyChange func(dirty bool)
	onTabChange   func(tabID int)
	onTabClose    func(tabID int)
	onRedraw      func()
}

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		maxCanvasSize: DefaultMaxCanvasSize,
		defaultWidth:  DefaultCanvasSize,
		defaultHeight: DefaultCanvasSize,
	}
}

// WithHistoryLimits sets the undo step count and byte budget of every
// tab's history. Values below 1 keep the defaults.
func WithHistoryLimits(steps int, bytes int64) Option {
	return func(o *options) {
		o.historyOpts = []sprite.HistoryOption{sprite.WithMaxSteps(steps), sprite.WithMaxBytes(bytes)}
	}
}

// WithMaxCanvasSize bounds canvas width and height. Values below 1 are ignored.
func WithMaxCanvasSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxCanvasSize = n
		}
	}
}

// WithDefaultCanvas sets the size of blank tabs. Non-positive values are ignored.
func WithDefaultCanvas(width, height int) Option {
	return func(o *options) {
		if width >= 1 && height >= 1 {
			o.defaultWidth, o.defaultHeight = width, height
		}
	}
}

// WithSaveFunc installs the collaborator used by Save.
func WithSaveFunc(fn SaveFunc) Option {
	return func(o *options) {
		o.onSave = fn
	}
}

// WithSaveAsFunc installs the collaborator used by SaveAs. It is expected
// to always ask for a name.
func WithSaveAsFunc(fn SaveFunc) Option {
	return func(o *options) {
		o.onSaveAs = fn
	}
}

// WithExportFunc installs the collaborator used by Export.
func WithExportFunc(fn ExportFunc) Option {
	return func(o *options) {
		o.onExport = fn
	}
}

// WithDirtyChangeFunc installs a callback for changes of the active
// document's dirty flag.
func WithDirtyChangeFunc(fn func(dirty bool)) Option {
	return func(o *options) {
		o.onDirtyChange = fn
	}
}

// WithTabChangeFunc installs a callback run when another tab becomes active.
func WithTabChangeFunc(fn func(tabID int)) Option {
	return func(o *options) {
		o.onTabChange = fn
	}
}

// WithTabCloseFunc installs a callback run before a tab is closed.
func WithTabCloseFunc(fn func(tabID int)) Option {
	return func(o *options) {
		o.onTabClose = fn
	}
}

// WithRedrawFunc installs a callback run whenever the visible state changed.
func WithRedrawFunc(fn func()) Option {
	return func(o *options) {
		o.onRedraw = fn
	}
}
