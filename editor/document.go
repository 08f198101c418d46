package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/lightplay/sprite"
	"github.com/lightplay/sprite/export"
	intImage "github.com/lightplay/sprite/internal/image"
	"github.com/lightplay/sprite/lsprite"
)

// CreateNew opens a blank width×height document. Sizes are clamped to
// [1, max canvas size] and a zero colorDepth becomes
// sprite.DefaultColorDepth. It returns the id of the tab holding it.
func (e *Editor) CreateNew(width, height, colorDepth int) int {
	if e.busy.Load() {
		return e.cur.id
	}
	limit := e.opts.maxCanvasSize
	width = min(max(width, 1), limit)
	height = min(max(height, 1), limit)
	if colorDepth <= 0 {
		colorDepth = sprite.DefaultColorDepth
	}
	id := e.openInTab(sprite.NewLayerStack(width, height, colorDepth), "")
	sprite.Logger().Info("editor: new document", "tab", id, "width", width, "height", height, "colorDepth", colorDepth)
	return id
}

func (e *Editor) checkSize(width, height int) error {
	limit := e.opts.maxCanvasSize
	if width < 1 || height < 1 || width > limit || height > limit {
		return fmt.Errorf("editor: %w: %dx%d exceeds 1..%d", sprite.ErrInvalidDimensions, width, height, limit)
	}
	return nil
}

// ResizeCanvas resizes every layer to width×height, shifting the content
// by (offsetX, offsetY). It records an undo step.
func (e *Editor) ResizeCanvas(width, height, offsetX, offsetY int) error {
	if e.busy.Load() {
		return ErrBusy
	}
	if err := e.checkSize(width, height); err != nil {
		return err
	}
	e.CommitFloatingPaste()
	e.PushHistory()
	e.cur.stack = e.cur.stack.Resize(width, height, offsetX, offsetY)
	e.cur.selection = image.Rectangle{}
	e.MarkDirty()
	e.redraw()
	return nil
}

// OpenStack installs an already decoded document under fileName and
// returns the id of the tab holding it.
func (e *Editor) OpenStack(stack *sprite.LayerStack, fileName string) (int, error) {
	if e.busy.Load() {
		return 0, ErrBusy
	}
	if err := e.checkSize(stack.Width(), stack.Height()); err != nil {
		return 0, err
	}
	return e.openInTab(stack, sprite.NormalizeName(fileName)), nil
}

// Open reads a document from r. Names ending in .lsprite are decoded as
// layered documents; anything else is decoded as a flat image (PNG, JPEG,
// GIF, BMP, TIFF or WebP) and imported into a single layer.
func (e *Editor) Open(ctx context.Context, name string, r io.Reader) (int, error) {
	if !e.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	stack, err := e.decodeDocument(ctx, name, r)
	e.busy.Store(false)
	if err != nil {
		return 0, err
	}
	id, err := e.OpenStack(stack, name)
	if err != nil {
		return 0, err
	}
	sprite.Logger().Info("editor: opened", "tab", id, "name", name,
		"width", stack.Width(), "height", stack.Height(), "layers", stack.Len())
	return id, nil
}

// decodeDocument checks the dimensions in an image header against the
// canvas limit before any pixels are decoded.
func (e *Editor) decodeDocument(ctx context.Context, name string, r io.Reader) (*sprite.LayerStack, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if lsprite.IsDocumentName(name) {
		s, err := lsprite.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("editor: open %s: %w", name, err)
		}
		return s, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", name, err)
	}
	cfg, format, err := intImage.DecodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", name, err)
	}
	if err := e.checkSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	img, _, err := intImage.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("editor: open %s: %w", name, err)
	}
	sprite.Logger().Debug("editor: imported image", "name", name, "format", format)
	return sprite.NewLayerStackFromBuffer(sprite.FromImage(img), sprite.DefaultColorDepth), nil
}

// Save encodes the active document and hands it to the save collaborator.
// A canceled save returns ErrCanceled and leaves the dirty flag set.
func (e *Editor) Save(ctx context.Context) error {
	return e.save(ctx, e.opts.onSave, "save")
}

// SaveAs is like Save but uses the save-as collaborator, which always
// asks for a name.
func (e *Editor) SaveAs(ctx context.Context) error {
	return e.save(ctx, e.opts.onSaveAs, "save as")
}

func (e *Editor) save(ctx context.Context, fn SaveFunc, op string) error {
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNoCallback, op)
	}
	if !e.busy.CompareAndSwap(false, true) {
		sprite.Logger().Warn("editor: busy", "op", op)
		return ErrBusy
	}
	defer e.busy.Store(false)

	t := e.cur
	data, err := lsprite.Marshal(t.stack)
	if err != nil {
		return fmt.Errorf("editor: %s: %w", op, err)
	}
	suggested := t.fileName
	if suggested == "" {
		suggested = untitled + lsprite.Extension
	}

	name, err := fn(ctx, data, suggested, t.id)
	switch {
	case errors.Is(err, ErrCanceled) || (err == nil && name == ""):
		sprite.Logger().Warn("editor: save canceled", "tab", t.id)
		return ErrCanceled
	case err != nil:
		return fmt.Errorf("editor: %s: %w", op, err)
	}

	t.fileName = sprite.NormalizeName(name)
	if t == e.cur {
		e.setClean()
	} else {
		t.dirty = false
	}
	sprite.Logger().Info("editor: saved", "tab", t.id, "name", t.fileName, "bytes", len(data))
	return nil
}

// ExportSettings returns the settings of the last export.
func (e *Editor) ExportSettings() export.Settings {
	return e.exportSettings
}

// Export renders the active document with settings and hands the encoded
// image to the export collaborator. The settings are remembered for the
// next export.
func (e *Editor) Export(ctx context.Context, settings export.Settings) error {
	if e.opts.onExport == nil {
		return fmt.Errorf("%w: export", ErrNoCallback)
	}
	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	if !e.busy.CompareAndSwap(false, true) {
		sprite.Logger().Warn("editor: busy", "op", "export")
		return ErrBusy
	}
	defer e.busy.Store(false)

	e.exportSettings = settings
	data, err := export.EncodeToBytes(e.cur.stack, settings)
	if err != nil {
		return fmt.Errorf("editor: export: %w", err)
	}
	name := settings.FileName(e.cur.fileName)
	if err := e.opts.onExport(ctx, data, name, settings.Extension()); err != nil {
		if errors.Is(err, ErrCanceled) {
			return ErrCanceled
		}
		return fmt.Errorf("editor: export: %w", err)
	}
	return nil
}
