// Package editor implements a multi-document sprite editing session.
//
// An Editor owns a list of tabs, each holding one document: a
// sprite.LayerStack, its undo history, a selection rectangle and an
// optional floating paste. Pointer input is routed to the active Tool,
// which paints into the active layer of the active tab. Layer actions,
// clipboard operations and undo/redo are plain method calls.
//
// # Collaborators
//
// The editor has no user interface and performs no file I/O of its own.
// Persistence, export delivery and change notifications go through
// callbacks installed with options:
//
//	ed := editor.New(
//		editor.WithSaveFunc(func(ctx context.Context, data []byte, name string, tab int) (string, error) {
//			return name, os.WriteFile(name, data, 0o644)
//		}),
//		editor.WithRedrawFunc(canvas.Invalidate),
//	)
//	ed.SetTool(editor.Pencil)
//	ed.PointerDown(4, 4, editor.Input{})
//	ed.PointerUp(4, 4)
//	err := ed.Save(ctx)
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Save, SaveAs, Export and Open
// mark the editor busy while their collaborator runs; input and actions
// that arrive during that time (for example from a UI event loop pumped by
// a file dialog) are ignored, and further I/O fails with ErrBusy.
package editor
