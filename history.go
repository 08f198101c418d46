package sprite

// History limits.
const (
	// DefaultMaxHistorySteps is the number of undo steps kept by default.
	DefaultMaxHistorySteps = 50

	// DefaultMaxHistoryBytes is the soft byte budget of the undo stack (512 MiB).
	DefaultMaxHistoryBytes int64 = 512 * 1024 * 1024
)

// HistoryOption configures a History during creation.
//
// Example:
//
//	h := sprite.NewHistory(sprite.WithMaxSteps(100))
type HistoryOption func(*historyOptions)

// historyOptions holds optional configuration for History creation.
type historyOptions struct {
	maxSteps int
	maxBytes int64
}

// defaultHistoryOptions returns the default history options.
func defaultHistoryOptions() historyOptions {
	return historyOptions{
		maxSteps: DefaultMaxHistorySteps,
		maxBytes: DefaultMaxHistoryBytes,
	}
}

// WithMaxSteps caps the number of undo entries. Values below 1 are ignored.
func WithMaxSteps(n int) HistoryOption {
	return func(o *historyOptions) {
		if n >= 1 {
			o.maxSteps = n
		}
	}
}

// WithMaxBytes sets the soft byte budget of the undo stack. Values below 1 are ignored.
func WithMaxBytes(n int64) HistoryOption {
	return func(o *historyOptions) {
		if n >= 1 {
			o.maxBytes = n
		}
	}
}

// historyEntry is a deep snapshot of a stack and its pixel byte size.
type historyEntry struct {
	snapshot *LayerStack
	bytes    int64
}

// History is an undo/redo manager over whole-stack snapshots.
//
// The undo stack is capped by a step count and by a soft byte budget: when
// either is exceeded the oldest entries are evicted, but the byte budget
// never evicts the last remaining entry.
type History struct {
	undo      []historyEntry
	redo      []historyEntry
	undoBytes int64
	redoBytes int64
	opts      historyOptions
}

// NewHistory creates an empty history.
func NewHistory(opts ...HistoryOption) *History {
	o := defaultHistoryOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &History{opts: o}
}

// Push records a snapshot of current as the newest undo step and discards
// every redo step.
func (h *History) Push(current *LayerStack) {
	e := snapshotEntry(current)
	h.undo = append(h.undo, e)
	h.undoBytes += e.bytes

	clear(h.redo)
	h.redo = h.redo[:0]
	h.redoBytes = 0

	evicted := 0
	for len(h.undo) > h.opts.maxSteps || (h.undoBytes > h.opts.maxBytes && len(h.undo) > 1) {
		h.undoBytes -= h.undo[0].bytes
		h.undo[0] = historyEntry{}
		h.undo = h.undo[1:]
		evicted++
	}
	if evicted > 0 {
		Logger().Debug("sprite: history evicted", "entries", evicted, "undoBytes", h.undoBytes)
	}
}

// Undo returns the most recent snapshot, or nil if there is nothing to undo.
// A snapshot of current is pushed onto the redo stack; the caller adopts the
// returned stack as the live one.
func (h *History) Undo(current *LayerStack) *LayerStack {
	if len(h.undo) == 0 {
		return nil
	}
	e := snapshotEntry(current)
	h.redo = append(h.redo, e)
	h.redoBytes += e.bytes

	last := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = historyEntry{}
	h.undo = h.undo[:len(h.undo)-1]
	h.undoBytes -= last.bytes
	return last.snapshot
}

// Redo is the inverse of Undo. It returns nil if there is nothing to redo.
func (h *History) Redo(current *LayerStack) *LayerStack {
	if len(h.redo) == 0 {
		return nil
	}
	e := snapshotEntry(current)
	h.undo = append(h.undo, e)
	h.undoBytes += e.bytes

	last := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = historyEntry{}
	h.redo = h.redo[:len(h.redo)-1]
	h.redoBytes -= last.bytes
	return last.snapshot
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLen returns the number of undo steps.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the number of redo steps.
func (h *History) RedoLen() int { return len(h.redo) }

// UndoBytes returns the pixel bytes held by the undo stack.
func (h *History) UndoBytes() int64 { return h.undoBytes }

// RedoBytes returns the pixel bytes held by the redo stack.
func (h *History) RedoBytes() int64 { return h.redoBytes }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.undoBytes = 0
	h.redoBytes = 0
}

func snapshotEntry(s *LayerStack) historyEntry {
	c := s.Clone()
	return historyEntry{snapshot: c, bytes: c.ByteSize()}
}
