package editor

import (
	"slices"

	"github.com/lightplay/sprite"
)

// Layer actions validate their arguments before touching history, so a
// rejected action leaves no undo step behind. Accepted actions push one
// step, mark the document dirty and request a redraw.

// mutate runs a structural change on the active document. valid reports
// whether the change will be accepted; apply performs it.
func (e *Editor) mutate(valid func(*sprite.LayerStack) bool, apply func(*sprite.LayerStack)) bool {
	if e.busy.Load() {
		return false
	}
	s := e.cur.stack
	if !valid(s) {
		return false
	}
	e.CommitFloatingPaste()
	e.PushHistory()
	apply(e.cur.stack)
	e.MarkDirty()
	e.redraw()
	return true
}

func (e *Editor) validIndex(i int) bool {
	return i >= 0 && i < e.cur.stack.Len()
}

// AddLayer inserts a transparent layer above the active one. An empty name
// is replaced with "Layer N".
func (e *Editor) AddLayer(name string) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return true },
		func(s *sprite.LayerStack) { s.AddLayer(name) },
	)
}

// RemoveLayer deletes layer i. The last layer cannot be removed.
func (e *Editor) RemoveLayer(i int) bool {
	return e.mutate(
		func(s *sprite.LayerStack) bool { return s.Len() > 1 && e.validIndex(i) },
		func(s *sprite.LayerStack) { s.RemoveLayer(i) },
	)
}

// MoveLayerUp moves layer i one step toward the top.
func (e *Editor) MoveLayerUp(i int) bool {
	return e.mutate(
		func(s *sprite.LayerStack) bool { return e.validIndex(i) && i < s.Len()-1 },
		func(s *sprite.LayerStack) { s.MoveLayerUp(i) },
	)
}

// MoveLayerDown moves layer i one step toward the bottom.
func (e *Editor) MoveLayerDown(i int) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return e.validIndex(i) && i > 0 },
		func(s *sprite.LayerStack) { s.MoveLayerDown(i) },
	)
}

// DuplicateLayer copies layer i directly above itself.
func (e *Editor) DuplicateLayer(i int) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return e.validIndex(i) },
		func(s *sprite.LayerStack) { s.DuplicateLayer(i) },
	)
}

// MergeLayerDown composites layer i onto the layer below it.
func (e *Editor) MergeLayerDown(i int) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return e.validIndex(i) && i > 0 },
		func(s *sprite.LayerStack) { s.MergeDown(i) },
	)
}

// MergeLayers composites the listed layers onto the lowest of them. At
// least two distinct valid indices are required.
func (e *Editor) MergeLayers(indices []int) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return e.validMergeSet(indices) },
		func(s *sprite.LayerStack) { s.MergeLayers(indices) },
	)
}

func (e *Editor) validMergeSet(indices []int) bool {
	if len(indices) < 2 {
		return false
	}
	sorted := slices.Sorted(slices.Values(indices))
	if len(slices.Compact(sorted)) != len(indices) {
		return false
	}
	return e.validIndex(sorted[0]) && e.validIndex(sorted[len(sorted)-1])
}

// ReorderLayer moves layer from to position to.
func (e *Editor) ReorderLayer(from, to int) bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return e.validIndex(from) && e.validIndex(to) && from != to },
		func(s *sprite.LayerStack) { s.ReorderLayer(from, to) },
	)
}

// FlattenImage replaces all layers with one holding the composite.
func (e *Editor) FlattenImage() bool {
	return e.mutate(
		func(*sprite.LayerStack) bool { return true },
		func(s *sprite.LayerStack) { s.FlattenToLayer() },
	)
}

// SetActiveLayer selects the layer that tools paint into. A pending
// floating paste is committed to the previously active layer first. It
// does not create an undo step.
func (e *Editor) SetActiveLayer(i int) bool {
	if e.busy.Load() || !e.validIndex(i) {
		return false
	}
	e.CommitFloatingPaste()
	e.cur.stack.SetActiveIndex(i)
	e.redraw()
	return true
}

// SetLayerVisibility shows or hides layer i.
func (e *Editor) SetLayerVisibility(i int, visible bool) bool {
	return e.mutate(
		func(s *sprite.LayerStack) bool { return e.validIndex(i) && s.Layer(i).Visible() != visible },
		func(s *sprite.LayerStack) { s.Layer(i).SetVisible(visible) },
	)
}

// SetLayerLocked locks or unlocks layer i. Tools do not paint into a
// locked layer.
func (e *Editor) SetLayerLocked(i int, locked bool) bool {
	return e.mutate(
		func(s *sprite.LayerStack) bool { return e.validIndex(i) && s.Layer(i).Locked() != locked },
		func(s *sprite.LayerStack) { s.Layer(i).SetLocked(locked) },
	)
}

// RenameLayer renames layer i. Blank names are rejected.
func (e *Editor) RenameLayer(i int, name string) bool {
	name = sprite.NormalizeName(name)
	return e.mutate(
		func(s *sprite.LayerStack) bool { return e.validIndex(i) && name != "" && s.Layer(i).Name() != name },
		func(s *sprite.LayerStack) { s.Layer(i).Rename(name) },
	)
}

// BeginLayerOpacityChange records an undo step before a series of
// SetLayerOpacity calls, such as a slider drag.
func (e *Editor) BeginLayerOpacityChange() {
	if e.busy.Load() {
		return
	}
	e.PushHistory()
}

// SetLayerOpacity sets the opacity of layer i, clamped to [0, 1], without
// recording an undo step.
func (e *Editor) SetLayerOpacity(i int, opacity float64) bool {
	if e.busy.Load() || !e.validIndex(i) {
		return false
	}
	e.cur.stack.Layer(i).SetOpacity(opacity)
	e.MarkDirty()
	e.redraw()
	return true
}
