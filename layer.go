package sprite

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Layer is one paintable raster plane of a LayerStack.
// Each layer exclusively owns its PixelBuffer.
type Layer struct {
	id      int
	name    string
	buffer  *PixelBuffer
	visible bool
	opacity float64
	locked  bool
}

// ID returns the layer id, unique within its stack.
func (l *Layer) ID() int {
	return l.id
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Rename sets the layer name. Names are NFC-normalized; a blank name is ignored.
func (l *Layer) Rename(name string) {
	if n := NormalizeName(name); n != "" {
		l.name = n
	}
}

// Buffer returns the layer's pixels.
func (l *Layer) Buffer() *PixelBuffer {
	return l.buffer
}

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool {
	return l.visible
}

// SetVisible shows or hides the layer.
func (l *Layer) SetVisible(v bool) {
	l.visible = v
}

// Opacity returns the layer opacity (0.0 to 1.0).
func (l *Layer) Opacity() float64 {
	return l.opacity
}

// SetOpacity sets the layer opacity, clamped to [0.0, 1.0].
func (l *Layer) SetOpacity(opacity float64) {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	l.opacity = opacity
}

// Locked reports whether painting tools must leave the layer alone.
func (l *Layer) Locked() bool {
	return l.locked
}

// SetLocked locks or unlocks the layer.
func (l *Layer) SetLocked(v bool) {
	l.locked = v
}

// Clone returns a deep copy of the layer with the same id.
func (l *Layer) Clone() *Layer {
	c := *l
	c.buffer = l.buffer.Clone()
	return &c
}

// LayerSpec describes a layer to restore into a new stack, as read from a document.
type LayerSpec struct {
	Name    string
	Buffer  *PixelBuffer
	Visible bool
	Opacity float64
	Locked  bool
}

// DefaultColorDepth is the color depth label of new documents.
const DefaultColorDepth = 32

// LayerStack is an ordered sequence of equally sized layers. Index 0 is the
// bottom of the paint order. A stack always holds at least one layer and
// exactly one of them is active.
//
// Structural operations report rejection with a false (or nil) result and
// never partially mutate the stack.
type LayerStack struct {
	width      int
	height     int
	colorDepth int
	layers     []*Layer
	active     int
	nextID     int
}

// NewLayerStack creates a stack holding a single transparent "Background" layer.
// colorDepth is carried as metadata; pixels are always stored as 32-bit RGBA.
func NewLayerStack(width, height, colorDepth int) *LayerStack {
	s := &LayerStack{
		width:      width,
		height:     height,
		colorDepth: colorDepth,
		nextID:     1,
	}
	s.layers = []*Layer{s.newLayer("Background", NewPixelBuffer(width, height))}
	return s
}

// NewLayerStackFromBuffer creates a single-layer stack whose background is a
// copy of buf, as when importing a flat image.
func NewLayerStackFromBuffer(buf *PixelBuffer, colorDepth int) *LayerStack {
	s := NewLayerStack(buf.Width(), buf.Height(), colorDepth)
	s.layers[0].buffer = buf.Clone()
	return s
}

// NewLayerStackFromLayers builds a stack from restored layer descriptions.
// Every buffer must be width×height. active is clamped to the valid range.
func NewLayerStackFromLayers(width, height, colorDepth int, specs []LayerSpec, active int) (*LayerStack, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("sprite: stack needs at least one layer")
	}
	s := &LayerStack{
		width:      width,
		height:     height,
		colorDepth: colorDepth,
		nextID:     1,
	}
	for i, spec := range specs {
		if spec.Buffer == nil || spec.Buffer.Width() != width || spec.Buffer.Height() != height {
			return nil, fmt.Errorf("%w: layer %d does not match %dx%d", ErrInvalidDimensions, i, width, height)
		}
		l := s.newLayer(spec.Name, spec.Buffer)
		l.visible = spec.Visible
		l.SetOpacity(spec.Opacity)
		l.locked = spec.Locked
		s.layers = append(s.layers, l)
	}
	s.active = min(max(active, 0), len(s.layers)-1)
	return s, nil
}

func (s *LayerStack) newLayer(name string, buf *PixelBuffer) *Layer {
	l := &Layer{
		id:      s.nextID,
		name:    NormalizeName(name),
		buffer:  buf,
		visible: true,
		opacity: 1,
	}
	s.nextID++
	return l
}

// Width returns the canvas width shared by all layers.
func (s *LayerStack) Width() int {
	return s.width
}

// Height returns the canvas height shared by all layers.
func (s *LayerStack) Height() int {
	return s.height
}

// ColorDepth returns the color depth label (8, 16 or 32).
func (s *LayerStack) ColorDepth() int {
	return s.colorDepth
}

// Len returns the number of layers.
func (s *LayerStack) Len() int {
	return len(s.layers)
}

// Layer returns the layer at index i, or nil if i is out of range.
func (s *LayerStack) Layer(i int) *Layer {
	if !s.valid(i) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom to top. The slice is a copy; the layers are not.
func (s *LayerStack) Layers() []*Layer {
	return slices.Clone(s.layers)
}

// ActiveIndex returns the index of the active layer.
func (s *LayerStack) ActiveIndex() int {
	return s.active
}

// SetActiveIndex makes layer i active.
func (s *LayerStack) SetActiveIndex(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.active = i
	return true
}

// ActiveLayer returns the active layer.
func (s *LayerStack) ActiveLayer() *Layer {
	return s.layers[s.active]
}

// InBounds reports whether (x, y) lies on the canvas.
func (s *LayerStack) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// ByteSize returns the total pixel storage of all layers.
func (s *LayerStack) ByteSize() int64 {
	var n int64
	for _, l := range s.layers {
		n += l.buffer.ByteSize()
	}
	return n
}

func (s *LayerStack) valid(i int) bool {
	return i >= 0 && i < len(s.layers)
}

// AddLayer inserts a transparent layer directly above the active layer and
// makes it active. An empty name becomes "Layer N" with N = layer count + 1.
func (s *LayerStack) AddLayer(name string) *Layer {
	if NormalizeName(name) == "" {
		name = fmt.Sprintf("Layer %d", len(s.layers)+1)
	}
	l := s.newLayer(name, NewPixelBuffer(s.width, s.height))
	s.layers = slices.Insert(s.layers, s.active+1, l)
	s.active++
	return l
}

// RemoveLayer deletes layer index. The last remaining layer cannot be removed.
func (s *LayerStack) RemoveLayer(index int) bool {
	if len(s.layers) <= 1 || !s.valid(index) {
		return false
	}
	s.layers = slices.Delete(s.layers, index, index+1)
	if s.active >= len(s.layers) {
		s.active = len(s.layers) - 1
	} else if s.active > index {
		s.active--
	}
	return true
}

// MoveLayerUp swaps layer index with the one above it.
func (s *LayerStack) MoveLayerUp(index int) bool {
	if !s.valid(index) || index >= len(s.layers)-1 {
		return false
	}
	s.swap(index, index+1)
	return true
}

// MoveLayerDown swaps layer index with the one below it.
func (s *LayerStack) MoveLayerDown(index int) bool {
	if !s.valid(index) || index <= 0 {
		return false
	}
	s.swap(index, index-1)
	return true
}

// swap exchanges two layers; the active index follows the layer it pointed at.
func (s *LayerStack) swap(a, b int) {
	s.layers[a], s.layers[b] = s.layers[b], s.layers[a]
	switch s.active {
	case a:
		s.active = b
	case b:
		s.active = a
	}
}

// DuplicateLayer inserts a deep copy of layer index directly above it, named
// with a " copy" suffix, and makes the copy active.
func (s *LayerStack) DuplicateLayer(index int) *Layer {
	if !s.valid(index) {
		return nil
	}
	orig := s.layers[index]
	dup := orig.Clone()
	dup.id = s.nextID
	s.nextID++
	dup.name = orig.name + " copy"
	s.layers = slices.Insert(s.layers, index+1, dup)
	s.active = index + 1
	return dup
}

// ReorderLayer moves layer from to position to. The active index keeps
// tracking the same layer.
func (s *LayerStack) ReorderLayer(from, to int) bool {
	if !s.valid(from) || !s.valid(to) || from == to {
		return false
	}
	l := s.layers[from]
	s.layers = slices.Delete(s.layers, from, from+1)
	s.layers = slices.Insert(s.layers, to, l)

	switch {
	case s.active == from:
		s.active = to
	case from < s.active && to >= s.active:
		s.active--
	case from > s.active && to <= s.active:
		s.active++
	}
	return true
}

// MergeDown composites layer index onto the layer below it using the upper
// layer's opacity, then removes the upper layer.
func (s *LayerStack) MergeDown(index int) bool {
	if !s.valid(index) || index == 0 {
		return false
	}
	upper, lower := s.layers[index], s.layers[index-1]
	compositeLayer(lower.buffer, upper)

	s.layers = slices.Delete(s.layers, index, index+1)
	if s.active >= index {
		s.active = max(0, s.active-1)
	}
	return true
}

// MergeLayers composites every listed layer onto the lowest listed one, in
// ascending order, and removes the merged layers. It needs at least two
// distinct, valid indices.
func (s *LayerStack) MergeLayers(indices []int) bool {
	if len(indices) < 2 {
		return false
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	if len(slices.Compact(slices.Clone(sorted))) != len(sorted) {
		return false
	}
	if !s.valid(sorted[0]) || !s.valid(sorted[len(sorted)-1]) {
		return false
	}

	target := sorted[0]
	dst := s.layers[target].buffer
	for _, i := range sorted[1:] {
		compositeLayer(dst, s.layers[i])
	}

	wasMerged := slices.Contains(sorted, s.active)
	removedBelow := 0
	for _, i := range sorted[1:] {
		if i < s.active {
			removedBelow++
		}
	}
	for k := len(sorted) - 1; k >= 1; k-- {
		s.layers = slices.Delete(s.layers, sorted[k], sorted[k]+1)
	}

	if wasMerged {
		s.active = target
	} else {
		s.active -= removedBelow
	}
	s.active = min(s.active, len(s.layers)-1)
	return true
}

// FlattenToLayer replaces all layers with one "Background" layer holding the
// flattened image.
func (s *LayerStack) FlattenToLayer() {
	flat := s.Flatten(nil)
	s.layers = []*Layer{s.newLayer("Background", flat)}
	s.active = 0
}

// Clone returns a deep copy: every layer buffer is copied. Layer ids and the
// id counter are preserved.
func (s *LayerStack) Clone() *LayerStack {
	c := *s
	c.layers = make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		c.layers[i] = l.Clone()
	}
	return &c
}

// Resize returns a new stack whose layers are resized per PixelBuffer.Resize.
// Layer attributes, ids and the active index are preserved.
func (s *LayerStack) Resize(newWidth, newHeight, offsetX, offsetY int) *LayerStack {
	c := *s
	c.width = newWidth
	c.height = newHeight
	c.layers = make([]*Layer, len(s.layers))
	for i, l := range s.layers {
		nl := *l
		nl.buffer = l.buffer.Resize(newWidth, newHeight, offsetX, offsetY)
		c.layers[i] = &nl
	}
	return &c
}

// NormalizeName trims surrounding whitespace and converts a layer or file
// name to Unicode NFC, so visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
