package sprite

import (
	"testing"
)

func TestFlattenSingleOpaqueLayerIsCopy(t *testing.T) {
	s := NewLayerStack(3, 3, 32)
	buf := s.ActiveLayer().Buffer()
	buf.SetPixel(0, 0, RGBA8(10, 20, 30, 40))
	buf.SetPixel(2, 1, RGBA8(200, 100, 50, 255))
	// A transparent pixel with color bits must survive the copy verbatim.
	buf.SetPixel(1, 1, RGBA8(9, 9, 9, 0))

	flat := s.Flatten(nil)
	if !flat.Equal(buf) {
		t.Error("flatten of one opaque layer differs from the layer buffer")
	}
	flat.Clear()
	if c, _ := buf.GetPixel(2, 1); c.A != 255 {
		t.Error("flatten result shares memory with the layer")
	}
}

func TestFlattenTransparentUpperLeavesLower(t *testing.T) {
	s := NewLayerStack(4, 4, 32)
	lower := s.ActiveLayer().Buffer()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			lower.SetPixel(x, y, RGBA8(uint8(x*40), uint8(y*40), 77, uint8(100+x*30)))
		}
	}
	want := s.Flatten(nil)

	s.AddLayer("empty")
	got := s.Flatten(nil)
	if !got.Equal(want) {
		t.Error("a fully transparent upper layer changed the flattened output")
	}
}

func TestFlattenSkipsHiddenLayers(t *testing.T) {
	s := NewLayerStack(2, 2, 32)
	s.ActiveLayer().Buffer().SetPixel(0, 0, Black)
	top := s.AddLayer("top")
	top.Buffer().Fill(White)
	top.SetVisible(false)

	flat := s.Flatten(nil)
	if c, _ := flat.GetPixel(0, 0); c != Black {
		t.Errorf("(0,0) = %v, want black", c)
	}
	if c, _ := flat.GetPixel(1, 1); c != Transparent {
		t.Errorf("(1,1) = %v, want transparent", c)
	}
}

func TestFlattenBlendsWithOpacity(t *testing.T) {
	s := NewLayerStack(1, 1, 32)
	s.ActiveLayer().Buffer().SetPixel(0, 0, RGBA8(0, 0, 255, 255))
	top := s.AddLayer("")
	top.Buffer().SetPixel(0, 0, RGBA8(255, 0, 0, 255))
	top.SetOpacity(0.5)

	flat := s.Flatten(nil)
	if c, _ := flat.GetPixel(0, 0); c != RGBA8(128, 0, 128, 255) {
		t.Errorf("flattened = %v, want #800080", c)
	}
}

func TestFlattenHalfOpaqueBottomOverEmpty(t *testing.T) {
	s := NewLayerStack(1, 1, 32)
	s.ActiveLayer().Buffer().SetPixel(0, 0, RGBA8(200, 100, 0, 255))
	s.ActiveLayer().SetOpacity(0.5)
	s.AddLayer("")

	flat := s.Flatten(nil)
	if c, _ := flat.GetPixel(0, 0); c != RGBA8(200, 100, 0, 128) {
		t.Errorf("flattened = %v, want rgb unchanged with alpha 128", c)
	}
}

func TestFlattenReusesTarget(t *testing.T) {
	s := NewLayerStack(2, 2, 32)
	s.ActiveLayer().Buffer().SetPixel(0, 0, White)
	s.AddLayer("").SetOpacity(0.5)

	reuse := NewPixelBuffer(2, 2)
	reuse.Fill(RGBA8(1, 2, 3, 4))
	got := s.Flatten(reuse)
	if got != reuse {
		t.Fatal("matching reuse buffer was not used")
	}
	if c, _ := got.GetPixel(1, 1); c != Transparent {
		t.Errorf("stale pixel (1,1) = %v, want cleared", c)
	}

	wrong := NewPixelBuffer(3, 3)
	if s.Flatten(wrong) == wrong {
		t.Error("mismatched reuse buffer was used")
	}
}

func TestFlattenToLayer(t *testing.T) {
	s := NewLayerStack(2, 2, 32)
	s.ActiveLayer().Buffer().SetPixel(0, 0, White)
	s.AddLayer("").Buffer().SetPixel(1, 1, Black)
	want := s.Flatten(nil)

	s.FlattenToLayer()
	if s.Len() != 1 || s.ActiveIndex() != 0 {
		t.Fatalf("Len=%d active=%d, want 1, 0", s.Len(), s.ActiveIndex())
	}
	if s.ActiveLayer().Name() != "Background" {
		t.Errorf("name = %q, want Background", s.ActiveLayer().Name())
	}
	if !s.ActiveLayer().Buffer().Equal(want) {
		t.Error("flattened layer differs from Flatten output")
	}
}

func BenchmarkFlatten(b *testing.B) {
	s := NewLayerStack(256, 256, 32)
	for i := range 4 {
		l := s.AddLayer("")
		l.SetOpacity(0.8)
		l.Buffer().Fill(RGBA8(uint8(i*60), 100, 200, 180))
	}
	reuse := NewPixelBuffer(256, 256)
	b.ResetTimer()
	for b.Loop() {
		s.Flatten(reuse)
	}
}
