package lsprite

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightplay/sprite"
)

func TestRoundTripRandomPixels(t *testing.T) {
	s := sprite.NewLayerStack(100, 100, 32)
	buf := s.ActiveLayer().Buffer()

	type painted struct {
		x, y int
		c    sprite.Color
	}
	rng := rand.New(rand.NewSource(42))
	pts := make([]painted, 0, 50)
	for range 50 {
		p := painted{
			x: rng.Intn(100),
			y: rng.Intn(100),
			c: sprite.RGBA8(uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))),
		}
		buf.SetPixel(p.x, p.y, p.c)
		pts = append(pts, p)
	}

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Width() != 100 || got.Height() != 100 || got.Len() != 1 {
		t.Fatalf("restored %dx%d with %d layers, want 100x100 with 1", got.Width(), got.Height(), got.Len())
	}
	// Later writes to the same coordinate win, so compare against the live buffer.
	for _, p := range pts {
		want, _ := buf.GetPixel(p.x, p.y)
		if c, _ := got.ActiveLayer().Buffer().GetPixel(p.x, p.y); c != want {
			t.Errorf("(%d,%d) = %v, want %v", p.x, p.y, c, want)
		}
	}
	if !got.ActiveLayer().Buffer().Equal(buf) {
		t.Error("restored buffer differs")
	}
}

func TestRoundTripLayerProperties(t *testing.T) {
	s := sprite.NewLayerStack(8, 8, 16)
	bg := s.Layer(0)
	bg.Buffer().SetPixel(0, 0, sprite.RGBA8(100, 100, 100, 255))
	bg.SetOpacity(0.75)
	bg.SetLocked(true)

	over := s.AddLayer("Overlay")
	over.Buffer().SetPixel(1, 1, sprite.RGBA8(200, 50, 50, 200))
	over.SetVisible(false)
	over.SetOpacity(0.5)

	var w bytes.Buffer
	if err := Encode(&w, s); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(&w)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got.ColorDepth() != 16 || got.ActiveIndex() != 1 || got.Len() != 2 {
		t.Fatalf("depth=%d active=%d len=%d, want 16, 1, 2", got.ColorDepth(), got.ActiveIndex(), got.Len())
	}
	l0, l1 := got.Layer(0), got.Layer(1)
	if l0.Name() != "Background" || !l0.Visible() || l0.Opacity() != 0.75 || !l0.Locked() {
		t.Errorf("layer 0 = %q visible=%v opacity=%v locked=%v", l0.Name(), l0.Visible(), l0.Opacity(), l0.Locked())
	}
	if l1.Name() != "Overlay" || l1.Visible() || l1.Opacity() != 0.5 || l1.Locked() {
		t.Errorf("layer 1 = %q visible=%v opacity=%v locked=%v", l1.Name(), l1.Visible(), l1.Opacity(), l1.Locked())
	}
	if c, _ := l1.Buffer().GetPixel(1, 1); c != sprite.RGBA8(200, 50, 50, 200) {
		t.Errorf("layer 1 (1,1) = %v", c)
	}
}

func TestMarshalWireFields(t *testing.T) {
	s := sprite.NewLayerStack(1, 1, 0)
	s.ActiveLayer().Buffer().SetPixel(0, 0, sprite.RGBA8(1, 2, 3, 4))
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"version", "width", "height", "colorDepth", "activeLayerIndex", "layers"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if raw["version"] != float64(1) || raw["colorDepth"] != float64(32) {
		t.Errorf("version=%v colorDepth=%v, want 1 and 32", raw["version"], raw["colorDepth"])
	}
	layer := raw["layers"].([]any)[0].(map[string]any)
	if layer["pixels"] != base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4}) {
		t.Errorf("pixels = %v, want standard base64 of raw bytes", layer["pixels"])
	}
}

func doc(fields string) string {
	return "{" + fields + "}"
}

func pixels(n int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, n))
}

func TestUnmarshalFormatErrors(t *testing.T) {
	layer := fmt.Sprintf(`{"name":"a","pixels":%q}`, pixels(4))
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "nope"},
		{"missing version", doc(`"width":1,"height":1,"layers":[` + layer + `]`)},
		{"zero version", doc(`"version":0,"width":1,"height":1,"layers":[` + layer + `]`)},
		{"future version", doc(`"version":2,"width":1,"height":1,"layers":[` + layer + `]`)},
		{"missing width", doc(`"version":1,"height":1,"layers":[` + layer + `]`)},
		{"missing height", doc(`"version":1,"width":1,"layers":[` + layer + `]`)},
		{"negative width", doc(`"version":1,"width":-1,"height":1,"layers":[` + layer + `]`)},
		{"huge width", doc(`"version":1,"width":100000,"height":1,"layers":[` + layer + `]`)},
		{"missing layers", doc(`"version":1,"width":1,"height":1`)},
		{"null layers", doc(`"version":1,"width":1,"height":1,"layers":null`)},
		{"layers object", doc(`"version":1,"width":1,"height":1,"layers":{}`)},
		{"empty layers", doc(`"version":1,"width":1,"height":1,"layers":[]`)},
		{"bad base64", doc(`"version":1,"width":1,"height":1,"layers":[{"pixels":"***"}]`)},
		{"short payload", doc(`"version":1,"width":2,"height":1,"layers":[` + layer + `]`)},
		{"missing payload", doc(`"version":1,"width":1,"height":1,"layers":[{"name":"a"}]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			if !errors.Is(err, ErrFormat) {
				t.Errorf("Unmarshal() error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestUnmarshalDefaults(t *testing.T) {
	in := doc(fmt.Sprintf(`"version":1,"width":1,"height":1,"layers":[{"pixels":%q}]`, pixels(4)))
	s, err := Unmarshal([]byte(in))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	l := s.Layer(0)
	if l.Name() != "Layer" || !l.Visible() || l.Opacity() != 1 || l.Locked() {
		t.Errorf("defaults: name=%q visible=%v opacity=%v locked=%v", l.Name(), l.Visible(), l.Opacity(), l.Locked())
	}
	if s.ColorDepth() != DefaultColorDepth {
		t.Errorf("ColorDepth = %d, want %d", s.ColorDepth(), DefaultColorDepth)
	}
}

func TestUnmarshalClampsActiveIndex(t *testing.T) {
	layer := fmt.Sprintf(`{"pixels":%q}`, pixels(4))
	layers := strings.Join([]string{layer, layer, layer}, ",")
	tests := []struct {
		active int
		want   int
	}{
		{0, 0},
		{2, 2},
		{7, 2},
		{-3, 0},
	}
	for _, tt := range tests {
		in := doc(fmt.Sprintf(`"version":1,"width":1,"height":1,"activeLayerIndex":%d,"layers":[%s]`, tt.active, layers))
		s, err := Unmarshal([]byte(in))
		if err != nil {
			t.Fatalf("active %d: Unmarshal() error = %v", tt.active, err)
		}
		if s.ActiveIndex() != tt.want {
			t.Errorf("active %d: ActiveIndex = %d, want %d", tt.active, s.ActiveIndex(), tt.want)
		}
	}
}

func TestUnmarshalClampsOpacity(t *testing.T) {
	in := doc(fmt.Sprintf(`"version":1,"width":1,"height":1,"layers":[{"opacity":3,"pixels":%q}]`, pixels(4)))
	s, err := Unmarshal([]byte(in))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.Layer(0).Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", s.Layer(0).Opacity())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.lsprite")
	s := sprite.NewLayerStack(3, 2, 32)
	s.ActiveLayer().Buffer().Fill(sprite.White)

	if err := Save(path, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.ActiveLayer().Buffer().Equal(s.ActiveLayer().Buffer()) {
		t.Error("loaded pixels differ")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.lsprite")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}

func TestIsDocumentName(t *testing.T) {
	tests := map[string]bool{
		"a.lsprite":   true,
		"A.LSPRITE":   true,
		"a.png":       false,
		"lsprite":     false,
		"a.lsprite.x": false,
	}
	for name, want := range tests {
		if got := IsDocumentName(name); got != want {
			t.Errorf("IsDocumentName(%q) = %v, want %v", name, got, want)
		}
	}
}
