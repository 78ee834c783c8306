package quill

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBlendModeEbitenBlend(t *testing.T) {
	modes := []struct {
		mode   BlendMode
		expect ebiten.Blend
	}{
		{BlendNormal, ebiten.BlendSourceOver},
		{BlendAdd, ebiten.BlendLighter},
		{BlendErase, ebiten.BlendDestinationOut},
		{BlendBelow, ebiten.BlendDestinationOver},
		{BlendNone, ebiten.BlendCopy},
	}
	for _, tt := range modes {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := tt.mode.EbitenBlend(); got != tt.expect {
				t.Errorf("%s.EbitenBlend() = %v, want %v", tt.mode, got, tt.expect)
			}
		})
	}

	zero := ebiten.Blend{}
	for _, mode := range []BlendMode{BlendMultiply, BlendScreen, BlendMask} {
		if mode.EbitenBlend() == zero {
			t.Errorf("%s.EbitenBlend() returned zero blend", mode)
		}
	}
}

func TestBlendModeNames(t *testing.T) {
	for b := BlendNormal; b <= BlendNone; b++ {
		got, ok := ParseBlendMode(b.String())
		if !ok || got != b {
			t.Errorf("ParseBlendMode(%q) = (%v, %v), want (%v, true)", b.String(), got, ok, b)
		}
	}
	if _, ok := ParseBlendMode("glow"); ok {
		t.Error("ParseBlendMode(glow) should fail")
	}
	if got := BlendMode(200).String(); got != "BlendMode(200)" {
		t.Errorf("String = %q, want BlendMode(200)", got)
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if BlendNormal != 0 || BlendNone != 7 {
		t.Errorf("BlendMode range = %d..%d, want 0..7", BlendNormal, BlendNone)
	}
	if StyleFill != 0 || StyleStroke != 1 {
		t.Errorf("PaintStyle = %d/%d, want 0/1", StyleFill, StyleStroke)
	}
	if LoopNone != 0 || LoopRestart != 1 || LoopPingPong != 2 {
		t.Errorf("LoopMode = %d/%d/%d, want 0/1/2", LoopNone, LoopRestart, LoopPingPong)
	}
}

func TestColorHelpers(t *testing.T) {
	if ColorWhite != (Color{1, 1, 1, 1}) {
		t.Errorf("ColorWhite = %v", ColorWhite)
	}
	if got := ColorBlack.WithAlpha(0.5); got.A != 0.5 || got.R != 0 {
		t.Errorf("WithAlpha = %v", got)
	}
	r, g, b, a := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA().RGBA()
	if a != 127*0x101 || r != 127*0x101 || g != 63*0x101 || b != 0 {
		t.Errorf("toRGBA().RGBA() = %d,%d,%d,%d", r, g, b, a)
	}
}

// --- Paint ---

func TestNewPaintDefaults(t *testing.T) {
	p := NewPaint()
	if p.Color != ColorWhite || p.Alpha != 1 || p.Style != StyleFill || p.Blend != BlendNormal {
		t.Errorf("NewPaint = %+v", *p)
	}
}

func TestPaintCopy(t *testing.T) {
	p := &Paint{Alpha: 0.3, StrokeWidth: 2}
	c := p.Copy()
	if c == p || *c != *p {
		t.Error("Copy should return an equal, distinct paint")
	}
	c.Alpha = 1
	if p.Alpha != 0.3 {
		t.Error("mutating the copy changed the original")
	}
	var nilPaint *Paint
	if got := nilPaint.Copy(); *got != *NewPaint() {
		t.Errorf("nil Copy = %+v, want NewPaint()", *got)
	}
}

func TestPaintEffectiveAlpha(t *testing.T) {
	p := &Paint{Color: Color{A: 0.5}, Alpha: 0.5}
	if got := p.EffectiveAlpha(); got != 0.25 {
		t.Errorf("EffectiveAlpha = %v, want 0.25", got)
	}
	p.Alpha = 4
	p.Color.A = 1
	if got := p.EffectiveAlpha(); got != 1 {
		t.Errorf("EffectiveAlpha = %v, want clamped 1", got)
	}
}

func TestPaintDrawOptions(t *testing.T) {
	p := &Paint{Color: ColorWhite, Alpha: 1, Blend: BlendAdd, AntiAlias: true}
	var geoM ebiten.GeoM
	geoM.Translate(3, 4)

	var op ebiten.DrawImageOptions
	p.DrawImageOptions(&op, geoM)
	if op.Blend != ebiten.BlendLighter {
		t.Errorf("Blend = %v, want BlendLighter", op.Blend)
	}
	if op.Filter != ebiten.FilterLinear {
		t.Errorf("Filter = %v, want FilterLinear", op.Filter)
	}
	if x, y := op.GeoM.Apply(0, 0); x != 3 || y != 4 {
		t.Errorf("GeoM origin = (%v, %v), want (3, 4)", x, y)
	}

	var top ebiten.DrawTrianglesOptions
	p.DrawTrianglesOptions(&top)
	if !top.AntiAlias || top.Blend != ebiten.BlendLighter {
		t.Errorf("DrawTrianglesOptions = %+v", top)
	}
}

// --- DrawingContext ---

func TestDrawingContextWithPaint(t *testing.T) {
	base := NewPaint()
	var geoM ebiten.GeoM
	geoM.Scale(2, 2)
	ctx := NewDrawingContext(nil, geoM, base, 0.75)

	other := &Paint{Alpha: 0.1}
	derived := ctx.WithPaint(other)
	if derived.Paint() != other {
		t.Error("WithPaint did not set the paint")
	}
	if ctx.Paint() != base {
		t.Error("WithPaint modified the original context")
	}
	if derived.Opacity() != 0.75 || derived.Surface() != nil || derived.GeoM() != ctx.GeoM() {
		t.Error("WithPaint should inherit every other field")
	}
}

func TestNewDrawingContextNilPaint(t *testing.T) {
	ctx := NewDrawingContext(nil, ebiten.GeoM{}, nil, 1)
	if ctx.Paint() == nil {
		t.Fatal("nil paint should be replaced")
	}
	if *ctx.Paint() != *NewPaint() {
		t.Errorf("Paint = %+v, want NewPaint()", *ctx.Paint())
	}
}
