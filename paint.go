package quill

import "github.com/hajimehoshi/ebiten/v2"

// Paint is the mutable paint state a single pass draws with. The draw
// traversal treats it as an opaque handle: it is selected, processed in
// place, and handed to draw callbacks, but only the PaintProcessor and the
// shape callbacks look inside.
type Paint struct {
	Color       Color
	Alpha       float64 // multiplied into Color.A at submission
	Blend       BlendMode
	Style       PaintStyle
	StrokeWidth float64
	AntiAlias   bool
}

// NewPaint returns an opaque white fill paint with normal blending.
func NewPaint() *Paint {
	return &Paint{
		Color:       ColorWhite,
		Alpha:       1,
		StrokeWidth: 1,
		AntiAlias:   true,
	}
}

// Copy returns an independent copy of p. Copy of a nil paint is a fresh
// default paint.
func (p *Paint) Copy() *Paint {
	if p == nil {
		return NewPaint()
	}
	cp := *p
	return &cp
}

// EffectiveAlpha is the alpha actually submitted: Color.A scaled by Alpha.
func (p *Paint) EffectiveAlpha() float64 {
	return clamp01(p.Color.A * p.Alpha)
}

// ColorScale returns the premultiplied ebiten.ColorScale for this paint.
func (p *Paint) ColorScale() ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := float32(p.EffectiveAlpha())
	cs.Scale(float32(clamp01(p.Color.R))*a, float32(clamp01(p.Color.G))*a, float32(clamp01(p.Color.B))*a, a)
	return cs
}

// DrawImageOptions fills op with the paint's color scale and blend, and the
// given geometry matrix.
func (p *Paint) DrawImageOptions(op *ebiten.DrawImageOptions, geoM ebiten.GeoM) {
	op.GeoM = geoM
	op.ColorScale = p.ColorScale()
	op.Blend = p.Blend.EbitenBlend()
	if p.AntiAlias {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
}

// DrawTrianglesOptions fills op with the paint's blend and antialias settings.
// Vertex colors carry the tint; see applyVertexColor.
func (p *Paint) DrawTrianglesOptions(op *ebiten.DrawTrianglesOptions) {
	op.Blend = p.Blend.EbitenBlend()
	op.AntiAlias = p.AntiAlias
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
}
