package quill

import "github.com/hajimehoshi/ebiten/v2"

// DrawingContext is the ambient rendering state handed down the tree. It is
// a value: nodes never mutate it, they derive overrides with WithPaint.
type DrawingContext struct {
	paint   *Paint
	opacity float64
	surface *ebiten.Image
	geoM    ebiten.GeoM
}

// NewDrawingContext creates a root context. A nil paint is replaced by
// NewPaint(). surface may be nil for headless traversal; the zero GeoM is
// the identity.
func NewDrawingContext(surface *ebiten.Image, geoM ebiten.GeoM, paint *Paint, opacity float64) DrawingContext {
	if paint == nil {
		paint = NewPaint()
	}
	return DrawingContext{paint: paint, opacity: opacity, surface: surface, geoM: geoM}
}

// Paint returns the ambient paint.
func (c DrawingContext) Paint() *Paint { return c.paint }

// Opacity returns the ambient opacity in [0, 1].
func (c DrawingContext) Opacity() float64 { return c.opacity }

// Surface returns the target image, or nil when drawing headless.
func (c DrawingContext) Surface() *ebiten.Image { return c.surface }

// GeoM returns the ambient transform applied by shape callbacks.
func (c DrawingContext) GeoM() ebiten.GeoM { return c.geoM }

// WithPaint returns a copy of c whose paint is p. Every other field is
// inherited unchanged.
func (c DrawingContext) WithPaint(p *Paint) DrawingContext {
	c.paint = p
	return c
}
