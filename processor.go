package quill

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// PaintProcessor picks the paint a node draws its base pass with, and
// applies opacity and blend adjustments to it.
type PaintProcessor interface {
	// SelectPaint combines the ambient paint with any paint declared by the
	// materialized props. Precedence between the two is the processor's call.
	// The returned paint is the one ProcessPaint will mutate, so it must not
	// alias the ambient paint.
	SelectPaint(ambient *Paint, props Props) (*Paint, error)
	// ProcessPaint mutates p in place, scaling it by the ambient opacity and
	// the props' own opacity and blend mode.
	ProcessPaint(p *Paint, opacity float64, props Props) error
}

// Pipeline bundles the collaborators a node uses to draw.
type Pipeline struct {
	Materializer Materializer
	Paint        PaintProcessor
}

// DefaultPipeline returns the DefaultMaterializer and DefaultPaintProcessor.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Materializer: DefaultMaterializer{},
		Paint:        DefaultPaintProcessor{},
	}
}

// Prop keys understood by DefaultPaintProcessor.
const (
	PropPaint       = "paint"       // *Paint, replaces the ambient paint entirely
	PropColor       = "color"       // Color or "#rrggbb" hex string
	PropStyle       = "style"       // PaintStyle or "fill" / "stroke"
	PropStrokeWidth = "strokeWidth" // number
	PropAntiAlias   = "antiAlias"   // bool
	PropOpacity     = "opacity"     // number in [0, 1]
	PropBlendMode   = "blendMode"   // BlendMode or its name
)

// DefaultPaintProcessor implements the paint precedence used by the
// built-in node variants: a declared *Paint wins over the ambient paint,
// declared color/style/strokeWidth/antiAlias fields override a copy of the
// ambient, and opacity multiplies down the tree.
type DefaultPaintProcessor struct{}

// SelectPaint implements PaintProcessor. It always returns a copy so the
// ambient paint and any *Paint held in props stay untouched by processing.
func (DefaultPaintProcessor) SelectPaint(ambient *Paint, props Props) (*Paint, error) {
	base := ambient
	if raw, ok := props[PropPaint]; ok {
		declared, ok := raw.(*Paint)
		if !ok || declared == nil {
			return nil, &PropError{Path: PropPaint, Err: fmt.Errorf("%w: %T is not a *Paint", ErrInvalidProp, raw)}
		}
		base = declared
	}
	p := base.Copy()

	if raw, ok := props[PropColor]; ok {
		c, err := parseColor(raw)
		if err != nil {
			return nil, &PropError{Path: PropColor, Err: err}
		}
		p.Color = c
	}
	if raw, ok := props[PropStyle]; ok {
		s, err := parseStyle(raw)
		if err != nil {
			return nil, &PropError{Path: PropStyle, Err: err}
		}
		p.Style = s
	}
	if w, ok, err := props.Float(PropStrokeWidth); err != nil {
		return nil, err
	} else if ok {
		p.StrokeWidth = w
	}
	if raw, ok := props[PropAntiAlias]; ok {
		aa, isBool := raw.(bool)
		if !isBool {
			return nil, &PropError{Path: PropAntiAlias, Err: fmt.Errorf("%w: %T is not a bool", ErrInvalidProp, raw)}
		}
		p.AntiAlias = aa
	}
	return p, nil
}

// ProcessPaint implements PaintProcessor.
func (DefaultPaintProcessor) ProcessPaint(p *Paint, opacity float64, props Props) error {
	alpha := p.Alpha * clamp01(opacity)
	if own, ok, err := props.Float(PropOpacity); err != nil {
		return err
	} else if ok {
		alpha *= clamp01(own)
	}
	p.Alpha = alpha

	if raw, ok := props[PropBlendMode]; ok {
		b, err := parseBlendMode(raw)
		if err != nil {
			return &PropError{Path: PropBlendMode, Err: err}
		}
		p.Blend = b
	}
	return nil
}

func parseColor(raw any) (Color, error) {
	switch v := raw.(type) {
	case Color:
		return v, nil
	case string:
		c, err := colorful.Hex(v)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %v", ErrInvalidProp, err)
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
	default:
		return Color{}, fmt.Errorf("%w: %T is not a color", ErrInvalidProp, raw)
	}
}

func parseStyle(raw any) (PaintStyle, error) {
	switch v := raw.(type) {
	case PaintStyle:
		return v, nil
	case string:
		switch v {
		case "fill":
			return StyleFill, nil
		case "stroke":
			return StyleStroke, nil
		}
		return StyleFill, fmt.Errorf("%w: unknown style %q", ErrInvalidProp, v)
	default:
		return StyleFill, fmt.Errorf("%w: %T is not a style", ErrInvalidProp, raw)
	}
}

func parseBlendMode(raw any) (BlendMode, error) {
	switch v := raw.(type) {
	case BlendMode:
		return v, nil
	case string:
		b, ok := ParseBlendMode(v)
		if !ok {
			return BlendNormal, fmt.Errorf("%w: unknown blend mode %q", ErrInvalidProp, v)
		}
		return b, nil
	default:
		return BlendNormal, fmt.Errorf("%w: %T is not a blend mode", ErrInvalidProp, raw)
	}
}
