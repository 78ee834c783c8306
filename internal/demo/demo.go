// Package demo builds the sample scene shown by "quill run" and "quill
// inspect" when no other tree is available.
package demo

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/quill"
)

// Handles exposes the animated values driving the demo so callers can poke
// at them.
type Handles struct {
	Slide  *quill.Tween
	Pulse  *quill.Tween
	Accent *quill.Shared
	Fill   *quill.Derived
}

// Options toggles optional parts of the demo.
type Options struct {
	// FPS adds an FPS/TPS readout in the top-left corner.
	FPS bool
}

// Build creates the demo tree against the scene's clock and registry and
// installs it as the scene root.
//
// The tree is a group fading in and out, holding a sliding rectangle with a
// stroke outline, a circle whose fill follows the slide, and a triangle
// drawn in the shared accent color.
func Build(scene *quill.Scene, opts Options) (*Handles, error) {
	reg := scene.Registry()
	h := &Handles{
		Slide:  scene.Clock().Tween(40, 360, 2, ease.InOutQuad).SetLoop(quill.LoopPingPong),
		Pulse:  scene.Clock().Tween(1, 0.4, 1.5, ease.InOutSine).SetLoop(quill.LoopPingPong),
		Accent: quill.NewShared("#f2c14e"),
	}
	h.Fill = quill.NewDerived(func() (any, error) {
		t := (h.Slide.Value() - 40) / 320
		return quill.Color{R: 0.3 + 0.6*t, G: 0.5, B: 0.9 - 0.6*t, A: 1}, nil
	}, h.Slide)

	outline, err := quill.NewPaintNode(reg, quill.Props{
		quill.PropStyle:       "stroke",
		quill.PropStrokeWidth: 3.0,
		quill.PropColor:       h.Accent,
	})
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	rect, err := quill.NewDrawingNode(reg, quill.Rect(0, 60, 120, 80), false, "rect", quill.Props{
		quill.PropX:     h.Slide,
		quill.PropColor: "#3d7dd8",
	}, outline)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	circle, err := quill.NewDrawingNode(reg, quill.Circle(320, 300, 60, 0), false, "circle", quill.Props{
		quill.PropColor:     h.Fill,
		quill.PropAntiAlias: true,
	})
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	triangle, err := quill.NewDrawingNode(reg, quill.Polygon([]quill.Vec2{
		{X: 480, Y: 420}, {X: 600, Y: 420}, {X: 540, Y: 320},
	}), false, "polygon", quill.Props{
		quill.PropColor:     h.Accent,
		quill.PropBlendMode: "add",
	})
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	shapes, err := quill.NewGroup(reg, quill.Props{quill.PropOpacity: h.Pulse}, rect, circle, triangle)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	if !opts.FPS {
		scene.SetRoot(shapes)
		return h, nil
	}
	fps, err := quill.NewFPSNode(reg, scene.Clock(), 4, 4)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	root, err := quill.NewGroup(reg, nil, shapes, fps)
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	scene.SetRoot(root)
	return h, nil
}
