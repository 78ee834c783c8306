package quill

import "fmt"

// PaintNode declares an extra paint for its parent. Placed as a child of a
// DrawingNode it makes the parent draw one more pass with the declared paint,
// e.g. a stroke outline on top of a fill:
//
//	stroke, _ := quill.NewPaintNode(tracker, quill.Props{
//		"style": "stroke", "strokeWidth": 3, "color": "#ffffff",
//	})
//	rect, _ := quill.NewDrawingNode(tracker, quill.Rect(0, 0, 80, 40), false, "rect", nil, stroke)
//
// The declared fields override a copy of the ambient paint, and opacity
// multiplies with the ambient opacity, using the node's PaintProcessor.
type PaintNode struct {
	Tree

	props    Props
	pipeline Pipeline
	reg      Registration
}

// NewPaintNode creates a paint node and registers its props with tracker.
// Panics if tracker is nil.
func NewPaintNode(tracker DependencyTracker, props Props) (*PaintNode, error) {
	if tracker == nil {
		panic("quill: nil dependency tracker")
	}
	if props == nil {
		props = Props{}
	}
	n := &PaintNode{props: props, pipeline: DefaultPipeline()}
	n.id = nextNodeID()
	reg, err := tracker.Register(n.id, props)
	if err != nil {
		return nil, fmt.Errorf("new paint node: %w", err)
	}
	n.reg = reg
	return n, nil
}

// Descriptor returns the "paint" type tag and the unmaterialized props.
func (n *PaintNode) Descriptor() Descriptor {
	return Descriptor{DrawingType: "paint", Props: n.props}
}

// SetPipeline replaces the materializer and paint processor. Nil fields keep
// their current value.
func (n *PaintNode) SetPipeline(p Pipeline) {
	if p.Materializer != nil {
		n.pipeline.Materializer = p.Materializer
	}
	if p.Paint != nil {
		n.pipeline.Paint = p.Paint
	}
}

// Draw draws nothing; it returns the declared paint for the parent's pass
// list.
func (n *PaintNode) Draw(ctx DrawingContext) (*Paint, error) {
	if globalDebug {
		debugCheckDisposed(&n.Tree, "Draw")
	}
	props, err := n.pipeline.Materializer.Materialize(n.props)
	if err != nil {
		return nil, err
	}
	p, err := n.pipeline.Paint.SelectPaint(ctx.Paint(), props)
	if err != nil {
		return nil, err
	}
	if err := n.pipeline.Paint.ProcessPaint(p, ctx.Opacity(), props); err != nil {
		return nil, err
	}
	return p, nil
}

// Dispose releases the node's dependency registration.
func (n *PaintNode) Dispose() {
	if n.disposed {
		return
	}
	if n.reg != nil {
		n.reg.Release()
		n.reg = nil
	}
	n.dispose()
}
