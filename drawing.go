package quill

import "fmt"

// DrawFunc renders one pass of a DrawingNode. ctx carries the pass's paint,
// props is the snapshot materialized for the current Draw call (shared by all
// of its passes), and node is the node being drawn. DrawFunc may draw to the
// backend but must not change the node's children.
type DrawFunc func(ctx DrawingContext, props Props, node *DrawingNode) error

// Descriptor exposes a drawing node for inspection tooling. Props is the
// node's unmaterialized property tree.
type Descriptor struct {
	DrawingType string
	Props       Props
}

// Describer is implemented by nodes that expose a Descriptor.
type Describer interface {
	Descriptor() Descriptor
}

// DrawingNode is the node variant that composes paint and runs a draw
// callback once per paint pass.
type DrawingNode struct {
	Tree

	fn             DrawFunc
	skipProcessing bool
	drawingType    string
	props          Props
	pipeline       Pipeline
	tracker        DependencyTracker
	reg            Registration
}

// NewDrawingNode creates a drawing node and registers its props with
// tracker. A registration failure is returned and no node is created.
//
// When skipProcessing is true the node bypasses paint selection, paint
// processing and child traversal: fn runs once per Draw with the incoming
// context and is responsible for any child rendering it wants.
//
// Panics if tracker or fn is nil, or on an invalid child list.
func NewDrawingNode(tracker DependencyTracker, fn DrawFunc, skipProcessing bool, drawingType string, props Props, children ...Node) (*DrawingNode, error) {
	if tracker == nil {
		panic("quill: nil dependency tracker")
	}
	if fn == nil {
		panic("quill: nil draw func")
	}
	if props == nil {
		props = Props{}
	}
	n := &DrawingNode{
		fn:             fn,
		skipProcessing: skipProcessing,
		drawingType:    drawingType,
		props:          props,
		pipeline:       DefaultPipeline(),
		tracker:        tracker,
	}
	n.id = nextNodeID()
	reg, err := tracker.Register(n.id, props)
	if err != nil {
		return nil, fmt.Errorf("new %s node: %w", n.describeType(), err)
	}
	n.reg = reg
	n.setChildren(children)
	return n, nil
}

func (n *DrawingNode) describeType() string {
	if n.drawingType == "" {
		return "drawing"
	}
	return n.drawingType
}

// Descriptor returns the node's type tag and unmaterialized props. It is
// built on every call and does not depend on draw state.
func (n *DrawingNode) Descriptor() Descriptor {
	return Descriptor{DrawingType: n.drawingType, Props: n.props}
}

// DrawingType returns the node's type tag ("" if none was given).
func (n *DrawingNode) DrawingType() string {
	return n.drawingType
}

// SkipProcessing reports whether the node bypasses the standard pipeline.
func (n *DrawingNode) SkipProcessing() bool {
	return n.skipProcessing
}

// Props returns the unmaterialized property tree.
func (n *DrawingNode) Props() Props {
	return n.props
}

// Pipeline returns the materializer and paint processor used by Draw.
func (n *DrawingNode) Pipeline() Pipeline {
	return n.pipeline
}

// SetPipeline replaces the materializer and paint processor. Nil fields keep
// their current value.
func (n *DrawingNode) SetPipeline(p Pipeline) {
	if p.Materializer != nil {
		n.pipeline.Materializer = p.Materializer
	}
	if p.Paint != nil {
		n.pipeline.Paint = p.Paint
	}
}

// SetProps replaces the property tree between frames, re-registering it
// with the node's tracker. On failure the previous props and registration
// stay in effect.
func (n *DrawingNode) SetProps(props Props) error {
	if props == nil {
		props = Props{}
	}
	reg, err := n.tracker.Register(n.id, props)
	if err != nil {
		return fmt.Errorf("set %s props: %w", n.describeType(), err)
	}
	if n.reg != nil {
		n.reg.Release()
	}
	n.reg = reg
	n.props = props
	return nil
}

// SetChildren replaces the child list between frames. Previous children are
// released, not disposed.
func (n *DrawingNode) SetChildren(children ...Node) {
	n.setChildren(children)
}

// Draw materializes the props once, then either hands the context straight
// to the callback (skip-processing nodes) or draws the base pass with the
// selected paint followed by one pass per paint returned by the children,
// in child order. A DrawingNode never returns a paint to its parent.
//
// Errors from the materializer, the paint processor, a child, or the
// callback are returned unchanged and stop any remaining passes.
func (n *DrawingNode) Draw(ctx DrawingContext) (*Paint, error) {
	if globalDebug {
		debugCheckDisposed(&n.Tree, "Draw")
	}
	props, err := n.pipeline.Materializer.Materialize(n.props)
	if err != nil {
		return nil, err
	}

	if n.skipProcessing {
		if err := n.fn(ctx, props, n); err != nil {
			return nil, err
		}
		if globalDebug {
			debugRecordPasses(n, 1)
		}
		return nil, nil
	}

	paint, err := n.pipeline.Paint.SelectPaint(ctx.Paint(), props)
	if err != nil {
		return nil, err
	}
	if err := n.pipeline.Paint.ProcessPaint(paint, ctx.Opacity(), props); err != nil {
		return nil, err
	}

	childPaints, err := n.drawChildren(ctx)
	if err != nil {
		return nil, err
	}

	passes := make([]*Paint, 0, 1+len(childPaints))
	passes = append(passes, paint)
	passes = append(passes, childPaints...)
	for _, p := range passes {
		if err := n.fn(ctx.WithPaint(p), props, n); err != nil {
			return nil, err
		}
	}
	if globalDebug {
		debugRecordPasses(n, len(passes))
	}
	return nil, nil
}

// Dispose releases the node's dependency registration and recursively
// disposes its children.
func (n *DrawingNode) Dispose() {
	if n.disposed {
		return
	}
	if n.reg != nil {
		n.reg.Release()
		n.reg = nil
	}
	n.dispose()
}
