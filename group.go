package quill

// NewGroup creates a compositing container. The group selects and processes
// its own paint from props (color, opacity, blendMode, ...) and draws its
// children with that paint as their ambient paint, so a group opacity of 0.5
// halves every descendant. Paints yielded by the children are ignored; a
// group never yields one either.
//
// A group is a skip-processing DrawingNode: the standard pipeline is bypassed
// and groupDraw does the traversal itself.
func NewGroup(tracker DependencyTracker, props Props, children ...Node) (*DrawingNode, error) {
	return NewDrawingNode(tracker, groupDraw, true, "group", props, children...)
}

func groupDraw(ctx DrawingContext, props Props, node *DrawingNode) error {
	pipeline := node.Pipeline()
	paint, err := pipeline.Paint.SelectPaint(ctx.Paint(), props)
	if err != nil {
		return err
	}
	// Ambient opacity is left to the children's own processing so it is
	// applied once.
	if err := pipeline.Paint.ProcessPaint(paint, 1, props); err != nil {
		return err
	}
	_, err = node.drawChildren(ctx.WithPaint(paint))
	return err
}
