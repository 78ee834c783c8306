// Package quill is the drawing layer of a retained-mode 2D scene graph for
// [Ebitengine].
//
// A quill tree is built once and drawn every frame. Each node receives an
// immutable [DrawingContext] carrying the ambient paint, opacity, target
// surface and transform, and may hand a [Paint] back to its parent. Paint
// therefore flows down the tree as ambient state and back up as extra
// passes for the parent to draw.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := quill.NewScene()
//	rect, _ := quill.NewDrawingNode(scene.Registry(), quill.Rect(10, 10, 80, 40),
//		false, "rect", quill.Props{"color": "#3d7dd8"})
//	scene.SetRoot(rect)
//	quill.Run(scene, quill.RunConfig{Title: "quill", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Drawing nodes
//
// A [DrawingNode] holds a [DrawFunc] and a property tree ([Props]). On every
// Draw it:
//
//  1. materializes its props once, resolving [Animated] values;
//  2. selects and processes its base paint with its [PaintProcessor];
//  3. draws its children in order with the incoming context, collecting the
//     paints they return;
//  4. calls its DrawFunc once for the base paint and once per collected
//     paint, all with the same materialized props.
//
// A skip-processing node skips steps 2 and 3: its DrawFunc runs once with
// the incoming context and owns any child traversal. [NewGroup] is built
// that way.
//
// [PaintNode] is the leaf that yields a paint upward, for example a stroke
// outline drawn on top of its parent's fill.
//
// # Animation
//
// Props may hold [Shared], [Derived] and [Tween] values. Tweens come from a
// [Clock] (each [Scene] owns one) and use [gween] easing. Nodes register
// their props with a [DependencyTracker]; the scene's [Registry] records
// which nodes were invalidated so [Scene.RedrawOnChange] can skip idle
// frames.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package quill
