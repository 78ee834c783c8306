package quill

import "slices"

// Node is the drawing capability every tree element provides. Draw renders
// the node (and whatever part of its subtree it is responsible for) and may
// hand a paint back to its parent; a nil paint means it has none to offer.
type Node interface {
	Draw(ctx DrawingContext) (*Paint, error)
	Children() []Node
}

// Disposer is implemented by nodes that hold registrations or other
// resources which must be released when the node leaves the tree.
type Disposer interface {
	Dispose()
}

// --- ID counter ---

// nodeIDCounter is a plain counter; node construction is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Tree ---

// Tree is the storage every built-in node embeds: an identity and an
// ordered, exclusively owned child list. The order is fixed when the list is
// set and is never changed by drawing.
type Tree struct {
	id       uint32
	parent   *Tree
	children []Node
	disposed bool
}

// owner is implemented by anything embedding Tree.
type owner interface {
	tree() *Tree
}

func (t *Tree) tree() *Tree { return t }

// setChildren takes ownership of children, releasing the previous list.
// Panics if a child is nil, listed twice, already owned by another node, or
// an ancestor of t.
func (t *Tree) setChildren(children []Node) {
	for i, child := range children {
		if isNil(child) {
			panic("quill: cannot add nil child")
		}
		if slices.Contains(children[:i], child) {
			panic("quill: duplicate child")
		}
		if o, ok := child.(owner); ok {
			ct := o.tree()
			if isAncestor(ct, t) {
				panic("quill: adding child would create a cycle")
			}
			if ct.parent != nil && ct.parent != t {
				panic("quill: child already has a parent")
			}
			if globalDebug {
				debugCheckDisposed(ct, "add child")
			}
		}
	}
	t.releaseChildren()
	for _, child := range children {
		if o, ok := child.(owner); ok {
			o.tree().parent = t
		}
	}
	t.children = append([]Node(nil), children...)
	if globalDebug {
		debugCheckChildCount(t)
	}
}

// releaseChildren gives up ownership of the current children without
// disposing them.
func (t *Tree) releaseChildren() {
	for _, child := range t.children {
		if o, ok := child.(owner); ok {
			o.tree().parent = nil
		}
	}
	t.children = nil
}

// ID returns the node's unique identifier (0 after Dispose).
func (t *Tree) ID() uint32 {
	return t.id
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (t *Tree) Children() []Node {
	return t.children
}

// NumChildren returns the number of children.
func (t *Tree) NumChildren() int {
	return len(t.children)
}

// ChildAt returns the child at the given index.
func (t *Tree) ChildAt(index int) Node {
	return t.children[index]
}

// IsDisposed returns true if this node has been disposed.
func (t *Tree) IsDisposed() bool {
	return t.disposed
}

// drawChildren draws every child in order with the same ctx and collects the
// paints they return, skipping nil ones. The first error aborts the walk and
// is returned unchanged.
func (t *Tree) drawChildren(ctx DrawingContext) ([]*Paint, error) {
	var paints []*Paint
	for _, child := range t.children {
		p, err := child.Draw(ctx)
		if err != nil {
			return nil, err
		}
		if p != nil {
			paints = append(paints, p)
		}
	}
	return paints, nil
}

// dispose marks the node disposed and recursively disposes all children.
func (t *Tree) dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.id = 0
	if p := t.parent; p != nil {
		p.children = slices.DeleteFunc(slices.Clone(p.children), func(c Node) bool {
			o, ok := c.(owner)
			return ok && o.tree() == t
		})
		t.parent = nil
	}
	for _, child := range t.children {
		if o, ok := child.(owner); ok {
			o.tree().parent = nil
		}
		if d, ok := child.(Disposer); ok {
			d.Dispose()
		}
	}
	t.children = nil
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Tree) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
