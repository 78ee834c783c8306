// Package inspect builds read-only views of a quill node tree for debugging
// tools: a descriptor tree, a Graphviz DOT rendering of it, and SVG output.
//
// Everything here reads node descriptors only. Nothing is materialized and
// nothing is drawn, so inspecting a tree never advances or samples
// animations beyond what an Animated value's String method reports.
package inspect

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/phanxgames/quill"
)

// Entry is one node of a descriptor tree.
type Entry struct {
	ID          uint32
	DrawingType string
	Props       quill.Props
	Children    []Entry
}

// Describe walks n and its descendants in child order. Nodes without a
// descriptor are reported with their Go type as DrawingType.
func Describe(n quill.Node) Entry {
	var e Entry
	if id, ok := n.(interface{ ID() uint32 }); ok {
		e.ID = id.ID()
	}
	if d, ok := n.(quill.Describer); ok {
		desc := d.Descriptor()
		e.DrawingType = desc.DrawingType
		e.Props = desc.Props
	} else {
		e.DrawingType = fmt.Sprintf("%T", n)
	}
	for _, child := range n.Children() {
		e.Children = append(e.Children, Describe(child))
	}
	return e
}

// Label returns "type#id", or "node#id" for an untagged node.
func (e Entry) Label() string {
	t := e.DrawingType
	if t == "" {
		t = "node"
	}
	return fmt.Sprintf("%s#%d", t, e.ID)
}

// Count returns the number of entries in the subtree rooted at e.
func (e Entry) Count() int {
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// FormatProps renders props as "key=value" pairs in sorted key order.
// Animated values print through their String method when they have one.
func FormatProps(p quill.Props) string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p))
	for _, k := range slices.Sorted(maps.Keys(p)) {
		parts = append(parts, k+"="+FormatValue(p[k]))
	}
	return strings.Join(parts, " ")
}

// FormatValue renders a single prop value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case quill.Props:
		return "{" + FormatProps(t) + "}"
	case map[string]any:
		return "{" + FormatProps(quill.Props(t)) + "}"
	case []any:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = FormatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case *quill.Paint:
		if t == nil {
			return "paint(nil)"
		}
		return fmt.Sprintf("paint(%s %s a=%.2f)", t.Style, t.Blend, t.Alpha)
	case quill.Color:
		return fmt.Sprintf("rgba(%.2f, %.2f, %.2f, %.2f)", t.R, t.G, t.B, t.A)
	case fmt.Stringer:
		return t.String()
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
