package inspect

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes the node's props in its label.
	// When false, only the type tag and ID are shown.
	Detailed bool
}

// ToDOT converts a descriptor tree to Graphviz DOT format. Edges run from
// parent to child and are ordered by child index. Skip-processing and paint
// nodes are not distinguished here; use Detailed to see their props.
func ToDOT(root Entry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(e Entry)
	walk = func(e Entry) {
		fmt.Fprintf(&buf, "  %q [%s];\n", e.Label(), strings.Join(fmtAttrs(e, opts.Detailed), ", "))
		for i, c := range e.Children {
			edges = append(edges, fmt.Sprintf("  %q -> %q [label=\"%d\"];\n", e.Label(), c.Label(), i))
			walk(c)
		}
	}
	walk(root)

	buf.WriteString("\n")
	for _, edge := range edges {
		buf.WriteString(edge)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(e Entry, detailed bool) []string {
	label := e.Label()
	if detailed {
		if props := FormatProps(e.Props); props != "" {
			label += "\n" + strings.ReplaceAll(props, " ", "\n")
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if e.DrawingType == "paint" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
