package graph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// fillColors distinguishes node types in rendered output.
var fillColors = map[string]string{
	NodeItem:    "lightyellow",
	NodeUpgrade: "lightblue",
	NodeGacha:   "plum",
	NodeCompany: "lightgreen",
	NodeEvent:   "lightsalmon",
}

// edgeStyles maps edge types to DOT edge attributes.
var edgeStyles = map[string]string{
	EdgeUnlock:       "color=darkgreen",
	EdgePrerequisite: "color=gray40, style=dashed",
	EdgeMaterial:     "color=steelblue",
	EdgeContains:     "color=purple",
	EdgeReward:       "color=orangered",
}

// ToDOT converts a dependency graph to Graphviz DOT format. The
// resulting DOT string can be rendered with [RenderSVG] or any external
// Graphviz toolchain.
func ToDOT(g Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.Label)}
		if color, ok := fillColors[n.Type]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%s", color))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{fmt.Sprintf("label=%q", e.Type)}
		if style, ok := edgeStyles[e.Type]; ok {
			attrs = append(attrs, style)
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
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
