// Package causal renders a scenario's causal dependency graph (spec.md
// §3.4) as Mermaid or ASCII text. Grounded on the teacher's
// pkg/diagram/diagram.go: the Mermaid renderer walks nodes and edges into
// `flowchart TD` syntax, and the ASCII renderer builds uniform-width boxes
// sized with mattn/go-runewidth, the way diagram.go sizes its step boxes —
// adapted here from a linear runbook step chain to a graph with arbitrary
// fan-in.
package causal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/validate"
)

// Format selects the diagram's output syntax.
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatASCII   Format = "ascii"
)

// Generate renders g in the requested format.
func Generate(g *validate.Graph, format Format) (string, error) {
	if g == nil {
		return "", fmt.Errorf("causal: nil graph")
	}
	switch format {
	case FormatMermaid:
		return generateMermaid(g), nil
	case FormatASCII:
		return generateASCII(g), nil
	default:
		return "", fmt.Errorf("causal: unsupported diagram format %q", format)
	}
}

// orderedNodes returns g's nodes in topological order when available,
// falling back to declaration order when a cycle left Order nil — a
// causal-graph diagram is still useful for spotting the cycle visually.
func orderedNodes(g *validate.Graph) []validate.Node {
	byName := make(map[string]validate.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byName[n.Name] = n
	}
	if g.Order == nil {
		return g.Nodes
	}
	out := make([]validate.Node, 0, len(g.Order))
	for _, name := range g.Order {
		if n, ok := byName[name]; ok {
			out = append(out, n)
		}
	}
	return out
}

func generateMermaid(g *validate.Graph) string {
	var b strings.Builder
	b.WriteString("flowchart TD\n")
	for _, n := range orderedNodes(g) {
		b.WriteString("    " + mermaidNodeDef(n) + "\n")
	}
	for _, from := range sortedKeys(g.Edges) {
		for _, to := range g.Edges[from] {
			b.WriteString(fmt.Sprintf("    %s --> %s\n", safeID(from), safeID(to)))
		}
	}
	if len(g.Cycle) > 0 {
		b.WriteString(fmt.Sprintf("    %%%% cycle detected among: %s\n", strings.Join(g.Cycle, ", ")))
	}
	return b.String()
}

func mermaidNodeDef(n validate.Node) string {
	id := safeID(n.Name)
	switch n.Kind {
	case validate.NodeVariable:
		return fmt.Sprintf("%s[%s]", id, n.Name)
	case validate.NodeAssumption:
		return fmt.Sprintf("%s(%s)", id, n.Name)
	case validate.NodeParameter:
		return fmt.Sprintf("%s([%s])", id, n.Name)
	case validate.NodeImpact:
		return fmt.Sprintf("%s{{%s}}", id, n.Name)
	default:
		return fmt.Sprintf("%s[%s]", id, n.Name)
	}
}

func safeID(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '.' || r == ' ' || r == '-' {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- ASCII ---

func generateASCII(g *validate.Graph) string {
	var b strings.Builder
	nodes := orderedNodes(g)
	if len(nodes) == 0 {
		b.WriteString("(empty graph)\n")
		return b.String()
	}

	incoming := incomingEdges(g)
	boxWidth := computeUniformBoxWidth(nodes)
	const indent = 2
	pad := strings.Repeat(" ", indent)

	for _, n := range nodes {
		writeASCIINode(&b, n, pad, boxWidth)
		if deps := incoming[n.Name]; len(deps) > 0 {
			b.WriteString(pad + "  depends on: " + strings.Join(deps, ", ") + "\n")
		}
		b.WriteString("\n")
	}
	if len(g.Cycle) > 0 {
		b.WriteString("cycle detected among: " + strings.Join(g.Cycle, ", ") + "\n")
	}
	return b.String()
}

func incomingEdges(g *validate.Graph) map[string][]string {
	in := make(map[string][]string, len(g.Nodes))
	for _, from := range sortedKeys(g.Edges) {
		for _, to := range g.Edges[from] {
			in[to] = append(in[to], from)
		}
	}
	return in
}

func computeUniformBoxWidth(nodes []validate.Node) int {
	const minWidth = 18
	w := minWidth
	for _, n := range nodes {
		if cw := nodeContentWidth(n); cw > w {
			w = cw
		}
	}
	return w
}

func nodeContentWidth(n validate.Node) int {
	content := fmt.Sprintf(" %s %s ", nodeIcon(n.Kind), n.Name)
	return runewidth.StringWidth(content)
}

func nodeIcon(k validate.NodeKind) string {
	switch k {
	case validate.NodeVariable:
		return "~"
	case validate.NodeAssumption:
		return "?"
	case validate.NodeParameter:
		return "#"
	case validate.NodeImpact:
		return "!"
	default:
		return "o"
	}
}

func writeASCIINode(b *strings.Builder, n validate.Node, pad string, boxWidth int) {
	content := fmt.Sprintf(" %s %s ", nodeIcon(n.Kind), n.Name)
	cw := runewidth.StringWidth(content)
	if cw > boxWidth {
		boxWidth = cw
	}
	top := strings.Repeat("-", boxWidth)
	b.WriteString(pad + "+" + top + "+\n")
	b.WriteString(pad + "|" + content + strings.Repeat(" ", boxWidth-cw) + "|\n")
	b.WriteString(pad + "+" + top + "+\n")
}
