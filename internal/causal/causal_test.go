package causal

import (
	"strings"
	"testing"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/validate"
)

func buildGraph() *validate.Graph {
	// Build a validate.Graph literal by hand: a graph with one edge a -> b
	// is enough to exercise both renderers.
	return &validate.Graph{
		Nodes: []validate.Node{
			{Name: "a", Kind: validate.NodeAssumption},
			{Name: "b", Kind: validate.NodeVariable},
		},
		Edges: map[string][]string{"a": {"b"}},
		Order: []string{"a", "b"},
	}
}

func TestGenerateMermaidIncludesNodesAndEdge(t *testing.T) {
	out, err := Generate(buildGraph(), FormatMermaid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "flowchart TD") {
		t.Fatalf("missing flowchart header: %q", out)
	}
	if !strings.Contains(out, "a --> b") {
		t.Fatalf("missing edge a --> b: %q", out)
	}
}

func TestGenerateASCIIIncludesDependency(t *testing.T) {
	out, err := Generate(buildGraph(), FormatASCII)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "depends on: a") {
		t.Fatalf("expected dependency annotation on b's box: %q", out)
	}
}

func TestGenerateRejectsNilGraph(t *testing.T) {
	if _, err := Generate(nil, FormatMermaid); err == nil {
		t.Fatalf("expected an error for a nil graph")
	}
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	if _, err := Generate(buildGraph(), Format("bogus")); err == nil {
		t.Fatalf("expected an error for an unrecognised format")
	}
}
