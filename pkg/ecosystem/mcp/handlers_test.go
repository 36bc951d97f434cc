package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestHandleParse_MissingSource(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}

	result, err := HandleParse(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("expected error for missing source")
	}
}

func TestHandleValidate_ValidScenario(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"source": `scenario "t" {
  assumption a { value: 1 }
}
`}

	result, err := HandleValidate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Errorf("expected success, got error result: %+v", result)
	}
}

func TestHandleSimulate_RunsOverride(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"source": `scenario "t" {
  assumption a { value: 1 }
}
`,
		"runs": float64(50),
	}

	result, err := HandleSimulate(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Errorf("expected success, got error result: %+v", result)
	}
}

func TestHandleDiagram_DefaultsToMermaid(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"source": `scenario "t" {
  assumption a { value: 1 }
}
`}

	result, err := HandleDiagram(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Errorf("expected success, got error result: %+v", result)
	}
}

func TestHandleSchema_ReturnsContent(t *testing.T) {
	req := mcp.CallToolRequest{}
	result, err := HandleSchema(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError || len(result.Content) == 0 {
		t.Error("expected schema content")
	}
}
