package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/internal/diag"
	"github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/sdl"
)

// HandleParse implements the sdl/parse MCP tool.
func HandleParse(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, _ := args["source"].(string)
	if source == "" {
		return errorResult("source argument is required"), nil
	}

	scenario, diags := sdl.Parse(source)
	if hasErrors(diags) {
		return errorResult(formatDiagnostics(diags)), nil
	}
	return textResult(fmt.Sprintf("✓ parsed scenario %q (%d declarations)", scenario.Name, len(scenario.Declarations))), nil
}

// HandleValidate implements the sdl/validate MCP tool.
func HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, _ := args["source"].(string)
	if source == "" {
		return errorResult("source argument is required"), nil
	}

	scenario, diags := sdl.Parse(source)
	if hasErrors(diags) {
		return errorResult(formatDiagnostics(diags)), nil
	}

	result := sdl.Validate(scenario)
	if !result.Valid {
		return errorResult(formatDiagnostics(result.Diagnostics)), nil
	}
	return textResult(fmt.Sprintf("✓ %q is valid (%d symbols, %d warnings)", scenario.Name, len(result.Symbols), len(result.Diagnostics))), nil
}

// HandleSimulate implements the sdl/simulate MCP tool.
func HandleSimulate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, _ := args["source"].(string)
	if source == "" {
		return errorResult("source argument is required"), nil
	}

	scenario, diags := sdl.Parse(source)
	if hasErrors(diags) {
		return errorResult(formatDiagnostics(diags)), nil
	}

	cfg := &sdl.SimulateConfig{}
	if runs, ok := args["runs"].(float64); ok && runs > 0 {
		n := int(runs)
		cfg.Runs = &n
	}
	if seed, ok := args["seed"].(float64); ok {
		s := int64(seed)
		cfg.Seed = &s
	}

	out, simDiags, err := sdl.Simulate(scenario, cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("simulate: %s (%s)", err, formatDiagnostics(simDiags))), nil
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return textResult(string(data)), nil
}

// HandleDiagram implements the sdl/diagram MCP tool.
func HandleDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, _ := args["source"].(string)
	if source == "" {
		return errorResult("source argument is required"), nil
	}
	format := sdl.DiagramMermaid
	if f, _ := args["format"].(string); f == "ascii" {
		format = sdl.DiagramASCII
	}

	scenario, diags := sdl.Parse(source)
	if hasErrors(diags) {
		return errorResult(formatDiagnostics(diags)), nil
	}

	out, err := sdl.Diagram(scenario, format)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(out), nil
}

// HandleSchema implements the sdl/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := sdl.GenerateConfigJSONSchema()
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

func formatDiagnostics(diags []diag.Diagnostic) string {
	var msgs []string
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			msgs = append(msgs, d.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
