// Package mcp exposes SDL's public operations (pkg/sdl) as an MCP tool
// server, grounded on the teacher's pkg/ecosystem/mcp which does the same
// for gert's runbook operations.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with SDL's tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"sdl",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("sdl/parse",
			mcp.WithDescription("Parse SDL scenario source and report diagnostics"),
			mcp.WithString("source", mcp.Required(), mcp.Description("SDL scenario source text")),
		),
		HandleParse,
	)

	s.AddTool(
		mcp.NewTool("sdl/validate",
			mcp.WithDescription("Validate an SDL scenario (symbol resolution, cyclic dependency check, type checks)"),
			mcp.WithString("source", mcp.Required(), mcp.Description("SDL scenario source text")),
		),
		HandleValidate,
	)

	s.AddTool(
		mcp.NewTool("sdl/simulate",
			mcp.WithDescription("Run a Monte Carlo simulation over an SDL scenario"),
			mcp.WithString("source", mcp.Required(), mcp.Description("SDL scenario source text")),
			mcp.WithNumber("runs", mcp.Description("Number of simulation runs (defaults to the scenario's own simulate block, or 1000)")),
			mcp.WithNumber("seed", mcp.Description("Deterministic RNG seed (defaults to a time-derived seed)")),
		),
		HandleSimulate,
	)

	s.AddTool(
		mcp.NewTool("sdl/diagram",
			mcp.WithDescription("Render an SDL scenario's causal dependency graph"),
			mcp.WithString("source", mcp.Required(), mcp.Description("SDL scenario source text")),
			mcp.WithString("format", mcp.Description("Diagram format: 'mermaid' or 'ascii' (default mermaid)")),
		),
		HandleDiagram,
	)

	s.AddTool(
		mcp.NewTool("sdl/schema",
			mcp.WithDescription("Export the JSON Schema for SDL's simulate-config override document"),
		),
		HandleSchema,
	)

	return s
}
