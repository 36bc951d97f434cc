// Package main provides the sdl-mcp binary — an MCP server exposing SDL's
// parse/validate/simulate/diagram operations to AI agents.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	sdlmcp "github.com/Relatronica/SDL-Scenario-Description-Language-sub001/pkg/ecosystem/mcp"
)

var version = "dev"

func main() {
	s := sdlmcp.NewServer(version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
