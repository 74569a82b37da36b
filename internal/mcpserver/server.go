// Package mcpserver exposes the URScript analyzer as MCP tools for coding
// agents.
//
// Each tool is a struct holding the analyzer, with Definition() returning
// the mcp.Tool schema and Handle() serving a call. Tools take script text
// as an argument instead of an open document.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
)

// Name and Version identify the MCP server to clients
const (
	Name    = "urscript"
	Version = "0.1.0"
)

// inputName is the buffer name for text passed in a tool call
const inputName = "<input>"

// New creates the MCP server with every URScript tool registered
func New(a *analysis.Analyzer) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	formatTool := NewFormatTool(a)
	s.AddTool(formatTool.Definition(), formatTool.Handle)

	outlineTool := NewOutlineTool(a)
	s.AddTool(outlineTool.Definition(), outlineTool.Handle)

	definitionTool := NewDefinitionTool(a)
	s.AddTool(definitionTool.Definition(), definitionTool.Handle)

	lookupTool := NewLookupTool(a)
	s.AddTool(lookupTool.Definition(), lookupTool.Handle)

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client disconnects
func ServeStdio(a *analysis.Analyzer) error {
	return server.ServeStdio(New(a))
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64)
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// textArg returns the optional "text" argument as a buffer, or nil
func textArg(req mcp.CallToolRequest) *source.Buffer {
	text := req.GetString("text", "")
	if text == "" {
		return nil
	}
	return source.NewBuffer(inputName, text)
}
