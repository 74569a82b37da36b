package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
)

// OutlineTool handles the urscript_outline MCP tool.
type OutlineTool struct {
	analyzer *analysis.Analyzer
}

// NewOutlineTool creates an OutlineTool.
func NewOutlineTool(a *analysis.Analyzer) *OutlineTool {
	return &OutlineTool{analyzer: a}
}

// Definition returns the MCP tool definition for urscript_outline.
func (t *OutlineTool) Definition() mcp.Tool {
	return mcp.NewTool("urscript_outline",
		mcp.WithDescription("List the functions and threads declared in URScript source, with their line numbers."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("URScript source to outline"),
		),
	)
}

// Handle processes the urscript_outline tool call.
func (t *OutlineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	entries := t.analyzer.Outline(source.NewBuffer(inputName, text))
	if len(entries) == 0 {
		return mcp.NewToolResultText("No functions or threads declared."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d declarations:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s `%s` (line %d)\n", e.Kind, e.Detail, e.Line+1)
	}
	return mcp.NewToolResultText(b.String()), nil
}
