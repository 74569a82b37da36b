package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/format"
)

// FormatTool handles the urscript_format MCP tool.
type FormatTool struct {
	analyzer *analysis.Analyzer
}

// NewFormatTool creates a FormatTool.
func NewFormatTool(a *analysis.Analyzer) *FormatTool {
	return &FormatTool{analyzer: a}
}

// Definition returns the MCP tool definition for urscript_format.
func (t *FormatTool) Definition() mcp.Tool {
	return mcp.NewTool("urscript_format",
		mcp.WithDescription(
			"Reformat URScript source: normalizes spacing around operators, commas and brackets "+
				"and re-indents def/thread/if/while/for blocks. Returns the formatted text.",
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("URScript source to format"),
		),
		mcp.WithNumber("tab_size",
			mcp.Description("Spaces per indent level (default: workspace setting, usually 2)"),
		),
	)
}

// Handle processes the urscript_format tool call.
func (t *FormatTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("'text' is required"), nil
	}

	opts := t.analyzer.FormatOptions()
	if n := intArg(req, "tab_size", 0); n > 0 {
		opts = format.Options{TabSize: n, InsertSpaces: true}
	}
	return mcp.NewToolResultText(format.FormatText(text, opts)), nil
}
