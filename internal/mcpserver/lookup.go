package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 5

// LookupTool handles the urscript_lookup MCP tool.
type LookupTool struct {
	analyzer *analysis.Analyzer
}

// NewLookupTool creates a LookupTool.
func NewLookupTool(a *analysis.Analyzer) *LookupTool {
	return &LookupTool{analyzer: a}
}

// Definition returns the MCP tool definition for urscript_lookup.
func (t *LookupTool) Definition() mcp.Tool {
	return mcp.NewTool("urscript_lookup",
		mcp.WithDescription(
			"Show the documentation of a URScript built-in or user-defined function, global or variable: "+
				"signature, parameters, return value. Suggests similar built-in names when nothing matches.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Identifier to document, e.g. movej"),
		),
		mcp.WithString("text",
			mcp.Description("Source of the script being edited, searched before the workspace"),
		),
	)
}

// Handle processes the urscript_lookup tool call.
func (t *LookupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	if h := t.analyzer.HoverName(textArg(req), name); h != nil {
		return mcp.NewToolResultText(h.Markdown()), nil
	}

	suggestions := t.analyzer.Catalog().Suggest(name, maxSuggestions)
	if len(suggestions) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No documentation found for %q.", name)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("No documentation found for %q. Did you mean: %s?",
		name, strings.Join(suggestions, ", "))), nil
}
