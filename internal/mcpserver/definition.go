package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
)

// DefinitionTool handles the urscript_definition MCP tool.
type DefinitionTool struct {
	analyzer *analysis.Analyzer
}

// NewDefinitionTool creates a DefinitionTool.
func NewDefinitionTool(a *analysis.Analyzer) *DefinitionTool {
	return &DefinitionTool{analyzer: a}
}

// Definition returns the MCP tool definition for urscript_definition.
func (t *DefinitionTool) Definition() mcp.Tool {
	return mcp.NewTool("urscript_definition",
		mcp.WithDescription(
			"Find where a URScript function, thread, global or installation variable is declared. "+
				"Searches the given text first, then every script and variables file in the workspace.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Identifier to look up"),
		),
		mcp.WithString("text",
			mcp.Description("Source of the script being edited, searched before the workspace"),
		),
	)
}

// Handle processes the urscript_definition tool call.
func (t *DefinitionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	locs := t.analyzer.DefinitionsOf(textArg(req), name)
	if len(locs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No declaration of %q found.", name)), nil
	}

	root := t.analyzer.Root()
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d declarations of %q:\n\n", len(locs), name)
	for _, loc := range locs {
		path := loc.Path
		if rel, err := filepath.Rel(root, path); err == nil && root != "" && !strings.HasPrefix(rel, "..") {
			path = rel
		}
		fmt.Fprintf(&b, "- %s:%d:%d\n", path, loc.Line+1, loc.Column+1)
	}
	return mcp.NewToolResultText(b.String()), nil
}
