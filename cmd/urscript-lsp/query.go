package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/urscript-lsp/internal/format"
	"github.com/jarredhawkins/urscript-lsp/internal/source"
	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format <file>",
	Short: "Format a URScript file",
	Long: `Reformat a URScript file and print the result.

Use --range to format only some lines (1-based, inclusive, e.g. --range 10:20)
and --write to rewrite the file in place. With --json the edits are printed
instead of the text.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openAnalyzer()
		buf := readBuffer(args[0])

		opts := a.FormatOptions()
		if cmd.Flags().Changed("tab-size") {
			opts.TabSize, _ = cmd.Flags().GetInt("tab-size")
			opts.InsertSpaces = true
		}

		start, end := 0, buf.Len()-1
		if r, _ := cmd.Flags().GetString("range"); r != "" {
			var err error
			start, end, err = parseRange(r)
			if err != nil {
				exitError("%v", err)
			}
		}

		edits := a.FormatRange(buf, start, end, opts)
		text := strings.Join(format.ApplyEdits(buf.Lines(), edits), "\n")

		if write, _ := cmd.Flags().GetBool("write"); write {
			if len(edits) == 0 {
				return
			}
			if err := os.WriteFile(args[0], []byte(text), 0644); err != nil {
				exitError("failed to write %s: %v", args[0], err)
			}
			return
		}

		output(edits, func() {
			fmt.Print(text)
		})
	},
}

// parseRange converts a 1-based N:M line range to 0-based line numbers
func parseRange(r string) (int, int, error) {
	parts := strings.Split(r, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range format, use N:M (e.g., 10:20)")
	}
	start, err1 := strconv.Atoi(parts[0])
	end, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid line numbers %q", r)
	}
	return start - 1, end - 1, nil
}

// symbolsCmd represents the symbols command
var symbolsCmd = &cobra.Command{
	Use:   "symbols <file>",
	Short: "List the functions and threads of a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openAnalyzer()
		entries := a.Outline(readBuffer(args[0]))

		output(entries, func() {
			for _, e := range entries {
				fmt.Printf("%5d  %-8s %s\n", e.Line+1, e.Kind, e.Detail)
			}
		})
	},
}

// defineCmd represents the define command
var defineCmd = &cobra.Command{
	Use:   "define <name>",
	Short: "Find where a function, global or variable is declared",
	Long: `Find the declaration of a name. With --file, that file is searched first and
the workspace only when it has no match, as an editor would.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openAnalyzer()

		var doc *source.Buffer
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			doc = readBuffer(file)
		}

		locs := a.DefinitionsOf(doc, args[0])
		if locs == nil {
			locs = []types.Location{}
		}

		output(locs, func() {
			if len(locs) == 0 {
				fmt.Printf("No declaration of %s found\n", args[0])
				return
			}
			for _, loc := range locs {
				fmt.Printf("%s:%d:%d\n", relPath(loc.Path), loc.Line+1, loc.Column+1)
			}
		})
	},
}

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc <name>",
	Short: "Show the documentation of a built-in or workspace name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openAnalyzer()
		name := args[0]

		if h := a.HoverName(nil, name); h != nil {
			output(h, func() {
				fmt.Println(h.Markdown())
			})
			return
		}

		suggestions := a.Catalog().Suggest(name, 5)
		if jsonOutput {
			_ = outputJSON(map[string]interface{}{"error": "not found", "suggestions": suggestions})
			os.Exit(1)
		}
		if len(suggestions) > 0 {
			exitError("no documentation for %s, did you mean: %s", name, strings.Join(suggestions, ", "))
		}
		exitError("no documentation for %s", name)
	},
}

// readBuffer reads a whole file into a buffer
func readBuffer(path string) *source.Buffer {
	content, err := os.ReadFile(path)
	if err != nil {
		exitError("failed to read %s: %v", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return source.NewBuffer(abs, string(content))
}

// relPath shortens paths under the workspace root
func relPath(path string) string {
	rel, err := filepath.Rel(rootPath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(docCmd)

	formatCmd.Flags().String("range", "", "Line range to format (N:M)")
	formatCmd.Flags().Int("tab-size", format.DefaultTabSize, "Spaces per indent level (overrides config)")
	formatCmd.Flags().Bool("write", false, "Rewrite the file in place")

	defineCmd.Flags().String("file", "", "File being edited, searched before the workspace")
}
