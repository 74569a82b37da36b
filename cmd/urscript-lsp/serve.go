package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/lsp"
	"github.com/jarredhawkins/urscript-lsp/internal/mcpserver"
	"github.com/jarredhawkins/urscript-lsp/internal/watcher"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdin/stdout",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server on stdin/stdout",
	Long: `Expose URScript formatting, outline, definition lookup and documentation
as MCP tools (urscript_format, urscript_outline, urscript_definition,
urscript_lookup) for coding agents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("urscript mcp starting, root=%s", rootPath)

		a := openAnalyzer()
		stop := watchSettings(a)
		defer stop()

		return mcpserver.ServeStdio(a)
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Printf("urscript-lsp starting, root=%s", rootPath)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a := openAnalyzer()
	stop := watchSettings(a)
	defer stop()

	server := lsp.NewServer(a)
	err := server.Serve(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		log.Printf("LSP server error: %v", err)
		return err
	}

	log.Println("urscript-lsp shutdown complete")
	return nil
}

// watchSettings reloads the analyzer when the config or a catalog file
// changes. The returned func stops watching.
func watchSettings(a *analysis.Analyzer) func() {
	var w *watcher.Watcher
	var err error
	w, err = watcher.New(func(changed, removed []string) {
		if err := a.ReloadSettings(); err != nil {
			log.Printf("failed to reload settings: %v", err)
			return
		}
		log.Printf("settings reloaded")
		w.Track(a.SettingsFiles()...)
	})
	if err != nil {
		log.Printf("failed to create watcher, settings will not reload: %v", err)
		return func() {}
	}

	w.Track(a.SettingsFiles()...)
	w.Start()
	return func() { _ = w.Close() }
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}
