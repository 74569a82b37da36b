package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jarredhawkins/urscript-lsp/internal/analysis"
	"github.com/jarredhawkins/urscript-lsp/internal/lsp"
)

var (
	// Global flags
	rootPath   string
	logFile    string
	debug      bool
	jsonOutput bool

	logCloser *os.File
)

// rootCmd serves LSP on stdio when run without a subcommand
var rootCmd = &cobra.Command{
	Use:   "urscript-lsp",
	Short: "Language server and tooling for Universal Robots URScript",
	Long: `urscript-lsp provides editor support for URScript programs:
completion, hover, signature help, go to definition, outline and formatting.

Run without a subcommand (or with 'serve') to speak LSP on stdin/stdout.
'mcp' exposes the same analysis as MCP tools for coding agents, and the
remaining subcommands answer one query from the command line.

Settings are read from .urscript-lsp.yaml in the workspace root and from
URSCRIPT_LSP_* environment variables (a .env file in the root is honored).`,
	Version:           lsp.ServerVersion,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE: runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", "", "Workspace root (defaults to current directory)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// setup resolves the workspace root and configures logging
func setup(cmd *cobra.Command, args []string) error {
	if rootPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		rootPath = wd
	}
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return fmt.Errorf("invalid root %s: %w", rootPath, err)
	}
	rootPath = abs

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(f)
		logCloser = f
	}
	if debug {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}
	return nil
}

// openAnalyzer loads workspace settings for rootPath
func openAnalyzer() *analysis.Analyzer {
	a, err := analysis.Open(rootPath)
	if err != nil {
		exitError("%v", err)
	}
	return a
}

// outputJSON outputs data as JSON
func outputJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// output prints data as JSON under --json, otherwise runs text
func output(data interface{}, text func()) {
	if jsonOutput {
		if err := outputJSON(data); err != nil {
			exitError("failed to encode JSON: %v", err)
		}
		return
	}
	text()
}

// exitError prints an error message and exits
func exitError(format string, args ...interface{}) {
	if jsonOutput {
		_ = outputJSON(map[string]string{"error": fmt.Sprintf(format, args...)})
	} else {
		fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	}
	os.Exit(1)
}
