package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/scout/internal/config"
	"github.com/hpungsan/scout/internal/mcp"
	"github.com/hpungsan/scout/internal/ops"
	"github.com/hpungsan/scout/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"init": true, "continue": true, "list": true, "log": true,
	"sync": true, "archive": true, "report": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// detectEnvironment identifies the executing environment from ambient
// process variables: an IDE terminal, a hosted web session, or plain CLI.
func detectEnvironment() string {
	if os.Getenv("VSCODE_PID") != "" || os.Getenv("TERM_PROGRAM") == "vscode" {
		return "antigravity"
	}
	if os.Getenv("AGENT_WEB_SESSION") != "" {
		return "web"
	}
	return "cli"
}

// baseDir resolves the global store root: AGENT_CORE, else ~/.agent-core.
func baseDir() (string, error) {
	if dir := os.Getenv("AGENT_CORE"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".agent-core"), nil
}

// newRuntime builds the operation runtime: config, the two tier roots, and
// the detected environment. The local workspace lives under the current
// working directory so each project keeps its own session.
func newRuntime() (ops.Runtime, error) {
	base, err := baseDir()
	if err != nil {
		return ops.Runtime{}, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ops.Runtime{}, err
	}
	return ops.Runtime{
		Config: config.Load(base),
		Local:  store.Tier{Root: filepath.Join(cwd, ".agent", "research")},
		Global: store.Global{Base: base},
		Env:    detectEnvironment(),
	}, nil
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___  ___ ___  _   _ _____
  / __|/ __/ _ \| | | |_   _|
  \__ \ (_| (_) | |_| | | |
  |___/\___\___/ \___/  |_|

  Research session tracker

  Usage: scout <command> [options]
         scout --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	rt, err := newRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(rt)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'scout --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(rt, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
