package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/hpungsan/scribe/internal/config"
	"github.com/hpungsan/scribe/internal/db"
	"github.com/hpungsan/scribe/internal/logging"
	"github.com/hpungsan/scribe/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"convert": true, "validate": true, "chunk": true, "richtext": true,
	"lang": true, "limits": true, "link": true, "ref": true,
	"drafts": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false // No args → MCP server
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// needsStore reports whether the command reads or writes drafts.
func needsStore(args []string) bool {
	if len(args) < 2 {
		return true // MCP server registers the draft tools
	}
	if args[1] == "drafts" {
		return true
	}
	if args[1] == "convert" {
		for _, a := range args[2:] {
			if a == "--save" || a == "-s" {
				return true
			}
			for _, prefix := range []string{"--save=", "-s="} {
				if v, ok := strings.CutPrefix(a, prefix); ok {
					if on, err := strconv.ParseBool(v); err == nil && on {
						return true
					}
				}
			}
		}
	}
	return false
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___  ___ _ __(_) |__   ___
  / __|/ __| '__| | '_ \ / _ \
  \__ \ (__| |  | | |_) |  __/
  |___/\___|_|  |_|_.__/ \___|

  Markdown to document API block payloads

  Usage: scribe <command> [options]
         scribe --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before config and DB init
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if !isCLIMode(os.Args) && len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'scribe --help' for usage.\n")
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".scribe")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries JSON output or the MCP stream.
	logger := logging.New(cfg.LogLevel, os.Stderr)
	if path := config.FindRepoConfig(cwd); path != "" {
		logger.Debug("loaded repo config", "path", path)
	}

	if err := run(cfg, baseDir, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, baseDir string, logger hclog.Logger) error {
	if isCLIMode(os.Args) && !needsStore(os.Args) {
		return newCLIApp(nil, cfg).Run(os.Args)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)
	logger.Debug("opened draft store", "path", filepath.Join(baseDir, db.FileName))

	if isCLIMode(os.Args) {
		return newCLIApp(database, cfg).Run(os.Args)
	}

	logger.Info("starting MCP server", "version", Version)
	return mcp.Run(database, cfg, logger, Version)
}
