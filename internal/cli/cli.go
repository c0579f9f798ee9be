// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
)

// Version information (set at build time by main)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies which subcommand was requested.
type Command int

const (
	CmdTUI Command = iota // default: interactive chat
	CmdServe              // upload relay server
	CmdConfig             // print the effective configuration
	CmdExport             // export a session transcript
	CmdVersion
	CmdHelp
)

// Parse inspects os.Args and returns the requested command plus its
// remaining arguments.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "serve":
		return CmdServe, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "export":
		return CmdExport, args[1:]
	case "version", "--version", "-v":
		return CmdVersion, nil
	case "help", "--help", "-h":
		return CmdHelp, nil
	default:
		return CmdTUI, args
	}
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("parlor %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}

// PrintUsage writes the top-level help text to stdout.
func PrintUsage() {
	fmt.Print(`parlor - terminal chat client with media previews

Usage:
  parlor               start the interactive chat TUI
  parlor serve         run the upload relay server
  parlor config        print the effective configuration
  parlor export <id>   export a session transcript (markdown, --json for JSON)
  parlor version       print version information

Serve flags:
  --port <n>           listen port (default from config)
  --dir <path>         upload directory

Environment:
  PARLOR_PORT, PARLOR_UPLOAD_DIR, PARLOR_BASE_URL,
  PARLOR_STORAGE_BACKEND, PARLOR_STORAGE_PATH, PARLOR_THEME
`)
}
