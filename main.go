// parlor - a terminal chat client with media previews and an upload relay.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor-tui/internal/cli"
	"github.com/parlorchat/parlor-tui/internal/config"
	"github.com/parlorchat/parlor-tui/internal/server"
	"github.com/parlorchat/parlor-tui/internal/storage"
	"github.com/parlorchat/parlor-tui/internal/store"
	"github.com/parlorchat/parlor-tui/internal/ui/chat"
	"github.com/parlorchat/parlor-tui/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdServe:
		runServe(args)
	case cli.CmdConfig:
		handleConfig()
	case cli.CmdExport:
		handleExport(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

// =============================================================================
// TUI MODE
// =============================================================================

func runTUI() {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "parlor needs an interactive terminal; try 'parlor serve' or 'parlor help'")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kv, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage(kv)

	st := store.New(kv)

	relayBase := cfg.Server.BaseURL
	if relayBase == "" {
		relayBase = "http://localhost:" + util.IntToString(cfg.Server.Port)
	}
	uploader := server.NewClient(relayBase)

	m := chat.New(st, uploader, cfg.UI)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SERVE MODE
// =============================================================================

func runServe(args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Server.Port, "listen port")
	dir := fs.String("dir", cfg.Server.UploadDir, "upload directory")
	baseURL := fs.String("base-url", cfg.Server.BaseURL, "public base URL for file links")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cors := server.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	srv, err := server.New(server.Config{
		Port:      *port,
		UploadDir: *dir,
		BaseURL:   *baseURL,
		CORS:      cors,
		Limiter:   server.NewRateLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Config edits need a restart to take effect; say so instead of
	// guessing which changes are safe to apply live.
	go func() {
		err := config.Watch(ctx, func(*config.Config) {
			log.Printf("SERVER: Config file changed, restart to apply")
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("SERVER: Config watch unavailable: %v", err)
		}
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONFIG AND EXPORT
// =============================================================================

func handleConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "export as JSON instead of markdown")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: parlor export [--json] <session-id>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	kv, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage(kv)

	st := store.New(kv)
	sess := st.SessionByID(fs.Arg(0))
	if sess == nil {
		fmt.Fprintf(os.Stderr, "Error: no session matches %q\n", fs.Arg(0))
		os.Exit(1)
	}

	if *asJSON {
		data, err := sess.ExportJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		fmt.Println()
		return
	}
	fmt.Print(sess.ExportMarkdown())
}

// =============================================================================
// STORAGE WIRING
// =============================================================================

// openStorage builds the persistence backend the config asks for.
func openStorage(cfg *config.Config) (storage.KV, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		path := cfg.Storage.Path
		if path == "" {
			dir, err := config.ConfigDir()
			if err != nil {
				return nil, err
			}
			path = dir + "/parlor.db"
		}
		return storage.NewSQLiteKV(path)
	default:
		if cfg.Storage.Path != "" {
			return storage.NewFileKVWithDir(cfg.Storage.Path)
		}
		return storage.NewFileKV()
	}
}

func closeStorage(kv storage.KV) {
	if closer, ok := kv.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("STORAGE: Close failed: %v", err)
		}
	}
}
