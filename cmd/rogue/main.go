// rogue is a turn-based dungeon crawler for the terminal.
//
// Usage:
//
//	rogue play               - Play a session in this terminal
//	rogue serve              - Start SSH server for remote play
//	rogue scores             - Show recorded runs
//	rogue config             - Print the effective configuration
//	rogue styles             - List dungeon styles
//	rogue agent              - Drive a session over stdin/stdout
//
// Global flags:
//
//	--config <path>  - Game config file (default: search order, then embedded)
//	--db <path>      - Runs database path (default: ~/.rogue/runs.db, env ROGUE_DB)
//	--log <path>     - Debug log file (env ROGUE_LOG)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rogue/internal/config"
	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagLogPath string
)

func main() {
	e, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(e).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(e config.Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "rogue",
		Short: "Rogue - a seedable dungeon crawler in your terminal",
		Long: `Rogue is a turn-based dungeon crawler. Every dungeon is generated
from a seed, so the same seed and the same keys always replay the same run.

Available commands:
  play     - Play a session in this terminal
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  config   - Print the effective configuration
  styles   - List dungeon styles
  agent    - Drive a session over stdin/stdout (one JSON line per step)

Examples:
  rogue play
  rogue play --seed 42
  rogue serve --ssh :2222
  rogue scores --recent
  rogue config --format json > rogue.json`,
		SilenceUsage: true,
	}

	// Global persistent flags
	root.PersistentFlags().StringVar(&flagConfig, "config", e.ConfigPath, "Path to game config (YAML or JSON)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", e.DBPath, "Path to runs database")
	root.PersistentFlags().StringVar(&flagLogPath, "log", e.LogPath, "Write debug logs to this file")

	// Add subcommands
	root.AddCommand(newPlayCmd(e))
	root.AddCommand(newServeCmd(e))
	root.AddCommand(newScoresCmd())
	root.AddCommand(newConfigCmd(e))
	root.AddCommand(newStylesCmd())
	root.AddCommand(newAgentCmd(e))
	return root
}

// openLogger returns a debug logger writing to --log, or a discarding one.
func openLogger(prefix string) (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// loadGameConfig loads the game config and applies the seed. An explicit
// --seed flag wins over ROGUE_SEED; without either the config decides.
func loadGameConfig(cmd *cobra.Command, e config.Env, seed uint64) (rogue.GameConfig, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return rogue.GameConfig{}, err
	}
	switch {
	case cmd.Flags().Changed("seed"):
		cfg = cfg.WithSeed(seed)
	case e.Seed != nil:
		cfg = cfg.WithSeed(*e.Seed)
	}
	if err := cfg.Validate(); err != nil {
		return rogue.GameConfig{}, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}
