package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rogue/internal/config"
	"github.com/vovakirdan/tui-rogue/internal/platform/tui"
)

func newServeCmd(e config.Env) *cobra.Command {
	var (
		seed        uint64
		sshAddr     string
		hostKey     string
		idleTimeout int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the rogue SSH server",
		Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own dungeon, sized to the client terminal.
Runs are stored per-server (all users share the same hall of fame).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rogue/host_key

Examples:
  rogue serve                           # Listen on :23234 with auto-generated key
  rogue serve --ssh :2222               # Listen on port 2222
  rogue serve --host-key ./my_host_key  # Use specific host key
  rogue serve --seed 7                  # Everyone plays the same dungeon

Users can connect with:
  ssh localhost -p 23234`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			game, err := loadGameConfig(cmd, e, seed)
			if err != nil {
				return err
			}

			cfg := tui.SSHServerConfig{
				Address:     sshAddr,
				HostKeyPath: hostKey,
				DBPath:      flagDBPath,
				IdleTimeout: time.Duration(idleTimeout) * time.Minute,
				Game:        game,
			}

			server, err := tui.NewSSHServer(cfg)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Starting rogue SSH server on %s\n", cfg.Address)
			fmt.Fprintln(out, "Press Ctrl+C to stop")

			return server.ListenAndServe()
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed shared by every session (default: random per session)")
	cmd.Flags().StringVar(&sshAddr, "ssh", e.SSHAddr, "SSH server address (host:port)")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	cmd.Flags().IntVar(&idleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	return cmd
}
