package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rogue/internal/config"
	"github.com/vovakirdan/tui-rogue/internal/platform/agent"
)

func newAgentCmd(e config.Env) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Drive a session over stdin/stdout",
		Long: `Run a session for an automated player. Each input line is one request
and gets one JSON line back with the map rows, the status and the reactions.

Requests:
  <key>      one byte, bound by the AI key map (hjklyubn . f s > Q)
  prev       repeat the current state
  reset      start a new session
  seed <n>   seed used by the next reset

Examples:
  printf 'prev\nl\nl\n' | rogue agent --seed 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadGameConfig(cmd, e, seed)
			if err != nil {
				return err
			}
			logger, closeLog, err := openLogger("rogue-agent")
			if err != nil {
				return err
			}
			defer closeLog()

			client, err := agent.New(cfg, nil, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			return client.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Dungeon seed (default: ROGUE_SEED, the config, or random)")
	return cmd
}
