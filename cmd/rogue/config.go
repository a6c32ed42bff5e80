package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rogue/internal/config"
)

func newConfigCmd(e config.Env) *cobra.Command {
	var (
		format string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration 'rogue play' would use, after the search order
(--config, ~/.rogue/config.yaml, ./configs/rogue.yaml, embedded default)
and the seed overrides are applied.

Examples:
  rogue config
  rogue config --format json
  rogue config --seed 42 > ~/.rogue/config.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := loadGameConfig(cmd, e, seed)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Pin the seed in the printed config")
	return cmd
}
