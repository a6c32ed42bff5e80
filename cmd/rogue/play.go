package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rogue/internal/config"
	"github.com/vovakirdan/tui-rogue/internal/platform/tui"
	"github.com/vovakirdan/tui-rogue/internal/storage"
)

func newPlayCmd(e config.Env) *cobra.Command {
	var (
		seed uint64
		fit  bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a session",
		Long: `Start a new dungeon in this terminal.

Controls:
  h j k l y u b n / arrows  - Move
  .                         - Rest
  f <dir>                   - Run in a direction (esc cancels)
  s                         - Search for hidden doors
  >                         - Descend the stairs
  Q                         - Quit (asks for confirmation)
  Ctrl+S                    - Save a screenshot to ~/.rogue/screenshots
  Ctrl+C                    - Leave immediately

Examples:
  rogue play
  rogue play --seed 42
  rogue play --fit
  rogue play --config ./my-rogue.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadGameConfig(cmd, e, seed)
			if err != nil {
				return err
			}

			// Check the terminal against the configured screen
			if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
				if fit {
					cfg = tui.FitConfig(cfg, w, h)
				}
				if w < cfg.Width || h < cfg.Height {
					return fmt.Errorf("terminal is %dx%d, the dungeon needs %dx%d (resize, or use --fit)",
						w, h, cfg.Width, cfg.Height)
				}
			}

			logger, closeLog, err := openLogger("rogue")
			if err != nil {
				return err
			}
			defer closeLog()

			// Open run storage
			store, err := storage.Open(flagDBPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
				// Continue without storage - the game still works
				store = nil
			}
			if store != nil {
				defer store.Close()
			}

			return tui.Run(cfg, tui.Options{Store: store, Logger: logger})
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Dungeon seed (default: ROGUE_SEED, the config, or random)")
	cmd.Flags().BoolVar(&fit, "fit", false, "Size the dungeon to the terminal")
	return cmd
}
