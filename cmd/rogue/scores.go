package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rogue/internal/platform/tui"
	"github.com/vovakirdan/tui-rogue/internal/storage"
)

func newScoresCmd() *cobra.Command {
	var (
		limit       int
		recent      bool
		seed        uint64
		player      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show recorded runs",
		Long: `Display the best runs (most gold, then deepest level).

Examples:
  rogue scores
  rogue scores --recent --limit 20
  rogue scores --seed 42        # every run of one dungeon
  rogue scores --player alice   # statistics for one player
  rogue scores --tui            # browse in a table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Open run storage
			store, err := storage.Open(flagDBPath)
			if err != nil {
				return fmt.Errorf("opening runs database: %w", err)
			}
			defer store.Close()

			if interactive {
				width, height := 80, 24 // Defaults
				if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
					width, height = w, h
				}
				return tui.RunScoreboard(store, width, height)
			}

			var (
				runs  []storage.RunRecord
				title string
			)
			switch {
			case cmd.Flags().Changed("seed"):
				title = fmt.Sprintf("Runs of seed %d", seed)
				runs, err = store.RunsBySeed(seed)
			case recent:
				title = "Recent runs"
				runs, err = store.RecentRuns(limit)
			default:
				title = "Best runs"
				runs, err = store.TopRuns(limit)
			}
			if err != nil {
				return fmt.Errorf("retrieving runs: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, title)
			fmt.Fprintln(out)

			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Play 'rogue play' to record the first run!")
				return nil
			}

			// Print header
			fmt.Fprintf(out, "  %-4s  %-12s  %6s  %5s  %6s  %-20s  %-10s  %s\n",
				"Rank", "Player", "Gold", "Level", "Turns", "Seed", "End", "Date")
			fmt.Fprintf(out, "  %-4s  %-12s  %6s  %5s  %6s  %-20s  %-10s  %s\n",
				"----", "------", "----", "-----", "-----", "----", "---", "----")

			// Print runs
			for i, r := range runs {
				fmt.Fprintf(out, "  %-4d  %-12s  %6d  %5d  %6d  %-20d  %-10s  %s\n",
					i+1, r.Player, r.Gold, r.Level, r.Turns, r.Seed, r.EndReason,
					r.CreatedAt.Format("2006-01-02 15:04"))
			}

			// Show aggregate statistics
			stats, err := store.Stats(player)
			if err != nil {
				return fmt.Errorf("retrieving stats: %w", err)
			}
			fmt.Fprintln(out)
			if player != "" {
				fmt.Fprintf(out, "%s: ", player)
			}
			fmt.Fprintf(out, "%d runs, best gold %d, deepest level %d, %d cleared\n",
				stats.Runs, stats.BestGold, stats.DeepestLevel, stats.Clears)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	cmd.Flags().BoolVar(&recent, "recent", false, "Show the latest runs instead of the best")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Show every run of this seed")
	cmd.Flags().StringVar(&player, "player", "", "Statistics for one player")
	cmd.Flags().BoolVar(&interactive, "tui", false, "Browse runs in an interactive table")
	return cmd
}
