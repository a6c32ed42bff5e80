package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rogue/internal/dungeon"
)

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List all dungeon styles",
		Long:  `Shows every dungeon style that can be named in the "dungeon" config field.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			styles := dungeon.Styles()

			if len(styles) == 0 {
				fmt.Fprintln(out, "No dungeon styles available.")
				return
			}

			fmt.Fprintln(out, "Available dungeon styles:")
			fmt.Fprintln(out)
			for _, s := range styles {
				marker := " "
				if s == dungeon.DefaultStyle().Dungeon {
					marker = "*"
				}
				fmt.Fprintf(out, " %s %s\n", marker, s)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "* marks the default.")
		},
	}
}
