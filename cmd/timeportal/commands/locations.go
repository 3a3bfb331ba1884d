package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func locationsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List bookable destinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, l := range e.cfg.Locations {
				marker := " "
				if l.ID == e.cfg.DefaultLocation {
					marker = "*"
				}
				pterm.Fprintln(out, fmt.Sprintf("%s %-12s %s", marker, l.ID, pterm.LightCyan(l.Name)))
			}
			return nil
		},
	}
}
