package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roomsim/internal/sims/room"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Describe the run parameters and their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := room.DefaultConfig()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				var err error
				if cfg, err = room.LoadConfig(path); err != nil {
					return err
				}
			}
			snap := cfg.Parameters()
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), snap)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, g := range snap.Groups {
				fmt.Fprintf(tw, "%s\n", g.Name)
				for _, p := range g.Params {
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", p.Key, p.Type, p.Value, p.Description)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().String("config", "", "Describe this YAML configuration instead of the defaults")
	return cmd
}
