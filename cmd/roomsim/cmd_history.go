package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"roomsim/internal/store"
	"roomsim/internal/sweep"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "List saved sweeps or summarize one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			// Listing must not leave an empty database behind.
			if _, err := os.Stat(dbPath); err != nil {
				return fmt.Errorf("results db: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open results db: %w", err)
			}
			defer st.Close()
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				list, err := st.Sweeps(ctx)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return writeJSON(w, list)
				}
				if len(list) == 0 {
					_, err := fmt.Fprintln(w, "No sweeps saved.")
					return err
				}
				tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCREATED\tNAME\tRUNS")
				for _, s := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Name, s.Runs)
				}
				return tw.Flush()
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sweep id %q", args[0])
			}
			plan, err := st.Plan(ctx, id)
			if err != nil {
				return err
			}
			results, err := st.Runs(ctx, id)
			if err != nil {
				return err
			}
			out := sweepOutput{ID: id, Plan: plan, Summary: sweep.Summarize(results)}
			if jsonOutput(cmd) {
				return writeJSON(w, out)
			}
			return sweep.WriteSummary(w, out.Summary)
		},
	}
	cmd.Flags().String("db", "roomsim.db", "SQLite database written by sweep --db")
	return cmd
}
