package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"roomsim/internal/store"
	"roomsim/internal/sweep"
)

type sweepOutput struct {
	ID      int64           `json:"id,omitempty"`
	Plan    sweep.Plan      `json:"plan"`
	Summary []sweep.Summary `json:"summary"`
	Runs    []sweep.Result  `json:"runs,omitempty"`
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [PLAN.yaml]",
		Short: "Run every combination of a parameter plan",
		Long: `Expand a YAML plan into parameter combinations, run each combination
the requested number of times on a worker pool and print a summary per
combination.

Without PLAN the default experiment runs: step caps 50, 100 and 500 times
1, 5 and 20 cleaners, five iterations each.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			plan := sweep.DefaultPlan()
			if len(args) == 1 {
				plan, err = sweep.LoadPlan(args[0])
				if err != nil {
					return err
				}
			}
			jobs, err := plan.Jobs()
			if err != nil {
				return fmt.Errorf("plan: %w", err)
			}

			workers, _ := cmd.Flags().GetInt("workers")
			log.Info("starting sweep", "name", plan.Name, "jobs", len(jobs), "workers", workers)
			results, err := sweep.Runner{Workers: workers, Logger: log}.Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			out := sweepOutput{Plan: plan, Summary: sweep.Summarize(results)}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				st, err := store.Open(dbPath)
				if err != nil {
					return fmt.Errorf("open results db: %w", err)
				}
				defer st.Close()
				out.ID, err = st.SaveSweep(cmd.Context(), plan, results)
				if err != nil {
					return fmt.Errorf("save sweep: %w", err)
				}
				log.Info("sweep saved", "db", dbPath, "id", out.ID)
			}

			showRuns, _ := cmd.Flags().GetBool("runs")
			if showRuns {
				out.Runs = results
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			if showRuns {
				if err := sweep.WriteRuns(w, results); err != nil {
					return err
				}
				fmt.Fprintln(w)
			}
			return sweep.WriteSummary(w, out.Summary)
		},
	}
	cmd.Flags().Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	cmd.Flags().String("db", "", "Save the sweep to this SQLite database")
	cmd.Flags().Bool("runs", false, "Also print every individual run")
	return cmd
}
