package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"roomsim/internal/sims/room"
	"roomsim/internal/trace"
)

type runOutput struct {
	Config room.Config `json:"config"`
	Report room.Report `json:"report"`
	Trace  string      `json:"trace,omitempty"`
}

func newRunCmd() *cobra.Command {
	def := room.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print its report",
		Long: `Run one simulation to completion.

Parameters come from --config (YAML) when given, then individual flags
override them. Without either the defaults are a 10x10 room, 20% dirt,
100 cleaners and a 500 step cap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			sim, err := room.New(cfg)
			if err != nil {
				return err
			}
			log.Debug("starting run",
				"width", cfg.Width, "height", cfg.Height,
				"dirt", cfg.DirtFraction, "cleaners", cfg.Cleaners,
				"steps", cfg.MaxSteps, "seed", cfg.Seed)

			out := runOutput{Config: cfg}
			tracePath, _ := cmd.Flags().GetString("trace")
			if tracePath != "" {
				w, err := trace.Create(tracePath, trace.Header{Version: trace.Version, Config: cfg})
				if err != nil {
					return fmt.Errorf("create trace: %w", err)
				}
				rep, recErr := trace.Record(sim, w)
				if err := w.Close(); err != nil && recErr == nil {
					recErr = err
				}
				if recErr != nil {
					return fmt.Errorf("record trace: %w", recErr)
				}
				out.Report = rep
				out.Trace = tracePath
				log.Info("trace written", "path", tracePath, "frames", rep.Steps+1)
			} else {
				out.Report = sim.Run()
			}

			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return printReport(cmd, out.Report)
		},
	}

	cmd.Flags().String("config", "", "YAML file with the run configuration")
	cmd.Flags().Float64("dirt", def.DirtFraction, "Fraction of tiles that start dirty, in [0,1]")
	cmd.Flags().Int("width", def.Width, "Room width in tiles")
	cmd.Flags().Int("height", def.Height, "Room height in tiles")
	cmd.Flags().Int("steps", def.MaxSteps, "Step cap")
	cmd.Flags().Int("cleaners", def.Cleaners, "Number of cleaners")
	cmd.Flags().Int64("seed", def.Seed, "Random seed")
	cmd.Flags().Int("start-x", 1, "Starting column for every cleaner")
	cmd.Flags().Int("start-y", 1, "Starting row for every cleaner")
	cmd.Flags().String("trace", "", "Write a zstd-compressed JSONL trajectory to this file")
	return cmd
}

// configFromFlags loads --config when set and applies every flag the user
// changed on top of it.
func configFromFlags(cmd *cobra.Command) (room.Config, error) {
	cfg := room.DefaultConfig()
	flags := cmd.Flags()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := room.LoadConfig(path)
		if err != nil {
			return room.Config{}, err
		}
		cfg = loaded
	}
	if flags.Changed("dirt") {
		cfg.DirtFraction, _ = flags.GetFloat64("dirt")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("steps") {
		cfg.MaxSteps, _ = flags.GetInt("steps")
	}
	if flags.Changed("cleaners") {
		cfg.Cleaners, _ = flags.GetInt("cleaners")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("start-x") || flags.Changed("start-y") {
		start := cfg.StartPos()
		if flags.Changed("start-x") {
			start.X, _ = flags.GetInt("start-x")
		}
		if flags.Changed("start-y") {
			start.Y, _ = flags.GetInt("start-y")
		}
		cfg.Start = &start
	}
	return cfg, nil
}

func printReport(cmd *cobra.Command, rep room.Report) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "total_tiles:\t%d\n", rep.TotalTiles)
	fmt.Fprintf(tw, "initial_dirty:\t%d\n", rep.InitialDirty)
	fmt.Fprintf(tw, "total_clean_at_end:\t%d\n", rep.FinalClean)
	fmt.Fprintf(tw, "dirty_at_end:\t%d\n", rep.FinalDirty)
	fmt.Fprintf(tw, "being_cleaned_at_end:\t%d\n", rep.InProgress)
	fmt.Fprintf(tw, "percentage_cleaned:\t%.2f\n", rep.PercentCleaned)
	fmt.Fprintf(tw, "time:\t%s\n", rep.Time())
	fmt.Fprintf(tw, "movements:\t%d\n", rep.Movements)
	return tw.Flush()
}
