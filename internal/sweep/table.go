package sweep

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteRuns prints one row per run.
func WriteRuns(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "job\titer\tdirt\tsize\tcleaners\ttotal_tiles\tinitial_dirty\ttotal_clean_at_end\tpercentage_cleaned\ttime\tmovements\t")
	for _, res := range results {
		cfg := res.Job.Config
		rep := res.Report
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%dx%d\t%d\t%d\t%d\t%d\t%.1f\t%s\t%d\t\n",
			res.Job.Index, res.Job.Iteration,
			cfg.DirtFraction, cfg.Width, cfg.Height, cfg.Cleaners,
			rep.TotalTiles, rep.InitialDirty, rep.FinalClean,
			rep.PercentCleaned, rep.Time(), rep.Movements)
	}
	return tw.Flush()
}

// WriteSummary prints one row per parameter combination.
func WriteSummary(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "combo\tdirt\tsize\tsteps\tcleaners\truns\tall_clean\tmean_pct\tmin_pct\tmax_pct\tmean_steps\tmean_moves\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%.2f\t%dx%d\t%d\t%d\t%d\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			s.Combo, s.Config.DirtFraction, s.Config.Width, s.Config.Height,
			s.Config.MaxSteps, s.Config.Cleaners, s.Runs, s.AllClean,
			s.MeanPercent, s.MinPercent, s.MaxPercent, s.MeanSteps, s.MeanMovements)
	}
	return tw.Flush()
}
