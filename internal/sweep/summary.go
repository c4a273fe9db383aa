package sweep

import (
	"math"

	"roomsim/internal/sims/room"
)

// Summary aggregates the iterations of one parameter combination.
type Summary struct {
	Combo int `json:"combo"`
	// Config is the combination's configuration with the seed zeroed.
	Config         room.Config `json:"config"`
	Runs           int         `json:"runs"`
	AllClean       int         `json:"all_clean"`
	MeanPercent    float64     `json:"mean_percent_cleaned"`
	MinPercent     float64     `json:"min_percent_cleaned"`
	MaxPercent     float64     `json:"max_percent_cleaned"`
	MeanSteps      float64     `json:"mean_steps"`
	MeanMovements  float64     `json:"mean_movements"`
	MeanFinalDirty float64     `json:"mean_dirty_at_end"`
}

// Summarize groups results by combination, in order of first appearance.
func Summarize(results []Result) []Summary {
	var out []Summary
	index := make(map[int]int)
	for _, res := range results {
		i, ok := index[res.Job.Combo]
		if !ok {
			cfg := res.Job.Config
			cfg.Seed = 0
			out = append(out, Summary{
				Combo:      res.Job.Combo,
				Config:     cfg,
				MinPercent: math.Inf(1),
				MaxPercent: math.Inf(-1),
			})
			i = len(out) - 1
			index[res.Job.Combo] = i
		}
		s := &out[i]
		rep := res.Report
		s.Runs++
		if rep.AllClean() {
			s.AllClean++
		}
		s.MeanPercent += rep.PercentCleaned
		s.MinPercent = math.Min(s.MinPercent, rep.PercentCleaned)
		s.MaxPercent = math.Max(s.MaxPercent, rep.PercentCleaned)
		s.MeanSteps += float64(rep.Steps)
		s.MeanMovements += float64(rep.Movements)
		s.MeanFinalDirty += float64(rep.FinalDirty)
	}
	for i := range out {
		n := float64(out[i].Runs)
		out[i].MeanPercent /= n
		out[i].MeanSteps /= n
		out[i].MeanMovements /= n
		out[i].MeanFinalDirty /= n
	}
	return out
}
