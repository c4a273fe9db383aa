package room

import "fmt"

// Report is the fixed-shape summary produced when a run terminates.
type Report struct {
	TotalTiles   int `json:"total_tiles" yaml:"total_tiles"`
	InitialDirty int `json:"initial_dirty" yaml:"initial_dirty"`
	FinalClean   int `json:"total_clean_at_end" yaml:"total_clean_at_end"`
	FinalDirty   int `json:"dirty_at_end" yaml:"dirty_at_end"`
	InProgress   int `json:"being_cleaned_at_end" yaml:"being_cleaned_at_end"`
	// PercentCleaned counts tiles that left the Dirty state, including those
	// still being cleaned. It is 100 when nothing started dirty.
	PercentCleaned float64 `json:"percentage_cleaned" yaml:"percentage_cleaned"`
	Steps          int     `json:"steps" yaml:"steps"`
	MaxSteps       int     `json:"max_steps" yaml:"max_steps"`
	Movements      int     `json:"movements" yaml:"movements"`
}

// Time renders elapsed steps against the cap, e.g. "37/500".
func (rep Report) Time() string {
	return fmt.Sprintf("%d/%d", rep.Steps, rep.MaxSteps)
}

// AllClean reports whether every tile ended clean.
func (rep Report) AllClean() bool { return rep.FinalClean == rep.TotalTiles }

// Report summarizes the current state. It is normally called once Done
// reports true but has no side effects either way.
func (r *Room) Report() Report {
	rep := Report{
		TotalTiles:   len(r.tiles),
		InitialDirty: r.initialDirty,
		FinalClean:   r.clean,
		FinalDirty:   r.dirty,
		InProgress:   r.inProgress,
		Steps:        r.steps,
		MaxSteps:     r.cfg.MaxSteps,
		Movements:    r.movements,
	}
	rep.PercentCleaned = percentCleaned(rep.InitialDirty, rep.FinalDirty)
	return rep
}

func percentCleaned(initialDirty, stillDirty int) float64 {
	if initialDirty == 0 {
		return 100
	}
	return float64(initialDirty-stillDirty) / float64(initialDirty) * 100
}
