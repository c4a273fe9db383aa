package room

import (
	"strconv"

	"roomsim/internal/core"
)

// Parameters describes the room's configuration and live counters.
func (r *Room) Parameters() core.ParameterSnapshot {
	snap := r.cfg.Parameters()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Progress",
		Params: []core.Parameter{
			intParam("step", "Step", r.steps),
			intParam("movements", "Movements", r.movements),
			intParam("clean", "Clean tiles", r.clean),
			intParam("dirty", "Dirty tiles", r.dirty),
			intParam("being_cleaned", "Being cleaned", r.inProgress),
		},
	})
	return snap
}

// Parameters describes the configuration using the same keys FromMap accepts.
func (c Config) Parameters() core.ParameterSnapshot {
	start := c.StartPos()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Room",
			Params: []core.Parameter{
				intParam("w", "Width", c.Width),
				intParam("h", "Height", c.Height),
				floatParam("dirt", "Dirt fraction", c.DirtFraction, "share of tiles that start dirty"),
				int64Param("seed", "Seed", c.Seed),
			},
		},
		{
			Name: "Cleaners",
			Params: []core.Parameter{
				intParam("cleaners", "Cleaners", c.Cleaners),
				intParam("start_x", "Start column", start.X),
				intParam("start_y", "Start row", start.Y),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("steps", "Max steps", c.MaxSteps),
			},
		},
	}}
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

func floatParam(key, label string, v float64, desc string) core.Parameter {
	return core.Parameter{
		Key:         key,
		Label:       label,
		Type:        core.ParamTypeFloat,
		Value:       strconv.FormatFloat(v, 'g', -1, 64),
		Description: desc,
	}
}
