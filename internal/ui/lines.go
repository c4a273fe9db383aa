package ui

import (
	"strings"

	"roomsim/internal/core"
)

// Line is one row of the parameter panel.
type Line struct {
	Text   string
	Header bool
}

// PanelLines lays out a parameter snapshot as panel rows: the title, then
// each group name followed by its parameters, then the status rows.
func PanelLines(title string, snap core.ParameterSnapshot, status ...string) []Line {
	lines := []Line{{Text: title, Header: true}}
	for _, g := range snap.Groups {
		lines = append(lines, Line{Text: g.Name, Header: true})
		for _, p := range g.Params {
			lines = append(lines, Line{Text: "  " + p.Label + ": " + p.Value})
		}
	}
	for _, s := range status {
		if s != "" {
			lines = append(lines, Line{Text: s})
		}
	}
	return lines
}

// Title builds the panel title for a simulation.
func Title(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Parameters"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}
