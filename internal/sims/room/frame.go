package room

import "roomsim/internal/core"

// Frame is a point-in-time view of a run used for trajectory traces.
type Frame struct {
	Step      int `json:"step"`
	Movements int `json:"movements"`
	// Tiles holds one digit per tile in creation order (see Condition).
	Tiles    string     `json:"tiles"`
	Cleaners []core.Pos `json:"cleaners"`
	Done     bool       `json:"done,omitempty"`
}

// Frame captures the current state.
func (r *Room) Frame() Frame {
	tiles := make([]byte, len(r.tiles))
	for i, t := range r.tiles {
		tiles[i] = '0' + byte(t.Condition)
	}
	cleaners := make([]core.Pos, len(r.cleaners))
	for i, c := range r.cleaners {
		cleaners[i], _ = r.grid.PosOf(c)
	}
	return Frame{
		Step:      r.steps,
		Movements: r.movements,
		Tiles:     string(tiles),
		Cleaners:  cleaners,
		Done:      r.done,
	}
}
