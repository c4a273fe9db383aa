package app

import (
	"flag"
	"strconv"

	"roomsim/internal/sims/room"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	SPS      int
	Seed     int64
	HUDWidth int

	Room room.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "room", Scale: 24, TPS: 60, SPS: 10, Seed: 42, HUDWidth: 220, Room: room.DefaultConfig()}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.SPS, "sps", c.SPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels, 0 hides it")

	fs.IntVar(&c.Room.Width, "w", c.Room.Width, "room width in tiles")
	fs.IntVar(&c.Room.Height, "h", c.Room.Height, "room height in tiles")
	fs.Float64Var(&c.Room.DirtFraction, "dirt", c.Room.DirtFraction, "fraction of tiles that start dirty")
	fs.IntVar(&c.Room.Cleaners, "cleaners", c.Room.Cleaners, "number of cleaners")
	fs.IntVar(&c.Room.MaxSteps, "steps", c.Room.MaxSteps, "step cap")
}

// SimParams renders the room flags in the key/value form sim factories take.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"w":        strconv.Itoa(c.Room.Width),
		"h":        strconv.Itoa(c.Room.Height),
		"dirt":     strconv.FormatFloat(c.Room.DirtFraction, 'g', -1, 64),
		"cleaners": strconv.Itoa(c.Room.Cleaners),
		"steps":    strconv.Itoa(c.Room.MaxSteps),
		"seed":     strconv.FormatInt(c.Seed, 10),
	}
}
