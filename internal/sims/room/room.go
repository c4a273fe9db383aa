package room

import (
	"fmt"

	"roomsim/internal/core"
	pcore "roomsim/pkg/core"
)

// Room is a single cleaning run: the grid, its tiles and cleaners, and the
// step and movement counters. A Room is not safe for concurrent use; build
// one per run.
type Room struct {
	cfg Config

	grid     *core.OccupancyGrid[Agent]
	tiles    []*Tile
	cleaners []*Cleaner
	rng      *pcore.RNG

	initialDirty int
	clean        int
	dirty        int
	inProgress   int

	steps     int
	movements int
	done      bool

	neighbors []Agent
	display   []uint8
}

// New validates cfg and returns a room initialized from cfg.Seed.
func New(cfg Config) (*Room, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Room{
		cfg:       cfg,
		neighbors: make([]Agent, 0, 16),
		display:   make([]uint8, cfg.TotalTiles()),
	}
	if err := r.Init(pcore.NewRNG(cfg.Seed)); err != nil {
		return nil, err
	}
	return r, nil
}

// Name returns the simulation identifier.
func (r *Room) Name() string { return "room" }

// Size reports the grid dimensions.
func (r *Room) Size() core.Size { return core.Size{W: r.cfg.Width, H: r.cfg.Height} }

// Config returns the parameters the room was built with.
func (r *Room) Config() Config { return r.cfg }

// Init rebuilds the room from scratch, drawing tile placement and every later
// neighbor choice from rng.
func (r *Room) Init(rng *pcore.RNG) error {
	cfg := r.cfg
	total := cfg.TotalTiles()

	r.rng = rng
	r.grid = core.NewOccupancyGrid[Agent](cfg.Width, cfg.Height)
	r.initialDirty = cfg.InitialDirty()

	// Dirt is assigned in creation order before placement, so which tiles are
	// dirty is independent of where they land.
	r.tiles = make([]*Tile, total)
	tileAgents := make([]Agent, total)
	for i := range r.tiles {
		cond := Clean
		if i < r.initialDirty {
			cond = Dirty
		}
		r.tiles[i] = &Tile{ID: i, Condition: cond}
		tileAgents[i] = r.tiles[i]
	}

	r.cleaners = make([]*Cleaner, cfg.Cleaners)
	cleanerAgents := make([]Agent, cfg.Cleaners)
	for i := range r.cleaners {
		r.cleaners[i] = &Cleaner{ID: i}
		cleanerAgents[i] = r.cleaners[i]
	}

	if err := r.grid.PlaceRandom(tileAgents, rng); err != nil {
		return fmt.Errorf("place tiles: %w", err)
	}
	if err := r.grid.PlaceFixed(cleanerAgents, cfg.StartPos()); err != nil {
		return fmt.Errorf("place cleaners: %w", err)
	}

	r.clean = total - r.initialDirty
	r.dirty = r.initialDirty
	r.inProgress = 0
	r.steps = 0
	r.movements = 0
	r.done = false
	r.refreshDisplay()
	return nil
}

// Reset reinitializes the room with a fresh RNG seeded from seed. Zero keeps
// the configured seed.
func (r *Room) Reset(seed int64) {
	if seed == 0 {
		seed = r.cfg.Seed
	}
	// Placement cannot fail for a validated config: there is exactly one tile
	// per cell and the start cell is in bounds.
	if err := r.Init(pcore.NewRNG(seed)); err != nil {
		panic(err)
	}
}

// Step lets every cleaner act once, in creation order, then checks for
// termination. It does nothing once the room is done.
func (r *Room) Step() {
	if r.done {
		return
	}
	for _, c := range r.cleaners {
		if c.Target != nil {
			r.finish(c)
			continue
		}
		r.explore(c)
	}
	r.steps++
	if r.steps >= r.cfg.MaxSteps || r.clean == len(r.tiles) {
		r.done = true
	}
	r.refreshDisplay()
}

func (r *Room) finish(c *Cleaner) {
	target := c.Target
	if target.Condition == BeingCleaned {
		target.Condition = Clean
		r.inProgress--
		r.clean++
	}
	pos, _ := r.grid.PosOf(target)
	r.move(c, pos)
	c.Target = nil
}

func (r *Room) explore(c *Cleaner) {
	r.neighbors = r.grid.AppendNeighbors(r.neighbors[:0], c)
	if len(r.neighbors) == 0 {
		return
	}
	switch n := r.neighbors[r.rng.IntN(len(r.neighbors))].(type) {
	case *Tile:
		switch n.Condition {
		case Dirty:
			c.Target = n
			n.Condition = BeingCleaned
			r.dirty--
			r.inProgress++
		case Clean:
			pos, _ := r.grid.PosOf(n)
			r.move(c, pos)
		}
	case *Cleaner:
	}
}

func (r *Room) move(c *Cleaner, pos core.Pos) {
	if err := r.grid.MoveTo(c, pos); err != nil {
		panic(fmt.Sprintf("room: move cleaner %d: %v", c.ID, err))
	}
	r.movements++
}

// Run steps until the room is done and returns the final report.
func (r *Room) Run() Report {
	for !r.done {
		r.Step()
	}
	return r.Report()
}

// Done reports whether the run has terminated.
func (r *Room) Done() bool { return r.done }

// Steps returns the number of completed steps.
func (r *Room) Steps() int { return r.steps }

// Movements returns the number of cleaner relocations so far.
func (r *Room) Movements() int { return r.movements }

// CleanCount returns the number of clean tiles.
func (r *Room) CleanCount() int { return r.clean }

// Tiles exposes the tiles in creation order.
func (r *Room) Tiles() []*Tile { return r.tiles }

// Cleaners exposes the cleaners in creation order.
func (r *Room) Cleaners() []*Cleaner { return r.cleaners }

// PositionOf returns the cell holding a.
func (r *Room) PositionOf(a Agent) (core.Pos, bool) { return r.grid.PosOf(a) }

// Neighbors returns the agents adjacent to a in enumeration order.
func (r *Room) Neighbors(a Agent) []Agent { return r.grid.AppendNeighbors(nil, a) }

func init() {
	core.Register("room", func(m map[string]string) (core.Sim, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}
