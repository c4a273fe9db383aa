package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a position lies outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrAlreadyPlaced is returned when placing an occupant that is on the grid.
	ErrAlreadyPlaced = errors.New("occupant already placed")
	// ErrNotPlaced is returned when moving an occupant that was never placed.
	ErrNotPlaced = errors.New("occupant not placed")
	// ErrNoEmptyCell is returned when random placement runs out of empty cells.
	ErrNoEmptyCell = errors.New("not enough empty cells")
)

// Shuffler permutes n elements through swap. *pkg/core.RNG satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Pos is a cell coordinate; X is the column and Y the row.
type Pos struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// OccupancyGrid is a bounded lattice where each cell holds an ordered list of
// occupants. Cells are stored in row-major order. Each cell is a doubly linked
// list threaded through per-occupant slots, so relocating an occupant is O(1)
// while the other occupants keep their arrival order.
type OccupancyGrid[T comparable] struct {
	W, H  int
	cells []cellList[T]
	where map[T]*slot[T]
}

type slot[T comparable] struct {
	val        T
	pos        Pos
	prev, next *slot[T]
}

type cellList[T comparable] struct {
	head, tail *slot[T]
}

func (c *cellList[T]) push(s *slot[T]) {
	s.prev, s.next = c.tail, nil
	if c.tail != nil {
		c.tail.next = s
	} else {
		c.head = s
	}
	c.tail = s
}

func (c *cellList[T]) unlink(s *slot[T]) {
	if s.prev != nil {
		s.prev.next = s.next
	} else {
		c.head = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	} else {
		c.tail = s.prev
	}
	s.prev, s.next = nil, nil
}

// MaxCells bounds W*H so the cell count always fits in an int.
const MaxCells = 1 << 24

// NewOccupancyGrid allocates an empty grid with the given dimensions.
// Non-positive dimensions, or more than MaxCells cells, produce a grid
// without cells.
func NewOccupancyGrid[T comparable](w, h int) *OccupancyGrid[T] {
	if w <= 0 || h <= 0 || w > MaxCells/h {
		w, h = 0, 0
	}
	return &OccupancyGrid[T]{
		W:     w,
		H:     h,
		cells: make([]cellList[T], w*h),
		where: make(map[T]*slot[T]),
	}
}

// Index returns the linear cell index for coordinates (x, y).
func (g *OccupancyGrid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether p addresses a cell of the grid.
func (g *OccupancyGrid[T]) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Len reports the number of placed occupants.
func (g *OccupancyGrid[T]) Len() int { return len(g.where) }

// At returns a copy of the occupants of the cell at p in arrival order.
func (g *OccupancyGrid[T]) At(p Pos) []T {
	if !g.InBounds(p) {
		return nil
	}
	return g.appendCell(nil, g.Index(p.X, p.Y))
}

func (g *OccupancyGrid[T]) appendCell(dst []T, idx int) []T {
	for s := g.cells[idx].head; s != nil; s = s.next {
		dst = append(dst, s.val)
	}
	return dst
}

// PosOf returns the cell holding a.
func (g *OccupancyGrid[T]) PosOf(a T) (Pos, bool) {
	s, ok := g.where[a]
	if !ok {
		return Pos{}, false
	}
	return s.pos, true
}

// PlaceAt puts a single occupant into the cell at p.
func (g *OccupancyGrid[T]) PlaceAt(a T, p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("place at (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	if _, ok := g.where[a]; ok {
		return ErrAlreadyPlaced
	}
	s := &slot[T]{val: a, pos: p}
	g.cells[g.Index(p.X, p.Y)].push(s)
	g.where[a] = s
	return nil
}

// PlaceFixed puts every occupant into the same cell, keeping their order.
func (g *OccupancyGrid[T]) PlaceFixed(agents []T, p Pos) error {
	for _, a := range agents {
		if err := g.PlaceAt(a, p); err != nil {
			return err
		}
	}
	return nil
}

// PlaceRandom gives each occupant its own uniformly random empty cell.
func (g *OccupancyGrid[T]) PlaceRandom(agents []T, rng Shuffler) error {
	empty := make([]Pos, 0, len(g.cells))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.cells[g.Index(x, y)].head == nil {
				empty = append(empty, Pos{X: x, Y: y})
			}
		}
	}
	if len(agents) > len(empty) {
		return fmt.Errorf("place %d occupants into %d cells: %w", len(agents), len(empty), ErrNoEmptyCell)
	}
	rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	for i, a := range agents {
		if err := g.PlaceAt(a, empty[i]); err != nil {
			return err
		}
	}
	return nil
}

// MoveTo relocates a to the cell at p in constant time. The remaining
// occupants of the old cell keep their relative order and a joins the end of
// the new cell.
func (g *OccupancyGrid[T]) MoveTo(a T, p Pos) error {
	if !g.InBounds(p) {
		return fmt.Errorf("move to (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	s, ok := g.where[a]
	if !ok {
		return ErrNotPlaced
	}
	if s.pos == p {
		return nil
	}
	g.cells[g.Index(s.pos.X, s.pos.Y)].unlink(s)
	g.cells[g.Index(p.X, p.Y)].push(s)
	s.pos = p
	return nil
}

// AppendNeighbors appends the occupants of the Moore neighborhood of a to dst.
// The own cell is excluded and the neighborhood is clipped at the borders.
// Cells are visited row by row (dy = -1, 0, 1), left to right (dx = -1, 0, 1),
// and each cell contributes its occupants in arrival order, so the result is
// reproducible for a given history of placements and moves.
func (g *OccupancyGrid[T]) AppendNeighbors(dst []T, a T) []T {
	s, ok := g.where[a]
	if !ok {
		return dst
	}
	p := s.pos
	for dy := -1; dy <= 1; dy++ {
		ny := p.Y + dy
		if ny < 0 || ny >= g.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := p.X + dx
			if nx < 0 || nx >= g.W {
				continue
			}
			if dx == 0 && dy == 0 {
				continue
			}
			dst = g.appendCell(dst, g.Index(nx, ny))
		}
	}
	return dst
}

// Clear removes every occupant.
func (g *OccupancyGrid[T]) Clear() {
	clear(g.cells)
	clear(g.where)
}
