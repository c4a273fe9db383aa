package room

import "image/color"

// Display values: the tile condition in the low bits, plus displayCleanerBit
// when at least one cleaner stands on the cell.
const (
	displayConditionMask = 0x03
	displayCleanerBit    = 0x04
)

var roomPalette = buildRoomPalette()

// Cells exposes the display buffer, one value per cell in row-major order.
func (r *Room) Cells() []uint8 { return r.display }

// Palette exposes the color palette used for rendering the room.
func (r *Room) Palette() []color.RGBA { return roomPalette }

func (r *Room) refreshDisplay() {
	if len(r.display) != r.cfg.TotalTiles() {
		r.display = make([]uint8, r.cfg.TotalTiles())
	}
	for i := range r.display {
		r.display[i] = 0
	}
	for _, t := range r.tiles {
		p, _ := r.grid.PosOf(t)
		r.display[r.grid.Index(p.X, p.Y)] = uint8(t.Condition) & displayConditionMask
	}
	for _, c := range r.cleaners {
		p, _ := r.grid.PosOf(c)
		r.display[r.grid.Index(p.X, p.Y)] |= displayCleanerBit
	}
}

func buildRoomPalette() []color.RGBA {
	palette := make([]color.RGBA, 8)
	for i := range palette {
		base := conditionColor(Condition(i & displayConditionMask))
		if i&displayCleanerBit != 0 {
			base = blend(base, color.RGBA{R: 40, G: 120, B: 255, A: 255}, 0.7)
		}
		palette[i] = base
	}
	return palette
}

func conditionColor(c Condition) color.RGBA {
	switch c {
	case Dirty:
		return color.RGBA{R: 110, G: 78, B: 46, A: 255}
	case BeingCleaned:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	default:
		return color.RGBA{R: 235, G: 235, B: 230, A: 255}
	}
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
