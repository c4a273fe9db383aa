//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"roomsim/internal/core"
	"roomsim/internal/render"
)

type crowdProvider interface {
	CrowdField() []float32
}

var crowdTint = color.RGBA{R: 255, G: 120, B: 40}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim       core.Sim
	scale     int
	showCrowd bool
	painter   *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update toggles layers from the keyboard. C shows where cleaners crowd.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.showCrowd = !o.showCrowd
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showCrowd {
		return
	}
	if provider, ok := o.sim.(crowdProvider); ok {
		o.painter.BlitMask(screen, provider.CrowdField(), crowdTint, o.scale)
	}
}
