//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"roomsim/internal/core"
)

const (
	panelPadding = 12
	lineHeight   = 16
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headerColor     = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	valueColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	title      string
	lines      []Line
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	return &HUD{sim: sim, width: max(width, 0), title: Title(sim)}
}

// Update refreshes the panel rows from the simulation's parameters.
func (h *HUD) Update(status ...string) {
	if h == nil {
		return
	}
	var snap core.ParameterSnapshot
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		snap = provider.Parameters()
	}
	h.lines = PanelLines(h.title, snap, status...)
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := max(h.sim.Size().H*max(scale, 1), (len(h.lines)+1)*lineHeight)
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBackground)
	face := basicfont.Face7x13
	for i, line := range h.lines {
		col := valueColor
		if line.Header {
			col = headerColor
		}
		text.Draw(h.panel, line.Text, face, panelPadding, panelPadding+(i+1)*lineHeight-4, col)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
