package ui

import (
	"asciiglobe/internal/debug"
	"asciiglobe/internal/render"
	"asciiglobe/internal/scene"

	"github.com/gdamore/tcell/v2"
)

// GlobeView displays the globe and everything on it
type GlobeView struct {
	renderer *render.GlobeRenderer
	canvas   *render.Canvas
	viewport scene.Viewport
}

// NewGlobeView creates a globe view filling width×height cells
func NewGlobeView(width, height int, sc *scene.Scene, layers *scene.Controller, camera *scene.Camera, cellAspect float64) *GlobeView {
	return &GlobeView{
		renderer: render.NewGlobeRenderer(sc, layers, camera),
		canvas:   render.NewCanvas(width, height),
		viewport: scene.Viewport{Width: width, Height: height, CellAspect: cellAspect},
	}
}

// Draw renders the globe to the screen. hover is the hovered country code.
func (g *GlobeView) Draw(screen tcell.Screen, hover string) {
	g.renderer.Render(g.canvas, g.viewport, hover)
	g.canvas.Blit(screen, 0, 0)
}

// Viewport returns the area the globe is drawn in
func (g *GlobeView) Viewport() scene.Viewport {
	return g.viewport
}

// UpdateDimensions updates the view dimensions when the screen is resized
func (g *GlobeView) UpdateDimensions(width, height int) {
	g.viewport.Width = width
	g.viewport.Height = height
	g.canvas = render.NewCanvas(width, height)
	debug.Logger().Debug("globe view resized", "width", width, "height", height)
}
