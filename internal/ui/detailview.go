package ui

import (
	"fmt"

	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
)

// DetailView displays the picked country and where it links to
type DetailView struct {
	code, name string
	route      string
	panel
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{panel: panel{x: x, y: y, width: width, height: height}}
}

// SetCountry sets the country to display. An empty code shows the empty
// panel.
func (d *DetailView) SetCountry(code, name, route string) {
	d.code, d.name, d.route = code, name, route
}

// Code returns the displayed country code
func (d *DetailView) Code() string {
	return d.code
}

// Route returns the displayed route target
func (d *DetailView) Route() string {
	return d.route
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	d.clear(screen)
	d.drawBorder(screen)

	if d.code == "" {
		text := "No country selected"
		drawText(screen, d.x+(d.width-len(text))/2, d.y+d.height/2, d.width-2, text, render.StylePanel)
		return
	}

	d.drawTitle(screen, "Country")

	lines := []string{
		fmt.Sprintf("Name:   %s", d.name),
		fmt.Sprintf("Code:   %s", d.code),
		fmt.Sprintf("Route:  %s", d.route),
	}

	y := d.y + 1
	for i, line := range lines {
		if y+i >= d.y+d.height-1 {
			break
		}
		drawText(screen, d.x+2, y+i, d.width-4, line, render.StylePanel)
	}

	instructions := "Press ESC to return"
	drawText(screen, d.x+(d.width-len(instructions))/2, d.y+d.height-1, d.width, instructions, render.StyleHint)
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.panel = panel{x: x, y: y, width: width, height: height}
}
