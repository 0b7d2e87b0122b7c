package ui

import (
	"asciiglobe/internal/render"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// panel is a bordered, opaque box in screen cells.
type panel struct {
	x, y          int
	width, height int
}

func (p panel) contains(x, y int) bool {
	return x >= p.x && x < p.x+p.width && y >= p.y && y < p.y+p.height
}

// clear blanks the inside of the panel so the globe does not show through.
func (p panel) clear(screen tcell.Screen) {
	for row := p.y + 1; row < p.y+p.height-1; row++ {
		for col := p.x + 1; col < p.x+p.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (p panel) drawBorder(screen tcell.Screen) {
	style := render.StylePanel

	screen.SetContent(p.x, p.y, '┌', nil, style)
	screen.SetContent(p.x+p.width-1, p.y, '┐', nil, style)
	screen.SetContent(p.x, p.y+p.height-1, '└', nil, style)
	screen.SetContent(p.x+p.width-1, p.y+p.height-1, '┘', nil, style)

	for i := 1; i < p.width-1; i++ {
		screen.SetContent(p.x+i, p.y, '─', nil, style)
		screen.SetContent(p.x+i, p.y+p.height-1, '─', nil, style)
	}

	for i := 1; i < p.height-1; i++ {
		screen.SetContent(p.x, p.y+i, '│', nil, style)
		screen.SetContent(p.x+p.width-1, p.y+i, '│', nil, style)
	}
}

// drawTitle centers text on the top border.
func (p panel) drawTitle(screen tcell.Screen, text string) {
	x := p.x + (p.width-runewidth.StringWidth(text))/2
	drawText(screen, x, p.y, p.width, text, render.StylePanel)
}

// drawText writes text at (x, y), cut to maxWidth columns. It returns the
// number of columns written.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if col+w > maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}
