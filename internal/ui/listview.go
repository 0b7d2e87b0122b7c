package ui

import (
	"asciiglobe/internal/render"
	"asciiglobe/internal/scene"

	"github.com/gdamore/tcell/v2"
)

const activeMarker = '▸'

// ListView displays the selectable layers with a marker on the active one
type ListView struct {
	layers       *scene.Controller
	scrollOffset int
	maxVisible   int
	panel
}

// NewListView creates a new layer list view
func NewListView(layers *scene.Controller, x, y, width, height int) *ListView {
	l := &ListView{layers: layers}
	l.UpdateDimensions(x, y, width, height)
	return l
}

// adjustScroll keeps the active entry visible
func (l *ListView) adjustScroll() {
	active := l.layers.Active()
	if active >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = active - l.maxVisible + 1
	}

	if active < l.scrollOffset {
		l.scrollOffset = active
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// EntryAt returns the layer index shown at screen cell (x, y), or -1.
func (l *ListView) EntryAt(x, y int) int {
	if x <= l.x || x >= l.x+l.width-1 || y <= l.y || y >= l.y+l.height-1 {
		return -1
	}
	i := l.scrollOffset + y - l.y - 1
	if i >= len(l.layers.Layers()) {
		return -1
	}
	return i
}

// Draw renders the list view to the screen
func (l *ListView) Draw(screen tcell.Screen) {
	l.adjustScroll()
	l.clear(screen)
	l.drawBorder(screen)
	l.drawTitle(screen, "Layers")

	layers := l.layers.Layers()
	visibleCount := min(l.maxVisible, len(layers)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		index := l.scrollOffset + i
		layer := layers[index]

		style := render.StyleListItem
		marker := ' '
		if index == l.layers.Active() {
			style = render.StyleListSelected
			marker = activeMarker
		}

		x := l.x + 1
		y := l.y + i + 1
		inner := l.width - 2
		screen.SetContent(x, y, marker, nil, style)
		n := 1 + drawText(screen, x+1, y, inner-1, layer.Name, style)
		for j := n; j < inner; j++ {
			screen.SetContent(x+j, y, ' ', nil, style)
		}
	}

	if len(layers) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StylePanel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *ListView) UpdateDimensions(x, y, width, height int) {
	l.panel = panel{x: x, y: y, width: width, height: height}
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}
