package render

import (
	"asciiglobe/internal/mesh"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Globe shading runs from the limb to the sub-camera point.
var (
	globeLimb   = colorful.Color{R: 0.01, G: 0.02, B: 0.05}
	globeCenter = colorful.Color{R: 0.04, G: 0.12, B: 0.24}
	graticule   = colorful.Color{R: 0.16, G: 0.28, B: 0.42}
)

// Style definitions for panels and labels
var (
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 255, 255)).Underline(true)
	StyleLabelHover   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0xd2, 0x4d)).Underline(true).Bold(true)
	StylePanel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleHint         = tcell.StyleDefault.Foreground(tcell.ColorWhite).Dim(true)
)

// Characters for outline strips and box heights.
const (
	CharGlobalOutline  = '·'
	CharCountryOutline = '•'
	CharGraticule      = '·'
)

// boxRamp maps relative box height to a glyph, shortest first.
var boxRamp = []rune("▁▂▃▄▅▆▇█")

// BoxChar returns the glyph for a box whose height is frac of the maximum.
func BoxChar(frac float64) rune {
	i := int(frac * float64(len(boxRamp)))
	if i < 0 {
		i = 0
	}
	if i >= len(boxRamp) {
		i = len(boxRamp) - 1
	}
	return boxRamp[i]
}

// GlobeStyle is the background of a globe cell lit by lambert in [0, 1].
func GlobeStyle(lambert float64) tcell.Style {
	return tcell.StyleDefault.Background(toTcell(globeLimb.BlendRgb(globeCenter, lambert)))
}

// GraticuleStyle draws grid dots over a globe cell.
func GraticuleStyle(lambert float64) tcell.Style {
	bg := globeLimb.BlendRgb(globeCenter, lambert)
	return tcell.StyleDefault.Foreground(toTcell(bg.BlendRgb(graticule, lambert))).Background(toTcell(bg))
}

// OutlineStyle renders a line style as a terminal foreground. Opacity is
// folded into the color against the globe, with a floor so that faint
// lines stay visible on a terminal.
func OutlineStyle(s mesh.Style) tcell.Style {
	line := colorful.Color{R: float64(s.Color[0]) / 255, G: float64(s.Color[1]) / 255, B: float64(s.Color[2]) / 255}
	alpha := 0.35 + 0.65*s.Opacity
	st := tcell.StyleDefault.Foreground(toTcell(globeCenter.BlendRgb(line, alpha)))
	if s.Additive {
		st = st.Bold(true)
	}
	return st
}

// BoxStyle renders a vertex color as a foreground.
func BoxStyle(rgb [3]uint8) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2])))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
