package mesh

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HueRange is a pair of hues interpolated by normalized amount. Hues above
// 1 wrap around the color wheel.
type HueRange [2]float64

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ValueColor returns the vertex color for a normalized amount in [0, 1].
// Hue runs across hues; lightness rises with amount unless invert is set,
// in which case higher values are darker.
func ValueColor(hues HueRange, amount float64, invert bool) [3]uint8 {
	hue := math.Mod(lerp(hues[0], hues[1], amount), 1)
	lightness := lerp(0.4, 1.0, amount)
	if invert {
		lightness = lerp(0.85, 0.25, amount)
	}
	r, g, b := colorful.Hsl(hue*360, 1, lightness).Clamped().RGB255()
	return [3]uint8{r, g, b}
}
