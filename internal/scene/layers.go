package scene

import (
	"time"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/mesh"
)

// FadeDuration is how long a morph cross-fade takes.
const FadeDuration = 500 * time.Millisecond

// Layer is one selectable entry of the layer list. Mesh names the mesh it
// shows: a raster key, or a morph group key with Target set to the morph
// target index.
type Layer struct {
	Key    string
	Name   string
	Mesh   string
	Morph  bool
	Target int
}

// Controller owns layer selection: which mesh is visible and the influence
// vector of every morph mesh.
type Controller struct {
	layers     []Layer
	active     int
	visible    string
	influences map[string][]float64
	session    *Session
	tweens     *Tweens
	now        func() time.Time
}

// NewController builds a controller over layers. Morph meshes get an
// influence vector sized to their highest target index.
func NewController(layers []Layer, session *Session, tweens *Tweens) *Controller {
	c := &Controller{
		layers:     layers,
		active:     -1,
		influences: make(map[string][]float64),
		session:    session,
		tweens:     tweens,
		now:        time.Now,
	}
	for _, l := range layers {
		if !l.Morph {
			continue
		}
		if n := l.Target + 1; n > len(c.influences[l.Mesh]) {
			grown := make([]float64, n)
			copy(grown, c.influences[l.Mesh])
			c.influences[l.Mesh] = grown
		}
	}
	return c
}

// Layers returns the entries in list order.
func (c *Controller) Layers() []Layer {
	return c.layers
}

// Active returns the index of the active entry, or -1.
func (c *Controller) Active() int {
	return c.active
}

// Select activates the layer with key. It returns false for unknown keys.
func (c *Controller) Select(key string) bool {
	for i, l := range c.layers {
		if l.Key == key {
			c.selectIndex(i)
			return true
		}
	}
	return false
}

// Next activates the entry after the active one, wrapping around.
func (c *Controller) Next() {
	if len(c.layers) > 0 {
		c.selectIndex((c.active + 1) % len(c.layers))
	}
}

// Prev activates the entry before the active one, wrapping around.
func (c *Controller) Prev() {
	if len(c.layers) > 0 {
		c.selectIndex((c.active - 1 + len(c.layers)) % len(c.layers))
	}
}

func (c *Controller) selectIndex(i int) {
	l := c.layers[i]
	c.active = i

	if l.Morph {
		inf := c.influences[l.Mesh]
		to := make([]float64, len(inf))
		to[l.Target] = 1
		if c.visible == l.Mesh {
			c.tweens.Start(inf, to, FadeDuration, c.now())
		} else {
			copy(inf, to)
		}
	}
	c.visible = l.Mesh

	debug.Logger().Debug("layer selected", "layer", l.Key, "mesh", l.Mesh)
	if c.session != nil {
		c.session.SetLayer(l.Key)
		c.session.RequestRender()
	}
}

// Visible reports whether the mesh named key is shown.
func (c *Controller) Visible(key string) bool {
	return key != "" && c.visible == key
}

// VisibleMesh returns the name of the shown mesh, "" before any selection.
func (c *Controller) VisibleMesh() string {
	return c.visible
}

// Slots returns the active blend slots of a morph mesh.
func (c *Controller) Slots(key string) mesh.Slots {
	return mesh.ActiveSlots(c.influences[key])
}

// Influences returns the live influence vector of a morph mesh.
func (c *Controller) Influences(key string) []float64 {
	return c.influences[key]
}
