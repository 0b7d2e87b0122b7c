package ui

import (
	"fmt"
	"sync"
	"time"

	"asciiglobe/internal/debug"
	"asciiglobe/internal/render"
	"asciiglobe/internal/scene"

	"github.com/gdamore/tcell/v2"
)

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewModeGlobe ViewMode = iota
	ViewModeDetail
)

// FPS is the tick rate while the camera or a cross-fade is moving.
const FPS = 30

const (
	keyRotateStep  = 0.15 // radians per key press
	dragRotateStep = 0.02 // radians per dragged cell
	zoomStep       = 0.9
)

const (
	listWidth    = 30
	detailWidth  = 50
	detailHeight = 6
)

const hint = " drag/arrows rotate  +/- zoom  tab layer  click country  q quit "

// Options configures a new App.
type Options struct {
	CellAspect float64 // character cell height/width
	Layer      string  // initially selected layer key, first layer if empty
}

// App is the main application controller
type App struct {
	screen   tcell.Screen
	scene    *scene.Scene
	session  *scene.Session
	tweens   *scene.Tweens
	layers   *scene.Controller
	camera   *scene.Camera
	controls *scene.OrbitControls
	picker   *scene.Picker

	globeView   *GlobeView
	listView    *ListView
	detailView  *DetailView
	currentView ViewMode

	dragging bool
	dragged  bool
	lastX    int
	lastY    int
	now      func() time.Time
	quit     chan struct{}
	quitOnce sync.Once
}

// NewApp creates a new application on the terminal
func NewApp(sc *scene.Scene, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	return newApp(screen, sc, opts), nil
}

func newApp(screen tcell.Screen, sc *scene.Scene, opts Options) *App {
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()

	width, height := screen.Size()

	session := scene.NewSession()
	tweens := &scene.Tweens{}
	layers := scene.NewController(sc.Layers, session, tweens)
	camera := scene.NewCamera()
	controls := scene.NewOrbitControls(camera)
	controls.OnChange = func() { session.RequestRender() }

	if opts.Layer == "" || !layers.Select(opts.Layer) {
		if opts.Layer != "" {
			debug.Warn("unknown layer", "layer", opts.Layer)
		}
		if len(sc.Layers) > 0 {
			layers.Select(sc.Layers[0].Key)
		}
	}

	a := &App{
		screen:   screen,
		scene:    sc,
		session:  session,
		tweens:   tweens,
		layers:   layers,
		camera:   camera,
		controls: controls,
		picker: &scene.Picker{
			Camera:     camera,
			Labels:     sc.Labels,
			Features:   sc.Countries,
			CellAspect: opts.CellAspect,
		},
		globeView:   NewGlobeView(width, height, sc, layers, camera, opts.CellAspect),
		listView:    NewListView(layers, 0, 0, listWidth, 3),
		detailView:  NewDetailView(0, 0, detailWidth, detailHeight),
		currentView: ViewModeGlobe,
		now:         time.Now,
		quit:        make(chan struct{}),
	}
	a.layout(width, height)
	return a
}

// Run starts the application main loop
func (a *App) Run() error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	go a.screen.ChannelEvents(events, a.quit)

	ticker := time.NewTicker(time.Second / FPS)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil // Quit requested
			}

		case <-ticker.C:
			a.update()
		}
	}
}

// update steps animations and draws a frame if one was requested
func (a *App) update() {
	if a.tweens.Running() > 0 {
		a.tweens.Update(a.now())
		a.session.RequestRender()
	}
	a.controls.Update()

	if a.session.TakeRender() {
		a.render()
	}
}

// render renders the current view to the screen
func (a *App) render() {
	if debug.Enabled() {
		start := a.now()
		defer func() { debug.Logger().Debug("frame rendered", "took", a.now().Sub(start)) }()
	}
	a.screen.Clear()

	a.globeView.Draw(a.screen, a.session.Hover())

	switch a.currentView {
	case ViewModeGlobe:
		a.listView.Draw(a.screen)
	case ViewModeDetail:
		a.detailView.Draw(a.screen)
	}

	width, height := a.screen.Size()
	drawText(a.screen, width-len(hint), height-1, width, hint, render.StyleHint)

	a.screen.Show()
}

// handleEvent processes keyboard and mouse events
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		a.handleMouse(ev)

	case *tcell.EventResize:
		a.handleResize()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if a.currentView == ViewModeDetail {
			a.currentView = ViewModeGlobe
			a.session.RequestRender()
		} else {
			a.stop()
			return false
		}

	case tcell.KeyEnter:
		if code := a.session.Hover(); code != "" && a.currentView == ViewModeGlobe {
			a.showCountry(code)
		}

	case tcell.KeyTab:
		a.layers.Next()

	case tcell.KeyBacktab:
		a.layers.Prev()

	case tcell.KeyUp:
		a.controls.Rotate(0, keyRotateStep)

	case tcell.KeyDown:
		a.controls.Rotate(0, -keyRotateStep)

	case tcell.KeyLeft:
		a.controls.Rotate(-keyRotateStep, 0)

	case tcell.KeyRight:
		a.controls.Rotate(keyRotateStep, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.stop()
			return false

		case 'r', 'R':
			a.session.RequestRender()

		case '+', '=':
			a.controls.Zoom(zoomStep)

		case '-', '_':
			a.controls.Zoom(1 / zoomStep)

		case ']':
			a.layers.Next()

		case '[':
			a.layers.Prev()

		case 'w', 'W':
			a.controls.Rotate(0, keyRotateStep)

		case 's', 'S':
			a.controls.Rotate(0, -keyRotateStep)

		case 'a', 'A':
			a.controls.Rotate(-keyRotateStep, 0)

		case 'd', 'D':
			a.controls.Rotate(keyRotateStep, 0)
		}
	}
	return true
}

// handleMouse turns a press and release in one place into a click, and a
// press followed by motion into a drag.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		if a.dragging && (x != a.lastX || y != a.lastY) {
			a.controls.Rotate(-float64(x-a.lastX)*dragRotateStep, float64(y-a.lastY)*dragRotateStep*a.picker.CellAspect)
			a.dragged = true
		}
		if !a.dragging {
			a.dragging, a.dragged = true, false
		}
		a.lastX, a.lastY = x, y

	case buttons&tcell.WheelUp != 0:
		a.controls.Zoom(zoomStep)

	case buttons&tcell.WheelDown != 0:
		a.controls.Zoom(1 / zoomStep)

	default:
		if a.dragging && !a.dragged {
			a.click(x, y)
		}
		a.dragging = false
		a.hover(x, y)
	}
}

func (a *App) click(x, y int) {
	if a.currentView == ViewModeGlobe {
		if i := a.listView.EntryAt(x, y); i >= 0 {
			a.layers.Select(a.layers.Layers()[i].Key)
			return
		}
	} else if a.detailView.contains(x, y) {
		return
	}

	vp := a.globeView.Viewport()
	if code, ok := a.picker.Pick(x, y, vp.Width, vp.Height); ok {
		a.showCountry(code)
	}
}

func (a *App) hover(x, y int) {
	vp := a.globeView.Viewport()
	code := ""
	if i := a.picker.LabelAt(x, y, vp.Width, vp.Height); i >= 0 {
		code = a.picker.Labels[i].Code
	}
	a.session.SetHover(code)
}

// showCountry opens the detail view for a picked country
func (a *App) showCountry(code string) {
	route := a.scene.Routes.Target(code)
	a.session.SetCountry(code)
	a.detailView.SetCountry(code, a.countryName(code), route)
	a.currentView = ViewModeDetail
	a.session.RequestRender()
	debug.Logger().Info("country picked", "country", code, "route", route)
}

func (a *App) countryName(code string) string {
	for _, l := range a.scene.Labels {
		if l.Code == code {
			return l.Name
		}
	}
	for _, f := range a.scene.Countries {
		if f.Code == code && f.Name != "" {
			return f.Name
		}
	}
	return code
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	width, height := a.screen.Size()
	a.globeView.UpdateDimensions(width, height)
	a.layout(width, height)
	a.session.RequestRender()
}

// layout places the panels in the lower-left corner above the hint line
func (a *App) layout(width, height int) {
	listHeight := min(len(a.layers.Layers())+2, max(height-1, 3))
	a.listView.UpdateDimensions(0, height-1-listHeight, min(listWidth, width), listHeight)
	a.detailView.UpdateDimensions(0, height-1-detailHeight, min(detailWidth, width), detailHeight)
}

func (a *App) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	a.stop()

	if a.screen != nil {
		a.screen.Fini()
	}
}
