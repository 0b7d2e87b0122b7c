package scene

import "asciiglobe/internal/config"

// Routes maps country codes to navigation targets. Unknown codes go to
// the fallback.
type Routes struct {
	targets  map[string]string
	fallback string
}

// NewRoutes builds the route table from the manifest's countries.
func NewRoutes(m *config.Manifest) *Routes {
	r := &Routes{targets: make(map[string]string), fallback: m.DefaultRoute}
	if r.fallback == "" {
		r.fallback = "/"
	}
	for _, c := range m.Countries {
		if c.Route != "" {
			r.targets[c.Code] = c.Route
		}
	}
	return r
}

// Target returns the route for code.
func (r *Routes) Target(code string) string {
	if t, ok := r.targets[code]; ok {
		return t
	}
	return r.fallback
}
