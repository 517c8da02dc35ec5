package modkit

import (
	"net/http"

	phttp "diwan/internal/platform/net/http"
)

// Base implements MountRoutes and Name; modules embed it and add Ports
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	routes func(phttp.Router)
}

// NewBase pairs the built options with the module's route registration
// a module without a name or prefix is a wiring bug and panics here
func NewBase(b Built, routes func(phttp.Router)) Base {
	if b.Name == "" || b.Prefix == "" || b.Prefix == "/" {
		panic("modkit: module needs a name and a non-root prefix")
	}
	return Base{name: b.Name, prefix: b.Prefix, mw: b.Mw, routes: routes}
}

// MountRoutes mounts the routes under the prefix, behind the module middleware
func (m Base) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(sub phttp.Router) {
		sub.Use(m.mw...)
		if m.routes != nil {
			m.routes(sub)
		}
	})
}

// Name returns the module name
func (m Base) Name() string { return m.name }
