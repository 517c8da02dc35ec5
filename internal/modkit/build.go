package modkit

import (
	"net/http"
	"strings"
)

// Option configures a module at construction
type Option func(*Built)

// Built is the resolved option set a module reads in New
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName names the module in logs
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the mount path, e.g. "/candidates"
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = "/" + strings.Trim(prefix, "/") }
}

// WithMiddlewares appends middleware that wraps only this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the module's inputs; each module defines its own Ports type
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }
