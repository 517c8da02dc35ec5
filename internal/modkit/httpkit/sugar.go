package httpkit

import "net/http"

func Get(r Router, path string, h func(*http.Request) (any, error))    { r.Get(path, Call(h)) }
func Post(r Router, path string, h func(*http.Request) (any, error))   { r.Post(path, Call(h)) }
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

// PostJSON mounts a bound and validated POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

// MountAPIV1 scopes mw and the routes mount registers under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
