// Package httpkit is what service modules import for routing and replies
package httpkit

import (
	"net/http"

	phttp "diwan/internal/platform/net/http"
	"diwan/internal/platform/net/http/bind"
)

type (
	Envelope    = phttp.Envelope
	Page        = phttp.Page
	Response    = phttp.Response
	Handler     = phttp.Handler
	Router      = phttp.Router
	JSONOptions = bind.JSONOptions
)

func Created(data any) Response { return phttp.Created(data) }

func List(items any, p Page) Response { return phttp.List(items, p) }

// Param is the {name} path segment
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// reply turns a handler result into a Response; handlers may return a Response to pick the status
func reply(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// Call adapts a handler with no body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

// JSON binds and validates the body into T before fn runs
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return JSONWith(bind.JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}, fn)
}

// JSONWith is JSON with explicit binding options
func JSONWith[T any](o JSONOptions, fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, o)
		if err != nil {
			return phttp.Error(err)
		}
		return reply(fn(r, in))
	})
}
