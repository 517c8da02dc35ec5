// Package http is the routing seam, the server, and the reply helpers handlers return through
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "diwan/internal/platform/net"
)

// Envelope is the body of every reply
type Envelope = pnet.Wire

// Page is the pagination block of a list reply
type Page struct {
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"12"`
	Total int `json:"total" example:"40"`
	Pages int `json:"pages" example:"4"`
}

// Response is what return-style handlers produce; an error Body becomes an error envelope
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handle adapts a Response producer to a Handler
func Handle(fn func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		fn(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok {
		status, body := pnet.Error(err, reqID)
		JSON(w, status, body)
		return
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, pnet.Reply(status, resp.Body, reqID))
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// Error replies with the status perr maps err to
func Error(err error) Response { return Response{Body: err} }

// List is a 200 with items and their page
func List(items any, p Page) Response {
	return OK(struct {
		Items      any  `json:"items"`
		Pagination Page `json:"pagination"`
	}{items, p})
}
