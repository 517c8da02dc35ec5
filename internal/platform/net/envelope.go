// Package net builds the JSON envelope every response is written in
package net

import (
	"context"
	"net/http"

	perr "diwan/internal/platform/errors"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Wire is the response body; Data on success, Code and Error on failure
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// RequestID is the id chi's RequestID middleware put on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Reply is a success envelope
func Reply(status int, data any, reqID string) Wire {
	return Wire{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// Error picks the status for err and fills the error envelope
// only the public message leaves the process; causes stay in logs
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return http.StatusOK, Reply(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	pub := perr.WireFrom(err)
	w := Reply(status, nil, reqID)
	w.Code, w.Error, w.Field = pub.Code, pub.Message, pub.Field
	return status, w
}
