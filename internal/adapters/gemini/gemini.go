// Package gemini provides spotlight producers backed by Google Gemini
//
// REST speaks generateContent over plain HTTP and answers the three-field shape
// GenAI goes through google.golang.org/genai with a response schema and answers the two-field shape
package gemini

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultBaseURL is the public Generative Language endpoint
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultRESTModel is the model the REST producer asks by default
	DefaultRESTModel = "gemini-pro"
	// DefaultGenAIModel is the model the SDK producer asks by default
	DefaultGenAIModel = "gemini-2.5-flash"

	defaultUA   = "diwan-api"
	maxBodyRead = 1 << 20
)

// ErrEmptyResponse means the upstream answered without any candidate text
var ErrEmptyResponse = errors.New("gemini: response has no candidate text")

// StatusError wraps non-2xx upstream responses
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gemini: unexpected status %d", e.Status)
	}
	return fmt.Sprintf("gemini: unexpected status %d: %s", e.Status, e.Body)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// CallFunc observes one upstream call; outcome is "ok", "error", or an HTTP status code
type CallFunc func(producer, outcome string, elapsed time.Duration)

// Options configures both producers
type Options struct {
	APIKey    string
	BaseURL   string
	Model     string
	UserAgent string
	// OnCall is optional
	OnCall CallFunc
}

func (o Options) observe(producer, outcome string, d time.Duration) {
	if o.OnCall != nil {
		o.OnCall(producer, outcome, d)
	}
}
