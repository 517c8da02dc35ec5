package gemini

import (
	"context"
	"errors"
	"strconv"
	"time"

	"diwan/internal/core/spotlight"
	perr "diwan/internal/platform/errors"

	"google.golang.org/genai"
)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// GenAI asks the SDK for a schema constrained {quote, handle} object
type GenAI struct {
	model    string
	opts     Options
	generate generateFunc
	now      func() time.Time
}

// NewGenAI builds the SDK producer; the client is created eagerly so a bad key format fails at start
func NewGenAI(ctx context.Context, o Options) (*GenAI, error) {
	if o.Model == "" {
		o.Model = DefaultGenAIModel
	}
	cc := &genai.ClientConfig{APIKey: o.APIKey, Backend: genai.BackendGeminiAPI}
	if o.BaseURL != "" && o.BaseURL != DefaultBaseURL {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: o.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "genai client")
	}
	return &GenAI{model: o.Model, opts: o, generate: client.Models.GenerateContent, now: time.Now}, nil
}

// Shape implements spotlight.Source
func (g *GenAI) Shape() spotlight.Shape { return spotlight.TwoField }

// Generate implements spotlight.Source
func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	start := g.now()
	resp, err := g.generate(ctx, g.model, genai.Text(prompt), responseConfig())
	lat := g.now().Sub(start)
	if err != nil {
		if se := statusOf(err); se != nil {
			g.opts.observe("genai", strconv.Itoa(se.Status), lat)
			return "", se
		}
		g.opts.observe("genai", "error", lat)
		return "", err
	}
	g.opts.observe("genai", "200", lat)

	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func responseConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"quote": {
					Type:        genai.TypeString,
					Description: "An inspiring quote from a fictional creator about civic technology in Iraq.",
				},
				"handle": {
					Type:        genai.TypeString,
					Description: "A fictional creator handle, starting with '@'.",
				},
			},
			Required: []string{"quote", "handle"},
		},
	}
}

// statusOf maps SDK API errors onto StatusError
func statusOf(err error) *StatusError {
	var ae genai.APIError
	if errors.As(err, &ae) {
		return &StatusError{Status: ae.Code, Body: ae.Message}
	}
	var pae *genai.APIError
	if errors.As(err, &pae) && pae != nil {
		return &StatusError{Status: pae.Code, Body: pae.Message}
	}
	return nil
}
