package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"diwan/internal/core/spotlight"
	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/logger"
)

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restRequest struct {
	Contents []restContent `json:"contents"`
}

type restResponse struct {
	Candidates []struct {
		Content restContent `json:"content"`
	} `json:"candidates"`
}

// REST calls models/{model}:generateContent once per Generate; it never retries
type REST struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewREST builds the REST producer
func NewREST(o Options) *REST {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = DefaultRESTModel
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	return &REST{
		http: &http.Client{},
		opts: o,
		log:  *logger.Named("gemini"),
		now:  time.Now,
	}
}

// Shape implements spotlight.Source
func (c *REST) Shape() spotlight.Shape { return spotlight.ThreeField }

// Generate implements spotlight.Source and returns the first candidate's first text part
func (c *REST) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(restRequest{Contents: []restContent{{Parts: []restPart{{Text: prompt}}}}})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "gemini encode request")
	}

	// the key rides in the query string, so the full URL is never logged
	endpoint := c.opts.BaseURL + "/models/" + url.PathEscape(c.opts.Model) + ":generateContent?key=" + url.QueryEscape(c.opts.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "gemini new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		c.opts.observe("rest", "error", lat)
		return "", perr.Wrap(scrub(err), perr.ErrorCodeUnavailable, "gemini do failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Debug().Err(cerr).Msg("gemini close body failed")
		}
	}()

	c.opts.observe("rest", strconv.Itoa(resp.StatusCode), lat)
	c.log.Debug().
		Str("model", c.opts.Model).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("gemini http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(tail))}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyRead))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "gemini read body")
	}
	var out restResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeJSON, "gemini decode response")
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// scrub drops the request URL from transport errors so the key never reaches logs
func scrub(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: "gemini:generateContent", Err: ue.Err}
	}
	return err
}
