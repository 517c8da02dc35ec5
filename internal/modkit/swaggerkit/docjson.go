package swaggerkit

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	perr "diwan/internal/platform/errors"
	phttp "diwan/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Info is the document header; BasePath is the API root paths are relative to, e.g. /api/v1
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	BasePath    string `json:"-"`
}

type document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Servers    []server                        `json:"servers"`
	Paths      map[string]map[string]operation `json:"paths"`
	Components components                      `json:"components"`
}

type server struct {
	URL string `json:"url"`
}

type operation struct {
	Tags        []string            `json:"tags"`
	OperationID string              `json:"operationId"`
	Parameters  []parameter         `json:"parameters,omitempty"`
	Responses   map[string]response `json:"responses"`
}

type parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Schema   schema `json:"schema"`
}

type response struct {
	Description string               `json:"description"`
	Content     map[string]mediaType `json:"content,omitempty"`
}

type mediaType struct {
	Schema  schema         `json:"schema"`
	Example phttp.Envelope `json:"example"`
}

type schema struct {
	Ref        string            `json:"$ref,omitempty"`
	Type       string            `json:"type,omitempty"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type components struct {
	Schemas map[string]schema `json:"schemas"`
}

// envelopeSchema mirrors the error side of phttp.Envelope
var envelopeSchema = schema{
	Type: "object",
	Properties: map[string]schema{
		"status_code": {Type: "integer"},
		"status":      {Type: "string"},
		"code":        {Type: "integer"},
		"error":       {Type: "string"},
		"field":       {Type: "string"},
		"request_id":  {Type: "string"},
	},
	Required: []string{"status_code", "status"},
}

func errorReply(status int, code perr.ErrorCode, msg string) response {
	text := http.StatusText(status)
	ex := phttp.Envelope{StatusCode: status, Status: text, Code: code, Error: msg, RequestID: "diwan/abc-000001"}
	return response{Description: text, Content: map[string]mediaType{
		"application/json": {Schema: schema{Ref: "#/components/schemas/ErrorResponse"}, Example: ex},
	}}
}

var paramRe = regexp.MustCompile(`\{([^}/:]+)(?::[^}]*)?\}`)

// serveDocJSON derives an OpenAPI 3 document from the routes mounted on root
// every operation gets the envelope's 400 and 500 next to its 200
func serveDocJSON(root phttp.Router, info Info) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		base := info.BasePath
		doc := document{
			OpenAPI:    "3.0.3",
			Info:       info,
			Servers:    []server{{URL: base}},
			Paths:      map[string]map[string]operation{},
			Components: components{Schemas: map[string]schema{"ErrorResponse": envelopeSchema}},
		}
		if base == "" {
			doc.Servers[0].URL = "/"
		}
		if routes, ok := root.Mux().(chi.Routes); ok {
			_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
				if !strings.HasPrefix(route, base+"/") || strings.HasSuffix(route, "*") {
					return nil
				}
				p := strings.TrimPrefix(route, base)
				if len(p) > 1 {
					p = strings.TrimSuffix(p, "/")
				}
				if doc.Paths[p] == nil {
					doc.Paths[p] = map[string]operation{}
				}
				doc.Paths[p][strings.ToLower(method)] = newOperation(method, p)
				return nil
			})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

func newOperation(method, path string) operation {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	var id strings.Builder
	id.WriteString(strings.ToLower(method))
	for _, s := range segs {
		s, _, _ = strings.Cut(strings.Trim(s, "{}"), ":")
		for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' }) {
			id.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	op := operation{
		Tags:        []string{segs[0]},
		OperationID: id.String(),
		Responses: map[string]response{
			"200": {Description: "OK"},
			"400": errorReply(http.StatusBadRequest, perr.ErrorCodeValidation, "content is required"),
			"500": errorReply(http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"),
		},
	}
	for _, m := range paramRe.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, parameter{Name: m[1], In: "path", Required: true, Schema: schema{Type: "string"}})
	}
	return op
}
