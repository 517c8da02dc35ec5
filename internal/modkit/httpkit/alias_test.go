package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "diwan/internal/platform/errors"
	phttp "diwan/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type likeIn struct {
	Handle string `json:"handle" validate:"required,handle"`
}

func community() Router {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/posts/{id}", func(r *http.Request) (any, error) {
			if Param(r, "id") == "missing" {
				return nil, perr.New(perr.ErrorCodeNotFound, "post not found")
			}
			return map[string]string{"id": Param(r, "id")}, nil
		})
		PostJSON(api, "/posts/{id}/like", func(r *http.Request, in likeIn) (any, error) {
			return Created(map[string]string{"by": in.Handle}), nil
		})
		Delete(api, "/posts/{id}/like", func(*http.Request) (any, error) { return nil, errors.New("pg down") })
		Post(api, "/posts", func(*http.Request) (any, error) {
			return List([]int{1}, Page{Page: 1, Limit: 1, Total: 1, Pages: 1}), nil
		})
	})
	return r
}

func do(t *testing.T, method, path, body string) (int, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	community().Mux().ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: %v (%q)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestCall_WrapsResultAndErrors(t *testing.T) {
	code, env := do(t, "GET", "/api/v1/posts/p-9", "")
	if code != 200 || env.Data.(map[string]any)["id"] != "p-9" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	code, env = do(t, "GET", "/api/v1/posts/missing", "")
	if code != 404 || env.Code != perr.ErrorCodeNotFound || env.Error != "post not found" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	code, env = do(t, "DELETE", "/api/v1/posts/p-9/like", "")
	if code != 500 || env.Error != "internal error" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
}

func TestCall_ResponsePassesThrough(t *testing.T) {
	code, env := do(t, "POST", "/api/v1/posts", "")
	if code != 200 || env.Data.(map[string]any)["pagination"] == nil {
		t.Fatalf("code=%d env=%+v", code, env)
	}
}

func TestPostJSON_BindsAndValidates(t *testing.T) {
	code, env := do(t, "POST", "/api/v1/posts/p-9/like", `{"handle":"@rana"}`)
	if code != 201 || env.Data.(map[string]any)["by"] != "@rana" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	code, env = do(t, "POST", "/api/v1/posts/p-9/like", `{"handle":"rana"}`)
	if code != 400 || env.Field != "handle" {
		t.Fatalf("code=%d env=%+v", code, env)
	}
	code, env = do(t, "POST", "/api/v1/posts/p-9/like", `{"handle":"@rana","extra":1}`)
	if code != 400 || env.Code != perr.ErrorCodeJSON {
		t.Fatalf("unknown field: code=%d env=%+v", code, env)
	}
}

func TestJSONWith_EmptyBodyAllowed(t *testing.T) {
	type topicIn struct {
		Topic string `json:"topic"`
	}
	h := JSONWith(JSONOptions{AllowEmptyBody: true}, func(_ *http.Request, in topicIn) (any, error) { return in.Topic == "", nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/api/v1/spotlight", http.NoBody))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `"data":true`) {
		t.Fatalf("code=%d body=%s", rec.Code, rec.Body.String())
	}
}
