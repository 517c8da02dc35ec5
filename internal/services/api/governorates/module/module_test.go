package module_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"diwan/internal/catalog"
	"diwan/internal/core/candidates"
	modkit "diwan/internal/modkit"
	phttp "diwan/internal/platform/net/http"
	"diwan/internal/platform/testkit"
	gmod "diwan/internal/services/api/governorates/module"

	"github.com/go-chi/chi/v5"
)

func TestRoutes(t *testing.T) {
	cat := catalog.MustLoad()
	m := gmod.New(modkit.Deps{}, modkit.WithPorts(gmod.Ports{Catalog: cat, Engine: candidates.New(cat.Candidates())}))
	if m.Name() != "governorates" {
		t.Fatalf("name = %q", m.Name())
	}
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/governorates", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	var env struct {
		Data []struct {
			Slug            string `json:"slug"`
			PopulationLabel string `json:"population_label"`
			CandidateCount  int    `json:"candidate_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 8 || env.Data[1].Slug != "basra" || env.Data[1].PopulationLabel != "3.2M" {
		t.Fatalf("unexpected list: %+v", env.Data)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/governorates/erbil", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status %d", rec.Code)
	}
	testkit.MustContain(t, rec.Body.String(), `"candidates":[{"id":"cand-003"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/governorates/atlantis", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestNew_PanicsWithoutPorts(t *testing.T) {
	testkit.MustPanic(t, func() { gmod.New(modkit.Deps{}) })
}
