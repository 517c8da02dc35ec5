package http

import (
	"context"
	"testing"
	"time"

	"diwan/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_ReadsEnv(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:4999")
	t.Setenv("WRITE_TIMEOUT", "90s")
	opted := false
	s := NewServer(config.New(), func(*chi.Mux) { opted = true })
	if !opted {
		t.Fatal("option not applied")
	}
	if s.Addr() != "127.0.0.1:4999" || s.srv.WriteTimeout != 90*time.Second {
		t.Fatalf("addr=%q write=%v", s.Addr(), s.srv.WriteTimeout)
	}
	if s.srv.ReadHeaderTimeout != 10*time.Second {
		t.Fatalf("read header default: %v", s.srv.ReadHeaderTimeout)
	}
	if s.Router().Mux() != s.mux {
		t.Fatal("router is not over the server mux")
	}
}

func TestServer_ShutdownEndsRunCleanly(t *testing.T) {
	t.Setenv("API_PORT", "127.0.0.1:0")
	s := NewServer(config.New())
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	t.Setenv("API_PORT", "not-an-addr")
	if err := NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatal("expected a listen error")
	}
}
