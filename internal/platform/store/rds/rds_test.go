package rds

import (
	"context"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		addr    string
		db      int
		wantErr bool
	}{
		{"url", Config{URL: "redis://:secret@cache:6380/2"}, "cache:6380", 2, false},
		{"bare", Config{URL: "localhost:6379", DB: 3}, "localhost:6379", 3, false},
		{"empty", Config{URL: "  "}, "", 0, true},
		{"bad url", Config{URL: "redis://cache:6379/notadb"}, "", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			opt, err := Options(c.cfg)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", opt)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opt.Addr != c.addr || opt.DB != c.db {
				t.Fatalf("got addr=%q db=%d, want %q/%d", opt.Addr, opt.DB, c.addr, c.db)
			}
		})
	}
}

func TestOpen_PingFailure(t *testing.T) {
	// port 1 is closed everywhere; ping fails fast
	_, err := Open(context.Background(), Config{URL: "127.0.0.1:1", PingTimeout: 500 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error")
	}
}
