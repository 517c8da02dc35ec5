package ch

import (
	"context"
	"errors"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_ParsesDSNWithoutDialing(t *testing.T) {
	cl, err := Open(context.Background(), Config{URL: "clickhouse://default:@127.0.0.1:9000/diwan", Role: "api", Tag: "test"})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if cl == nil || cl.conn == nil {
		t.Fatalf("Open returned nil client")
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://nope"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_ConnError(t *testing.T) {
	old := openConn
	t.Cleanup(func() { openConn = old })
	openConn = func(*clickhouse.Options) (driver.Conn, error) { return nil, errors.New("boom") }

	if _, err := Open(context.Background(), Config{URL: "clickhouse://127.0.0.1:9000"}); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestNilClient_Guards(t *testing.T) {
	var c *CH
	ctx := context.Background()
	if err := c.Exec(ctx, "SELECT 1"); err == nil {
		t.Fatalf("Exec on nil client should error")
	}
	if err := c.Insert(ctx, "t", [][]any{{1}}); err == nil {
		t.Fatalf("Insert on nil client should error")
	}
	if err := c.Ping(ctx); err == nil {
		t.Fatalf("Ping on nil client should error")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close on nil client should be a no-op, got %v", err)
	}
}

func TestClientInfo(t *testing.T) {
	info := clientInfo("api", "")
	if len(info.Products) != 5 {
		t.Fatalf("expected 5 products, got %d", len(info.Products))
	}
	if info.Products[0].Name != "diwan" || info.Products[0].Version != "unknown" {
		t.Fatalf("unexpected first product %+v", info.Products[0])
	}
	if info.Products[1].Version != "api" {
		t.Fatalf("unexpected role product %+v", info.Products[1])
	}
}
