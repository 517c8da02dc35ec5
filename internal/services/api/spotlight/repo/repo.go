// Package repo stores spotlight outcome events in ClickHouse
package repo

import (
	"context"

	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/store"
	"diwan/internal/services/api/spotlight/domain"
)

// Table receives one row per resolution
const Table = "spotlight_events"

const schema = `CREATE TABLE IF NOT EXISTS ` + Table + ` (
	at          DateTime64(3, 'UTC'),
	request_id  String,
	topic       String,
	strategy    LowCardinality(String),
	reason      LowCardinality(String),
	degraded    Bool,
	elapsed_ms  UInt32
) ENGINE = MergeTree
ORDER BY (at, strategy)
TTL toDateTime(at) + INTERVAL 90 DAY`

// CH implements domain.EventWriter over the store seam
type CH struct {
	db store.Clickhouse
}

// NewCH constructs the repo; db must be non nil
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("spotlight repo requires a Clickhouse client")
	}
	return &CH{db: db}
}

// EnsureSchema creates the events table when missing
func (r *CH) EnsureSchema(ctx context.Context) error {
	if err := r.db.Exec(ctx, schema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "spotlight events schema")
	}
	return nil
}

// WriteEvents appends evs in one batch
func (r *CH) WriteEvents(ctx context.Context, evs []domain.Event) error {
	if len(evs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(evs))
	for _, e := range evs {
		rows = append(rows, []any{e.At.UTC(), e.RequestID, e.Topic, e.Strategy, e.Reason, e.Degraded, e.ElapsedMs})
	}
	if err := r.db.Insert(ctx, Table, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "insert %d spotlight events", len(evs))
	}
	return nil
}

var _ domain.EventWriter = (*CH)(nil)
