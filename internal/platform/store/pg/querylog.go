package pg

import (
	"context"
	"strings"
	"time"

	"diwan/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// queryLog implements pgx.QueryTracer. Arguments are counted, never logged,
// since post bodies flow through them
type queryLog struct {
	log  logger.Logger
	all  bool
	slow time.Duration
	now  func() time.Time
}

type queryStart struct {
	sql  string
	args int
	at   time.Time
}

type queryStartKey struct{}

func newQueryLog(l logger.Logger, all bool, slow time.Duration) *queryLog {
	return &queryLog{
		log:  l.With().Str("component", "pg").Logger(),
		all:  all,
		slow: slow,
		now:  time.Now,
	}
}

func (q *queryLog) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: d.SQL, args: len(d.Args), at: q.now()})
}

func (q *queryLog) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	took := q.now().Sub(st.at)
	slow := q.slow > 0 && took >= q.slow

	ev := q.log.Info()
	switch {
	case d.Err != nil || slow:
		ev = q.log.Warn()
	case !q.all:
		return
	}
	ev.Dur("took", took).
		Bool("slow", slow).
		Str("sql", strings.Join(strings.Fields(st.sql), " ")).
		Int("args", st.args).
		Int64("rows", d.CommandTag.RowsAffected()).
		Err(d.Err).
		Msg("pg query")
}

var _ pgx.QueryTracer = (*queryLog)(nil)
