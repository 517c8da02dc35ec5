package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier is what a pool and a transaction have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgQueries struct{ db pgxQuerier }

func (q pgQueries) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return q.db.Exec(ctx, sql, args...)
}

func (q pgQueries) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (q pgQueries) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.db.QueryRow(ctx, sql, args...)
}

// postgres is the pool-backed TxRunner; query logging lives on the pool's tracer
type postgres struct {
	pgQueries
	pool *pgxpool.Pool
}

func newPostgres(pool *pgxpool.Pool) *postgres {
	return &postgres{pgQueries: pgQueries{db: pool}, pool: pool}
}

func (p *postgres) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error { return fn(pgQueries{db: tx}) })
}

func (p *postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgres) Close() error {
	p.pool.Close()
	return nil
}

// PoolStats feeds the connection gauges
func (p *postgres) PoolStats() (acquired, idle int32) {
	st := p.pool.Stat()
	return st.AcquiredConns(), st.IdleConns()
}
