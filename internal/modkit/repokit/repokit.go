// Package repokit binds repositories to a SQL seam and runs them in transactions
package repokit

import (
	"context"
	"fmt"

	"diwan/internal/platform/store"
)

type (
	// Queryer is what a bound repo issues SQL against
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can open transactions
	TxRunner = store.TxRunner
)

// Binder produces a repo T over some Queryer, the pool or an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds b to q and panics when q is nil
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind to nil Queryer")
	}
	return b.Bind(q)
}

// WithTx binds b inside one transaction on db and hands the repo to fn
// an error from fn rolls everything back
func WithTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	if db == nil {
		panic("repokit: transaction on nil TxRunner")
	}
	return db.Tx(ctx, func(q store.RowQuerier) error { return fn(b.Bind(q)) })
}

// MustGuard panics unless every backend of st answers
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
