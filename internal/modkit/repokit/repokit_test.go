package repokit

import (
	"context"
	"errors"
	"testing"

	"diwan/internal/platform/store"
	"diwan/internal/platform/testkit"
)

type fakeTx struct {
	store.RowQuerier
	began, committed, rolledBack int
}

func (f *fakeTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	f.began++
	if err := fn(f); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}

type postsRepo struct{ q Queryer }

type postsBinder struct{}

func (postsBinder) Bind(q Queryer) postsRepo { return postsRepo{q: q} }

func TestMustBind(t *testing.T) {
	db := &fakeTx{}
	if r := MustBind[postsRepo](postsBinder{}, db); r.q != db {
		t.Fatalf("repo not bound to the queryer")
	}
	testkit.MustPanic(t, func() { MustBind[postsRepo](postsBinder{}, nil) })
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db := &fakeTx{}
	ctx := context.Background()

	var seen Queryer
	if err := WithTx(ctx, db, postsBinder{}, func(r postsRepo) error { seen = r.q; return nil }); err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if seen != db || db.committed != 1 {
		t.Fatalf("repo should run on the transaction and commit: %+v", db)
	}

	boom := errors.New("seed row rejected")
	if err := WithTx(ctx, db, postsBinder{}, func(postsRepo) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("error should surface, got %v", err)
	}
	if db.began != 2 || db.rolledBack != 1 {
		t.Fatalf("failed fn should roll back: %+v", db)
	}

	testkit.MustPanic(t, func() { _ = WithTx(ctx, nil, postsBinder{}, func(postsRepo) error { return nil }) })
}

type guardFunc func(context.Context) error

func (g guardFunc) Guard(ctx context.Context) error { return g(ctx) }

func TestMustGuard(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustGuard(context.Background(), guardFunc(func(context.Context) error { return nil })) })
	testkit.MustPanic(t, func() {
		MustGuard(context.Background(), guardFunc(func(context.Context) error { return errors.New("pg: refused") }))
	})
}
