package store

import (
	"context"
	"errors"
	"testing"

	perr "diwan/internal/platform/errors"
)

// tableRows replays a fixed result of single int columns
type tableRows struct {
	vals []int
	pos  int
	err  error
}

func (r *tableRows) Next() bool { r.pos++; return r.pos <= len(r.vals) }
func (r *tableRows) Err() error { return r.err }
func (r *tableRows) Close()     {}
func (r *tableRows) Scan(dest ...any) error {
	*(dest[0].(*int)) = r.vals[r.pos-1]
	return nil
}

type tableQuerier struct {
	RowQuerier
	rows *tableRows
	err  error
}

func (q tableQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func scanLikes(r Row) (int, error) {
	var n int
	err := r.Scan(&n)
	return n, err
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	got, err := Many(ctx, tableQuerier{rows: &tableRows{vals: []int{12, 7, 0}}}, scanLikes, "select likes_count")
	if err != nil || len(got) != 3 || got[0] != 12 || got[2] != 0 {
		t.Fatalf("Many = %v, %v", got, err)
	}

	empty, err := Many(ctx, tableQuerier{rows: &tableRows{}}, scanLikes, "select likes_count")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("no rows should be an empty slice: %v, %v", empty, err)
	}

	boom := errors.New("conn reset")
	if _, err := Many(ctx, tableQuerier{err: boom}, scanLikes, "select"); !errors.Is(err, boom) {
		t.Fatalf("query error lost: %v", err)
	}
	if _, err := Many(ctx, tableQuerier{rows: &tableRows{vals: []int{1}, err: boom}}, scanLikes, "select"); !errors.Is(err, boom) {
		t.Fatalf("rows error lost: %v", err)
	}

	bad := func(Row) (int, error) { return 0, boom }
	if _, err := Many(ctx, tableQuerier{rows: &tableRows{vals: []int{1}}}, bad, "select"); !errors.Is(err, boom) {
		t.Fatalf("scan error lost: %v", err)
	}
}

func TestOne(t *testing.T) {
	ctx := context.Background()

	n, err := One(ctx, tableQuerier{rows: &tableRows{vals: []int{43}}}, scanLikes, "update ... returning likes_count")
	if err != nil || n != 43 {
		t.Fatalf("One = %d, %v", n, err)
	}
	if _, err := One(ctx, tableQuerier{rows: &tableRows{}}, scanLikes, "update"); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("zero rows should be ErrNotFound, got %v", err)
	}
	if _, err := One(ctx, tableQuerier{rows: &tableRows{vals: []int{1, 2}}}, scanLikes, "update"); err == nil {
		t.Fatalf("two rows should fail")
	}
}
