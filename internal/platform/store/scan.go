package store

import (
	"context"
	"fmt"

	perr "diwan/internal/platform/errors"
)

// Many runs sql and maps every row with scan. No rows is an empty slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// One is Many for statements that must yield exactly one row
// zero rows is perr.ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	got, err := Many(ctx, q, scan, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(got) == 0:
		return zero, perr.ErrNotFound
	case len(got) > 1:
		return zero, fmt.Errorf("store: want one row, got %d", len(got))
	}
	return got[0], nil
}
