package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil stays nil")
	}

	cases := []struct {
		name  string
		pg    *pgconn.PgError
		code  ErrorCode
		field string
	}{
		{"check names column from constraint", &pgconn.PgError{Code: "23514", TableName: "community_posts", ConstraintName: "community_posts_content_check"}, ErrorCodeValidation, "content"},
		{"multi word column", &pgconn.PgError{Code: "23514", TableName: "community_posts", ConstraintName: "community_posts_likes_count_check"}, ErrorCodeValidation, "likes_count"},
		{"not null uses column name", &pgconn.PgError{Code: "23502", ColumnName: "author_handle"}, ErrorCodeValidation, "author_handle"},
		{"duplicate", &pgconn.PgError{Code: "23505", ConstraintName: "community_posts_pkey"}, ErrorCodeDuplicateKey, ""},
		{"bad uuid text", &pgconn.PgError{Code: "22P02"}, ErrorCodeInvalidArgument, ""},
		{"replica", &pgconn.PgError{Code: "25006"}, ErrorCodeUnavailable, ""},
		{"other sqlstate", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := FromPostgres(fmt.Errorf("exec: %w", c.pg), "insert post")
			e, ok := As(err)
			if !ok || e.Code() != c.code || e.Field() != c.field {
				t.Fatalf("got %+v, want code=%v field=%q", e, c.code, c.field)
			}
			var pgErr *pgconn.PgError
			if !stderrs.As(err, &pgErr) {
				t.Fatalf("pg error should remain reachable")
			}
		})
	}

	if got := FromPostgres(stderrs.New("conn reset"), "list posts"); CodeOf(got) != ErrorCodeDB {
		t.Fatalf("non pg errors become DB errors, got %v", CodeOf(got))
	}
}
