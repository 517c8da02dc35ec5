package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCodes classifies the SQLSTATEs the community store can raise
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// FromPostgres wraps a pgx error with a code derived from its SQLSTATE; nil stays nil
// Check violations are named after the column encoded in the constraint, so
// community_posts_content_check becomes field "content"
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, ok := pgCodes[pgErr.Code]
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if f := fieldOf(pgErr); f != "" {
		out = WithField(out, f)
	}
	return out
}

func fieldOf(pgErr *pgconn.PgError) string {
	if c := strings.TrimSpace(pgErr.ColumnName); c != "" {
		return c
	}
	name := strings.TrimSuffix(strings.TrimSpace(pgErr.ConstraintName), "_check")
	if t := strings.TrimSpace(pgErr.TableName); t != "" && strings.HasPrefix(name, t+"_") {
		return strings.TrimPrefix(name, t+"_")
	}
	return ""
}
