package repo

import (
	"context"

	"diwan/internal/modkit/repokit"
	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS community_posts (
	id             uuid PRIMARY KEY,
	author_name    text        NOT NULL,
	author_handle  text        NOT NULL CHECK (author_handle LIKE '@%'),
	avatar_color   text        NOT NULL,
	content        text        NOT NULL CHECK (char_length(content) BETWEEN 1 AND 500),
	likes_count    integer     NOT NULL DEFAULT 0 CHECK (likes_count >= 0),
	comments_count integer     NOT NULL DEFAULT 0 CHECK (comments_count >= 0),
	created_at     timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS community_posts_created_idx ON community_posts (created_at DESC, id);
`

type (
	// PG binds the Postgres implementation
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// EnsureSchema creates the posts table when missing
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return perr.FromPostgres(err, "community schema")
	}
	return nil
}

// SeedPG inserts rows inside one transaction on db; either all land or none do
func SeedPG(ctx context.Context, db repokit.TxRunner, rows []Row) error {
	return repokit.WithTx(ctx, db, NewPG(), func(r Repo) error { return Seed(ctx, r, rows) })
}

func scanRow(r store.Row) (Row, error) {
	var x Row
	err := r.Scan(&x.ID, &x.AuthorName, &x.AuthorHandle, &x.AvatarColor, &x.Content, &x.Likes, &x.Comments, &x.CreatedAt)
	return x, err
}

func (r *queries) List(ctx context.Context, limit int) ([]Row, error) {
	const sql = `
select id::text, author_name, author_handle, avatar_color, content, likes_count, comments_count, created_at
from community_posts
order by created_at desc, id
limit $1
`
	rows, err := store.Many(ctx, r.q, scanRow, sql, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list posts")
	}
	return rows, nil
}

func (r *queries) Insert(ctx context.Context, x Row) error {
	const sql = `
insert into community_posts (id, author_name, author_handle, avatar_color, content, likes_count, comments_count, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8)
on conflict (id) do nothing
`
	_, err := r.q.Exec(ctx, sql, x.ID, x.AuthorName, x.AuthorHandle, x.AvatarColor, x.Content, x.Likes, x.Comments, x.CreatedAt)
	return perr.FromPostgres(err, "insert post")
}

func (r *queries) AddLikes(ctx context.Context, id string, delta int) (int, error) {
	const sql = `
update community_posts
set likes_count = greatest(likes_count + $2, 0)
where id = $1
returning likes_count
`
	n, err := store.One(ctx, r.q, func(row store.Row) (int, error) {
		var v int
		err := row.Scan(&v)
		return v, err
	}, sql, id, delta)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return 0, perr.NotFoundf("post %q not found", id)
	}
	if err != nil {
		return 0, perr.FromPostgres(err, "like post")
	}
	return n, nil
}
