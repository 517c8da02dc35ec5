// Package repo stores community posts in memory or in Postgres
package repo

import (
	"context"
	"time"

	"diwan/internal/catalog"

	"github.com/google/uuid"
)

// Repo is the storage contract for the feed
type Repo interface {
	// List returns up to limit posts, newest first
	List(ctx context.Context, limit int) ([]Row, error)
	// Insert stores r; an existing id is left untouched
	Insert(ctx context.Context, r Row) error
	// AddLikes moves the like count by delta, never below zero, and returns the new count
	AddLikes(ctx context.Context, id string, delta int) (int, error)
}

// Row is a stored post
type Row struct {
	ID           string
	AuthorName   string
	AuthorHandle string
	AvatarColor  string
	Content      string
	Likes        int
	Comments     int
	CreatedAt    time.Time
}

var seedSpace = uuid.MustParse("5b0c6d1e-2f4a-4c7b-9e11-d1a7a2f0c0de")

// SeedRows turns catalog seed posts into rows aged relative to now
// ids are derived from the content so reseeding is idempotent
func SeedRows(seeds []catalog.SeedPost, now time.Time) []Row {
	out := make([]Row, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, Row{
			ID:           uuid.NewSHA1(seedSpace, []byte(s.AuthorHandle+"\x00"+s.Content)).String(),
			AuthorName:   s.AuthorName,
			AuthorHandle: s.AuthorHandle,
			AvatarColor:  s.AvatarColor,
			Content:      s.Content,
			Likes:        s.Likes,
			Comments:     s.Comments,
			CreatedAt:    now.Add(-s.Age).UTC(),
		})
	}
	return out
}

// Seed inserts rows into r
func Seed(ctx context.Context, r Repo, rows []Row) error {
	for _, row := range rows {
		if err := r.Insert(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
