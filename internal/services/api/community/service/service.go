// Package service runs the community feed
package service

import (
	"context"
	"hash/fnv"
	"strings"
	"time"
	"unicode/utf8"

	"diwan/internal/core/normalize"
	perr "diwan/internal/platform/errors"
	"diwan/internal/services/api/community/domain"
	"diwan/internal/services/api/community/repo"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Service defines the community service contract
type Service interface {
	domain.ServicePort
}

// Options are optional hooks; zero values pick sane defaults
type Options struct {
	Now   func() time.Time
	NewID func() string
	// OnLike is told "like" or "unlike" after each successful change
	OnLike func(action string)
}

var palette = []string{"purple", "sky", "emerald", "amber", "rose", "indigo"}

// Svc implements Service
type Svc struct {
	repo repo.Repo
	opt  Options
}

// New constructs the service
func New(r repo.Repo, o Options) *Svc {
	if r == nil {
		panic("community.Service requires a non nil Repo")
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.OnLike == nil {
		o.OnLike = func(string) {}
	}
	return &Svc{repo: r, opt: o}
}

// List returns the newest posts; limit is clamped to [1, MaxLimit]
func (s *Svc) List(ctx context.Context, limit int) ([]domain.Post, error) {
	switch {
	case limit <= 0:
		limit = domain.DefaultLimit
	case limit > domain.MaxLimit:
		limit = domain.MaxLimit
	}
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := s.opt.Now()
	out := make([]domain.Post, 0, len(rows))
	for _, r := range rows {
		out = append(out, toPost(r, now))
	}
	return out, nil
}

// Create validates and stores a new post
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Post, error) {
	content := normalize.Clean(in.Content)
	if content == "" {
		return domain.Post{}, perr.WithField(perr.Validationf("content is required"), "content")
	}
	if n := utf8.RuneCountInString(content); n > domain.MaxContentRunes {
		return domain.Post{}, perr.WithField(
			perr.Validationf("content must be at most %d characters, got %d", domain.MaxContentRunes, n), "content")
	}

	name := strings.TrimSpace(normalize.Sanitize(in.AuthorName))
	if name == "" {
		name = domain.DefaultAuthorName
	}
	handle := strings.TrimSpace(in.AuthorHandle)
	if handle == "" {
		handle = domain.DefaultAuthorHandle
	}
	if !strings.HasPrefix(handle, "@") || len(handle) < 2 || strings.ContainsAny(handle, " \t\r\n") {
		return domain.Post{}, perr.WithField(perr.Validationf("author_handle must start with @"), "author_handle")
	}

	row := repo.Row{
		ID:           s.opt.NewID(),
		AuthorName:   name,
		AuthorHandle: handle,
		AvatarColor:  avatarFor(handle),
		Content:      content,
		CreatedAt:    s.opt.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return domain.Post{}, err
	}
	return toPost(row, row.CreatedAt), nil
}

// Like adds one like and returns the stored count
func (s *Svc) Like(ctx context.Context, id string) (domain.LikeState, error) {
	return s.adjust(ctx, id, 1, "like")
}

// Unlike removes one like; the count stops at zero
func (s *Svc) Unlike(ctx context.Context, id string) (domain.LikeState, error) {
	return s.adjust(ctx, id, -1, "unlike")
}

func (s *Svc) adjust(ctx context.Context, id string, delta int, action string) (domain.LikeState, error) {
	id = strings.TrimSpace(id)
	if _, err := uuid.Parse(id); err != nil {
		return domain.LikeState{}, perr.NotFoundf("post %q not found", id)
	}
	n, err := s.repo.AddLikes(ctx, id, delta)
	if err != nil {
		return domain.LikeState{}, err
	}
	s.opt.OnLike(action)
	return domain.LikeState{ID: id, LikesCount: n, Liked: delta > 0}, nil
}

func toPost(r repo.Row, now time.Time) domain.Post {
	return domain.Post{
		ID:            r.ID,
		Author:        domain.Author{Name: r.AuthorName, Handle: r.AuthorHandle, AvatarColor: r.AvatarColor},
		Content:       r.Content,
		LikesCount:    r.Likes,
		CommentsCount: r.Comments,
		CreatedAt:     r.CreatedAt,
		Age:           Age(r.CreatedAt, now),
	}
}

// Age renders created relative to now, e.g. "2 hours ago"
func Age(created, now time.Time) string {
	return humanize.RelTime(created, now, "ago", "from now")
}

func avatarFor(handle string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(handle)))
	return palette[h.Sum32()%uint32(len(palette))]
}
