package repo

import (
	"context"
	"sort"
	"sync"

	perr "diwan/internal/platform/errors"
)

// Memory keeps posts in process; the zero value is not usable, use NewMemory
type Memory struct {
	mu    sync.RWMutex
	posts map[string]*Row
}

// NewMemory constructs an empty store
func NewMemory() *Memory {
	return &Memory{posts: map[string]*Row{}}
}

// List implements Repo
func (m *Memory) List(_ context.Context, limit int) ([]Row, error) {
	m.mu.RLock()
	out := make([]Row, 0, len(m.posts))
	for _, p := range m.posts {
		out = append(out, *p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Insert implements Repo
func (m *Memory) Insert(_ context.Context, r Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[r.ID]; ok {
		return nil
	}
	m.posts[r.ID] = &r
	return nil
}

// AddLikes implements Repo
func (m *Memory) AddLikes(_ context.Context, id string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return 0, perr.NotFoundf("post %q not found", id)
	}
	p.Likes = max(0, p.Likes+delta)
	return p.Likes, nil
}

var _ Repo = (*Memory)(nil)
