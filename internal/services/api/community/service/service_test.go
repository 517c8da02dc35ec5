package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"diwan/internal/catalog"
	perr "diwan/internal/platform/errors"
	"diwan/internal/platform/testkit"
	"diwan/internal/services/api/community/domain"
	"diwan/internal/services/api/community/repo"
)

var fixedNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func newSvc(t *testing.T) (*Svc, *[]string) {
	t.Helper()
	r := repo.NewMemory()
	if err := repo.Seed(context.Background(), r, repo.SeedRows(catalog.MustLoad().SeedPosts(), fixedNow)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var actions []string
	s := New(r, Options{
		Now:    func() time.Time { return fixedNow },
		NewID:  func() string { return "0b4a4c52-5a5e-4a3a-8f6e-5f8b5a9d7c11" },
		OnLike: func(a string) { actions = append(actions, a) },
	})
	return s, &actions
}

func TestAge(t *testing.T) {
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "now"},
		{2 * time.Hour, "2 hours ago"},
		{5 * time.Hour, "5 hours ago"},
		{24 * time.Hour, "1 day ago"},
	}
	for _, c := range cases {
		if got := Age(fixedNow.Add(-c.ago), fixedNow); got != c.want {
			t.Errorf("Age(-%v) = %q, want %q", c.ago, got, c.want)
		}
	}
}

func TestList_SeedsWithAges(t *testing.T) {
	s, _ := newSvc(t)
	posts, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(posts))
	}
	if posts[0].Author.Handle != "@elenavox" || posts[0].Age != "2 hours ago" || posts[0].LikesCount != 45 {
		t.Fatalf("unexpected first post: %+v", posts[0])
	}
}

func TestCreate(t *testing.T) {
	s, _ := newSvc(t)

	p, err := s.Create(context.Background(), domain.CreateInput{Content: "  Polls open at 7am  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Content != "Polls open at 7am" || p.Author.Name != "You" || p.Author.Handle != "@creator" {
		t.Fatalf("defaults not applied: %+v", p)
	}
	if p.LikesCount != 0 || p.Age != "now" || p.Author.AvatarColor == "" {
		t.Fatalf("unexpected new post: %+v", p)
	}

	posts, _ := s.List(context.Background(), 1)
	if posts[0].ID != p.ID {
		t.Fatalf("new post should be listed first, got %s", posts[0].ID)
	}
}

func TestCreate_Validation(t *testing.T) {
	s, _ := newSvc(t)
	cases := []struct {
		name  string
		in    domain.CreateInput
		field string
	}{
		{"blank", domain.CreateInput{Content: " \n\t "}, "content"},
		{"too long", domain.CreateInput{Content: strings.Repeat("ب", 501)}, "content"},
		{"handle without at", domain.CreateInput{Content: "hi", AuthorHandle: "rana"}, "author_handle"},
		{"bare at", domain.CreateInput{Content: "hi", AuthorHandle: "@"}, "author_handle"},
	}
	for _, c := range cases {
		_, err := s.Create(context.Background(), c.in)
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Errorf("%s: expected validation error, got %v", c.name, err)
			continue
		}
		if e, ok := perr.As(err); !ok || e.Field() != c.field {
			t.Errorf("%s: expected field %q, got %v", c.name, c.field, err)
		}
	}

	if _, err := s.Create(context.Background(), domain.CreateInput{Content: strings.Repeat("ب", 500)}); err != nil {
		t.Fatalf("500 runes should be accepted: %v", err)
	}
}

func TestLikeUnlike(t *testing.T) {
	s, actions := newSvc(t)
	posts, _ := s.List(context.Background(), 0)
	id := posts[0].ID

	st, err := s.Like(context.Background(), id)
	if err != nil || st.LikesCount != 46 || !st.Liked || st.ID != id {
		t.Fatalf("like: %+v %v", st, err)
	}
	st, err = s.Unlike(context.Background(), id)
	if err != nil || st.LikesCount != 45 || st.Liked {
		t.Fatalf("unlike: %+v %v", st, err)
	}
	if len(*actions) != 2 || (*actions)[0] != "like" || (*actions)[1] != "unlike" {
		t.Fatalf("hooks: %v", *actions)
	}

	if _, err := s.Like(context.Background(), "not-a-uuid"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found for bad id, got %v", err)
	}
	if _, err := s.Unlike(context.Background(), "7d0e4b8a-1111-4f00-8aaa-000000000000"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
	if len(*actions) != 2 {
		t.Fatalf("failed changes must not be reported: %v", *actions)
	}
}

func TestNew_Guards(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil, Options{}) })
}
