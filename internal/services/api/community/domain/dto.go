// Package domain holds community feed DTOs and ports
package domain

import "time"

// Limits for the feed
const (
	MaxContentRunes = 500
	DefaultLimit    = 20
	MaxLimit        = 100

	DefaultAuthorName   = "You"
	DefaultAuthorHandle = "@creator"
)

// Author is who wrote a post
type Author struct {
	Name        string `json:"name" example:"Elena Vox"`
	Handle      string `json:"handle" example:"@elenavox"`
	AvatarColor string `json:"avatar_color" example:"purple"`
}

// Post is one entry in the feed
type Post struct {
	ID            string    `json:"id" example:"6f1c2a4e-3f7e-4a0a-9d8c-0b8a1b2c3d4e"`
	Author        Author    `json:"author"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count" example:"45"`
	CommentsCount int       `json:"comments_count" example:"12"`
	CreatedAt     time.Time `json:"created_at"`
	Age           string    `json:"age" example:"2 hours ago"`
}

// CreateInput is the body for a new post; blank author fields take defaults
type CreateInput struct {
	Content      string `json:"content" validate:"required" example:"Polling stations in Karbala open at 7am"`
	AuthorName   string `json:"author_name,omitempty" validate:"max=60" example:"Rana"`
	AuthorHandle string `json:"author_handle,omitempty" validate:"max=31" example:"@rana"`
}

// LikeState is the authoritative like count after a like or unlike
type LikeState struct {
	ID         string `json:"id"`
	LikesCount int    `json:"likes_count" example:"46"`
	Liked      bool   `json:"liked" example:"true"`
}
