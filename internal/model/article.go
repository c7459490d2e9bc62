package model

import "time"

// Article is a blog post.  The slug doubles as the primary key and the
// public URL segment; only published articles are served on the public API.
type Article struct {
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CoverImage string    `json:"coverImage,omitempty"`
	Published  bool      `json:"isPublished"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
