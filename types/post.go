package types

import "time"

// Post represents an article written by a user.
type Post struct {
	// ID is the unique identifier of the post.
	ID string `json:"id" db:"id"`

	// Title is the post headline. Never empty.
	Title string `json:"title" db:"title"`

	// Content is the post body. Never empty.
	Content string `json:"content" db:"content"`

	// Published indicates whether the post is publicly visible.
	Published bool `json:"published" db:"published"`

	// AuthorID references the user that owns the post.
	AuthorID string `json:"authorId" db:"author_id"`

	// CreatedAt is the timestamp when the post was created.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the post.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
