package domain

import "time"

// MediaType tags the optional media attached to a post.
type MediaType string

const (
	MediaNone  MediaType = ""
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Valid reports whether the media type is one of the allowed kinds.
func (m MediaType) Valid() bool {
	return m == MediaNone || m == MediaImage || m == MediaVideo
}

// Post is a feed entry authored by a user. Likes holds the set of user ids
// that currently like the post.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
	Likes     []string  `json:"likes"`
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikedBy reports whether the given user currently likes the post.
func (p *Post) LikedBy(userID string) bool { return contains(p.Likes, userID) }

// Comment belongs to a post; its lifetime is bounded by the post's.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post"`
	AuthorID  string    `json:"author"`
	Content   string    `json:"content"`
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostView is a post enriched with its author summary for API responses.
type PostView struct {
	Post
	Author UserSummary `json:"authorProfile"`
}

// CommentView is a comment enriched with its author summary.
type CommentView struct {
	Comment
	Author UserSummary `json:"authorProfile"`
}
