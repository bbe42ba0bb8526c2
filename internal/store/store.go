// Package store declares the persistence contracts the services depend on.
// Implementations live in store/postgres (pgx) and store/memory (tests,
// seeding).
package store

import (
	"context"
	"errors"

	"github.com/talentlink/talentlink/internal/domain"
)

// ErrNotFound indicates a record was not located.
var ErrNotFound = errors.New("store: not found")

// ErrDuplicate indicates a uniqueness violation, e.g. an already-registered
// email.
var ErrDuplicate = errors.New("store: duplicate")

// UserStore persists users, their relation sets and their owned
// sub-collections.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile persists the mutable profile scalar fields of user.
	UpdateProfile(ctx context.Context, user *domain.User) error

	// SaveRelations writes the relation sets of both users as one atomic
	// unit. Either both records reflect the new sets afterwards or neither
	// does; a one-sided mirror is a store defect.
	SaveRelations(ctx context.Context, a, b *domain.User) error

	// ReplaceExperience and ReplaceEducation overwrite the owned
	// sub-collection of the given user.
	ReplaceExperience(ctx context.Context, userID string, entries []domain.Experience) error
	ReplaceEducation(ctx context.Context, userID string, entries []domain.Education) error

	// SearchUsers returns up to limit summaries whose first name, last name
	// or email contains query case-insensitively. An empty query matches
	// everyone.
	SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserSummary, error)

	// GetSummaries resolves ids to summaries, skipping ids that no longer
	// exist.
	GetSummaries(ctx context.Context, ids []string) ([]domain.UserSummary, error)
}

// PostStore persists posts and their owned comments.
type PostStore interface {
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error

	// DeletePostCascade removes the post and every comment referencing it as
	// one atomic unit.
	DeletePostCascade(ctx context.Context, postID string) error

	// ListByAuthors returns posts by any of the given authors, newest first
	// with insertion order breaking timestamp ties. limit <= 0 means
	// uncapped.
	ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]domain.Post, error)

	// ToggleLike adds userID to the post's like set if absent, removes it if
	// present, serializing the read-modify-write per post. It reports
	// whether the post is now liked and the new like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, count int, err error)

	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}
