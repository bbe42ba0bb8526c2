// Package post owns posts, likes, comments and the feed-selection query. The
// feed is assembled on read from the author's own posts and those of their
// connections; nothing is materialized.
package post

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

// feedLimit caps the fan-out-on-read query.
const feedLimit = 20

// Service manages the post/comment/like lifecycle.
type Service struct {
	posts  store.PostStore
	users  store.UserStore
	logger *slog.Logger
}

// New returns a post service.
func New(posts store.PostStore, users store.UserStore, logger *slog.Logger) Service {
	return Service{posts: posts, users: users, logger: logger}
}

// CreateInput carries post creation attributes.
type CreateInput struct {
	Content   string           `json:"content"`
	MediaURL  string           `json:"mediaUrl"`
	MediaType domain.MediaType `json:"mediaType"`
}

// Create stores a new post for the author.
func (s Service) Create(ctx context.Context, authorID string, in CreateInput) (*domain.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Post content is required")
	}
	if !in.MediaType.Valid() {
		return nil, apperr.New(apperr.InvalidRequest, "Media type must be image or video")
	}
	if in.MediaURL == "" && in.MediaType != domain.MediaNone {
		return nil, apperr.New(apperr.InvalidRequest, "Media URL is required for media posts")
	}

	p := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		Likes:     []string{},
	}
	if err := s.posts.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("post created", "post_id", p.ID, "author", authorID)
	return p, nil
}

// Feed returns the newest posts authored by the user or any of their
// connections, capped at twenty.
func (s Service) Feed(ctx context.Context, userID string) ([]domain.PostView, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	authorIDs := append([]string{userID}, user.Connections...)
	posts, err := s.posts.ListByAuthors(ctx, authorIDs, feedLimit)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, posts)
}

// PostsByUser returns every post by the given author, newest first.
func (s Service) PostsByUser(ctx context.Context, authorID string) ([]domain.PostView, error) {
	posts, err := s.posts.ListByAuthors(ctx, []string{authorID}, 0)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, posts)
}

func (s Service) getOwned(ctx context.Context, postID, requesterID, action string) (*domain.Post, error) {
	p, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Post not found")
		}
		return nil, err
	}
	if p.AuthorID != requesterID {
		return nil, apperr.New(apperr.Forbidden, "User not authorized to "+action+" this post")
	}
	return p, nil
}

// Update replaces the post content when a non-empty value is supplied;
// omission keeps the existing content.
func (s Service) Update(ctx context.Context, postID, requesterID, content string) (*domain.Post, error) {
	p, err := s.getOwned(ctx, postID, requesterID, "update")
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(content); v != "" {
		p.Content = v
	}
	if err := s.posts.UpdatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the post and cascades to all its comments.
func (s Service) Delete(ctx context.Context, postID, requesterID string) error {
	if _, err := s.getOwned(ctx, postID, requesterID, "delete"); err != nil {
		return err
	}
	if err := s.posts.DeletePostCascade(ctx, postID); err != nil {
		return err
	}
	s.logger.Info("post deleted", "post_id", postID, "author", requesterID)
	return nil
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// ToggleLike likes the post if the user has not, unlikes it otherwise.
func (s Service) ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error) {
	liked, count, err := s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Post not found")
		}
		return nil, err
	}
	return &LikeResult{Liked: liked, Likes: count}, nil
}

// AddComment attaches a comment to the post.
func (s Service) AddComment(ctx context.Context, postID, authorID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Comment content is required")
	}
	if _, err := s.posts.GetPost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Post not found")
		}
		return nil, err
	}

	c := &domain.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.posts.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CommentsForPost returns the post's comments newest first with author
// summaries.
func (s Service) CommentsForPost(ctx context.Context, postID string) ([]domain.CommentView, error) {
	comments, err := s.posts.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	authors, err := s.authorIndex(ctx, commentAuthorIDs(comments))
	if err != nil {
		return nil, err
	}
	out := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, domain.CommentView{Comment: c, Author: authors[c.AuthorID]})
	}
	return out, nil
}

// DeleteComment removes a single comment; the parent post is untouched.
func (s Service) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	c, err := s.posts.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.NotFound, "Comment not found")
		}
		return err
	}
	if c.AuthorID != requesterID {
		return apperr.New(apperr.Forbidden, "User not authorized to delete this comment")
	}
	return s.posts.DeleteComment(ctx, commentID)
}

func (s Service) withAuthors(ctx context.Context, posts []domain.Post) ([]domain.PostView, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; !ok {
			seen[p.AuthorID] = struct{}{}
			ids = append(ids, p.AuthorID)
		}
	}
	authors, err := s.authorIndex(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, domain.PostView{Post: p, Author: authors[p.AuthorID]})
	}
	return out, nil
}

func (s Service) authorIndex(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	summaries, err := s.users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.UserSummary, len(summaries))
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	return byID, nil
}

func commentAuthorIDs(comments []domain.Comment) []string {
	ids := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			ids = append(ids, c.AuthorID)
		}
	}
	return ids
}
