package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

// CreatePost inserts a post; the sequence column records insertion order for
// stable feed ordering on equal timestamps.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []string{}
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, content, media_url, media_type, likes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING seq`,
		post.ID, post.AuthorID, post.Content, post.MediaURL, string(post.MediaType), post.Likes, now,
	).Scan(&post.Seq)
}

const postColumns = `id, author_id, content, media_url, media_type, likes, seq, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	var mediaType string
	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.MediaURL, &mediaType, &p.Likes, &p.Seq, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	p.MediaType = domain.MediaType(mediaType)
	return &p, nil
}

// GetPost fetches one post.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	return scanPost(s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
}

// UpdatePost persists content and media changes.
func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE posts SET content = $2, media_url = $3, media_type = $4, updated_at = NOW()
		WHERE id = $1`,
		post.ID, post.Content, post.MediaURL, string(post.MediaType),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeletePostCascade removes the post and all its comments in one transaction.
func (s *Store) DeletePostCascade(ctx context.Context, postID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return tx.Commit(ctx)
}

// ListByAuthors returns posts by any of the given authors, newest first with
// the sequence column breaking timestamp ties. limit <= 0 means uncapped.
func (s *Store) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = ANY($1) ORDER BY created_at DESC, seq DESC`
	args := []any{authorIDs}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ToggleLike flips userID's membership in the like set. The row lock
// serializes concurrent toggles on the same post.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback(ctx)

	var likes []string
	err = tx.QueryRow(ctx, `SELECT likes FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&likes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, store.ErrNotFound
		}
		return false, 0, err
	}

	liked := true
	next := domain.AddToSet(likes, userID)
	if len(next) == len(likes) {
		liked = false
		next = domain.RemoveFromSet(likes, userID)
	}
	if _, err := tx.Exec(ctx, `UPDATE posts SET likes = $2, updated_at = NOW() WHERE id = $1`, postID, relationSet(next)); err != nil {
		return false, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, 0, err
	}
	return liked, len(next), nil
}

// CreateComment inserts a comment.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	now := time.Now()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	return s.pool.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING seq`,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, now,
	).Scan(&comment.Seq)
}

// GetComment fetches one comment.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	var c domain.Comment
	err := s.pool.QueryRow(ctx, `
		SELECT id, post_id, author_id, content, seq, created_at, updated_at
		FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.Seq, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListCommentsByPost returns the post's comments newest first.
func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, post_id, author_id, content, seq, created_at, updated_at
		FROM comments WHERE post_id = $1
		ORDER BY created_at DESC, seq DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.Seq, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteComment removes one comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
