package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

// CreateUser inserts a user record with empty relation sets.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	now := time.Now()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password, headline, summary, profile_picture, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Password,
		user.Headline, user.Summary, user.ProfilePicture, now,
	)
	return mapErr(err)
}

const userColumns = `id, first_name, last_name, email, password, headline, summary, profile_picture,
	connections, sent_requests, pending_requests, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password,
		&u.Headline, &u.Summary, &u.ProfilePicture,
		&u.Connections, &u.SentRequests, &u.PendingRequests,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID loads the user together with its experience and education
// collections.
func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if u.Experience, err = s.listExperience(ctx, id); err != nil {
		return nil, err
	}
	if u.Education, err = s.listEducation(ctx, id); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail looks a user up by lowercased email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email)))
}

// UpdateProfile persists the mutable profile scalar fields.
func (s *Store) UpdateProfile(ctx context.Context, user *domain.User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, headline = $4, summary = $5, profile_picture = $6, updated_at = NOW()
		WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Headline, user.Summary, user.ProfilePicture,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SaveRelations updates both users' relation sets inside one transaction so a
// failed second write never leaves a one-sided mirror behind.
func (s *Store) SaveRelations(ctx context.Context, a, b *domain.User) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range []*domain.User{a, b} {
		tag, err := tx.Exec(ctx, `
			UPDATE users
			SET connections = $2, sent_requests = $3, pending_requests = $4, updated_at = NOW()
			WHERE id = $1`,
			u.ID, relationSet(u.Connections), relationSet(u.SentRequests), relationSet(u.PendingRequests),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return store.ErrNotFound
		}
	}
	return tx.Commit(ctx)
}

// relationSet never sends NULL for an empty set.
func relationSet(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// ReplaceExperience rewrites the user's experience collection in order.
func (s *Store) ReplaceExperience(ctx context.Context, userID string, entries []domain.Experience) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := userExists(ctx, tx, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM experiences WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO experiences (id, user_id, title, company, location, from_date, to_date, current, description, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, userID, e.Title, e.Company, e.Location, e.From, e.To, e.Current, e.Description, i,
		); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceEducation rewrites the user's education collection in order.
func (s *Store) ReplaceEducation(ctx context.Context, userID string, entries []domain.Education) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := userExists(ctx, tx, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM educations WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO educations (id, user_id, school, degree, field_of_study, from_date, to_date, current, description, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, userID, e.School, e.Degree, e.FieldOfStudy, e.From, e.To, e.Current, e.Description, i,
		); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = NOW() WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func userExists(ctx context.Context, tx pgx.Tx, userID string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) listExperience(ctx context.Context, userID string) ([]domain.Experience, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, company, location, from_date, to_date, current, description
		FROM experiences WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) listEducation(ctx context.Context, userID string) ([]domain.Education, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, school, degree, field_of_study, from_date, to_date, current, description
		FROM educations WHERE user_id = $1 ORDER BY position`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Education
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SearchUsers matches the query case-insensitively against name and email
// fields; an empty query matches everyone.
func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserSummary, error) {
	pattern := "%" + query + "%"
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, headline, profile_picture
		FROM users
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		ORDER BY id
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// GetSummaries resolves ids to summaries, preserving the order of ids and
// skipping ids that no longer exist.
func (s *Store) GetSummaries(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	if len(ids) == 0 {
		return []domain.UserSummary{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, first_name, last_name, headline, profile_picture
		FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.UserSummary, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}
	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func scanSummaries(rows pgx.Rows) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Headline, &u.ProfilePicture); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
