// Package memory implements the store contracts on in-process maps. It backs
// the service tests and the demo seeding utility; a single mutex serializes
// every mutation, which satisfies the mirrored-write and read-modify-write
// contracts trivially.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

// Store holds all records in memory.
type Store struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	byEmail  map[string]string
	posts    map[string]*domain.Post
	comments map[string]*domain.Comment
	seq      int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		byEmail:  make(map[string]string),
		posts:    make(map[string]*domain.Post),
		comments: make(map[string]*domain.Comment),
	}
}

var (
	_ store.UserStore = (*Store)(nil)
	_ store.PostStore = (*Store)(nil)
)

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// CreateUser inserts a user, enforcing email uniqueness.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, exists := s.byEmail[email]; exists {
		return store.ErrDuplicate
	}
	now := time.Now()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := cloneUser(user)
	s.users[user.ID] = cp
	s.byEmail[email] = user.ID
	return nil
}

// GetUserByID returns a copy of the user.
func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(u), nil
}

// GetUserByEmail looks a user up by lowercased email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneUser(s.users[id]), nil
}

// UpdateProfile persists mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[user.ID]
	if !ok {
		return store.ErrNotFound
	}
	u.FirstName = user.FirstName
	u.LastName = user.LastName
	u.Headline = user.Headline
	u.Summary = user.Summary
	u.ProfilePicture = user.ProfilePicture
	u.UpdatedAt = time.Now()
	return nil
}

// SaveRelations writes both users' relation sets under the mutex, so the pair
// is atomic.
func (s *Store) SaveRelations(ctx context.Context, a, b *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ua, okA := s.users[a.ID]
	ub, okB := s.users[b.ID]
	if !okA || !okB {
		return store.ErrNotFound
	}
	now := time.Now()
	ua.Connections = append([]string(nil), a.Connections...)
	ua.SentRequests = append([]string(nil), a.SentRequests...)
	ua.PendingRequests = append([]string(nil), a.PendingRequests...)
	ua.UpdatedAt = now
	ub.Connections = append([]string(nil), b.Connections...)
	ub.SentRequests = append([]string(nil), b.SentRequests...)
	ub.PendingRequests = append([]string(nil), b.PendingRequests...)
	ub.UpdatedAt = now
	return nil
}

// ReplaceExperience overwrites the user's experience collection.
func (s *Store) ReplaceExperience(ctx context.Context, userID string, entries []domain.Experience) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Experience = append([]domain.Experience(nil), entries...)
	u.UpdatedAt = time.Now()
	return nil
}

// ReplaceEducation overwrites the user's education collection.
func (s *Store) ReplaceEducation(ctx context.Context, userID string, entries []domain.Education) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Education = append([]domain.Education(nil), entries...)
	u.UpdatedAt = time.Now()
	return nil
}

// SearchUsers matches query as a case-insensitive substring of first name,
// last name or email.
func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(query)
	var out []domain.UserSummary
	for _, u := range s.users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u.ToSummary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetSummaries resolves ids to summaries, skipping unknown ids.
func (s *Store) GetSummaries(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u.ToSummary())
		}
	}
	return out, nil
}

// CreatePost inserts a post and assigns its insertion sequence.
func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	post.Seq = s.nextSeq()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []string{}
	}
	s.posts[post.ID] = clonePost(post)
	return nil
}

// GetPost returns a copy of the post.
func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return clonePost(p), nil
}

// UpdatePost persists post content and media changes.
func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[post.ID]
	if !ok {
		return store.ErrNotFound
	}
	p.Content = post.Content
	p.MediaURL = post.MediaURL
	p.MediaType = post.MediaType
	p.UpdatedAt = time.Now()
	return nil
}

// DeletePostCascade removes the post and all its comments under the mutex.
func (s *Store) DeletePostCascade(ctx context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, postID)
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

// ListByAuthors returns posts by any of the given authors, newest first,
// insertion order breaking ties.
func (s *Store) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	allowed := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = struct{}{}
	}
	var out []domain.Post
	for _, p := range s.posts {
		if _, ok := allowed[p.AuthorID]; ok {
			out = append(out, *clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ToggleLike flips the user's membership in the post's like set.
func (s *Store) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[postID]
	if !ok {
		return false, 0, store.ErrNotFound
	}
	liked := !p.LikedBy(userID)
	if liked {
		p.Likes = domain.AddToSet(p.Likes, userID)
	} else {
		p.Likes = domain.RemoveFromSet(p.Likes, userID)
	}
	p.UpdatedAt = time.Now()
	return liked, len(p.Likes), nil
}

// CreateComment inserts a comment.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	comment.Seq = s.nextSeq()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

// GetComment returns a copy of the comment.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// ListCommentsByPost returns the post's comments newest first.
func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteComment removes one comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	cp.Connections = append([]string(nil), u.Connections...)
	cp.SentRequests = append([]string(nil), u.SentRequests...)
	cp.PendingRequests = append([]string(nil), u.PendingRequests...)
	cp.Experience = append([]domain.Experience(nil), u.Experience...)
	cp.Education = append([]domain.Education(nil), u.Education...)
	return &cp
}

func clonePost(p *domain.Post) *domain.Post {
	cp := *p
	cp.Likes = append([]string(nil), p.Likes...)
	return &cp
}
