// Package profile owns mutable profile fields, the experience and education
// sub-collections and user search.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

const searchLimit = 10

// Service reads and mutates user profiles.
type Service struct {
	users  store.UserStore
	logger *slog.Logger
}

// New returns a profile service.
func New(users store.UserStore, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

func (s Service) load(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// GetOwn returns the requester's full profile. The password hash is excluded
// by serialization, never by this layer.
func (s Service) GetOwn(ctx context.Context, requesterID string) (*domain.User, error) {
	return s.load(ctx, requesterID)
}

// GetByID returns another user's profile with the relation-request lists
// blanked out; only the connections set is public.
func (s Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	user.SentRequests = nil
	user.PendingRequests = nil
	return user, nil
}

// UpdateInput carries merge-patch profile fields; empty values keep the
// existing ones.
type UpdateInput struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	ProfilePicture string `json:"profilePicture"`
}

// Update applies the supplied non-empty fields onto the profile.
func (s Service) Update(ctx context.Context, requesterID string, in UpdateInput) (*domain.User, error) {
	user, err := s.load(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(in.Headline); v != "" {
		user.Headline = v
	}
	if v := strings.TrimSpace(in.Summary); v != "" {
		user.Summary = v
	}
	if v := strings.TrimSpace(in.ProfilePicture); v != "" {
		user.ProfilePicture = v
	}
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", "user_id", requesterID)
	return user, nil
}

// ExperienceInput carries experience attributes. Pointer fields distinguish
// "omitted" from "set to zero" for merge updates.
type ExperienceInput struct {
	Title       *string    `json:"title"`
	Company     *string    `json:"company"`
	Location    *string    `json:"location"`
	From        *time.Time `json:"from"`
	To          *time.Time `json:"to"`
	Current     *bool      `json:"current"`
	Description *string    `json:"description"`
}

// AddExperience prepends a new experience entry.
func (s Service) AddExperience(ctx context.Context, userID string, in ExperienceInput) ([]domain.Experience, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Title is required")
	}
	if in.Company == nil || strings.TrimSpace(*in.Company) == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Company is required")
	}
	if in.From == nil {
		return nil, apperr.New(apperr.InvalidRequest, "From date is required")
	}
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Experience{
		ID:      uuid.NewString(),
		Title:   strings.TrimSpace(*in.Title),
		Company: strings.TrimSpace(*in.Company),
		From:    *in.From,
		To:      in.To,
	}
	if in.Location != nil {
		entry.Location = strings.TrimSpace(*in.Location)
	}
	if in.Current != nil {
		entry.Current = *in.Current
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}

	entries := append([]domain.Experience{entry}, user.Experience...)
	if err := s.users.ReplaceExperience(ctx, userID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateExperience merges the supplied attributes onto the entry with the
// given id.
func (s Service) UpdateExperience(ctx context.Context, userID, expID string, in ExperienceInput) ([]domain.Experience, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range user.Experience {
		if user.Experience[i].ID == expID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperr.New(apperr.NotFound, "Experience not found")
	}

	entry := &user.Experience[idx]
	if in.Title != nil {
		entry.Title = strings.TrimSpace(*in.Title)
	}
	if in.Company != nil {
		entry.Company = strings.TrimSpace(*in.Company)
	}
	if in.Location != nil {
		entry.Location = strings.TrimSpace(*in.Location)
	}
	if in.From != nil {
		entry.From = *in.From
	}
	if in.To != nil {
		entry.To = in.To
	}
	if in.Current != nil {
		entry.Current = *in.Current
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}

	if err := s.users.ReplaceExperience(ctx, userID, user.Experience); err != nil {
		return nil, err
	}
	return user.Experience, nil
}

// DeleteExperience removes the entry with the given id.
func (s Service) DeleteExperience(ctx context.Context, userID, expID string) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	entries := make([]domain.Experience, 0, len(user.Experience))
	found := false
	for _, e := range user.Experience {
		if e.ID == expID {
			found = true
			continue
		}
		entries = append(entries, e)
	}
	if !found {
		return apperr.New(apperr.NotFound, "Experience not found")
	}
	return s.users.ReplaceExperience(ctx, userID, entries)
}

// EducationInput carries education attributes for add and merge updates.
type EducationInput struct {
	School       *string    `json:"school"`
	Degree       *string    `json:"degree"`
	FieldOfStudy *string    `json:"fieldOfStudy"`
	From         *time.Time `json:"from"`
	To           *time.Time `json:"to"`
	Current      *bool      `json:"current"`
	Description  *string    `json:"description"`
}

// AddEducation prepends a new education entry.
func (s Service) AddEducation(ctx context.Context, userID string, in EducationInput) ([]domain.Education, error) {
	if in.School == nil || strings.TrimSpace(*in.School) == "" {
		return nil, apperr.New(apperr.InvalidRequest, "School is required")
	}
	if in.Degree == nil || strings.TrimSpace(*in.Degree) == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Degree is required")
	}
	if in.FieldOfStudy == nil || strings.TrimSpace(*in.FieldOfStudy) == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Field of study is required")
	}
	if in.From == nil {
		return nil, apperr.New(apperr.InvalidRequest, "From date is required")
	}
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := domain.Education{
		ID:           uuid.NewString(),
		School:       strings.TrimSpace(*in.School),
		Degree:       strings.TrimSpace(*in.Degree),
		FieldOfStudy: strings.TrimSpace(*in.FieldOfStudy),
		From:         *in.From,
		To:           in.To,
	}
	if in.Current != nil {
		entry.Current = *in.Current
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}

	entries := append([]domain.Education{entry}, user.Education...)
	if err := s.users.ReplaceEducation(ctx, userID, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateEducation merges the supplied attributes onto the entry with the
// given id.
func (s Service) UpdateEducation(ctx context.Context, userID, eduID string, in EducationInput) ([]domain.Education, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range user.Education {
		if user.Education[i].ID == eduID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, apperr.New(apperr.NotFound, "Education not found")
	}

	entry := &user.Education[idx]
	if in.School != nil {
		entry.School = strings.TrimSpace(*in.School)
	}
	if in.Degree != nil {
		entry.Degree = strings.TrimSpace(*in.Degree)
	}
	if in.FieldOfStudy != nil {
		entry.FieldOfStudy = strings.TrimSpace(*in.FieldOfStudy)
	}
	if in.From != nil {
		entry.From = *in.From
	}
	if in.To != nil {
		entry.To = in.To
	}
	if in.Current != nil {
		entry.Current = *in.Current
	}
	if in.Description != nil {
		entry.Description = *in.Description
	}

	if err := s.users.ReplaceEducation(ctx, userID, user.Education); err != nil {
		return nil, err
	}
	return user.Education, nil
}

// DeleteEducation removes the entry with the given id.
func (s Service) DeleteEducation(ctx context.Context, userID, eduID string) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	entries := make([]domain.Education, 0, len(user.Education))
	found := false
	for _, e := range user.Education {
		if e.ID == eduID {
			found = true
			continue
		}
		entries = append(entries, e)
	}
	if !found {
		return apperr.New(apperr.NotFound, "Education not found")
	}
	return s.users.ReplaceEducation(ctx, userID, entries)
}

// Search returns up to ten user summaries matching the query; an empty query
// is unfiltered.
func (s Service) Search(ctx context.Context, query string) ([]domain.UserSummary, error) {
	return s.users.SearchUsers(ctx, strings.TrimSpace(query), searchLimit)
}
