package profile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store/memory"
)

func newService(t *testing.T, userIDs ...string) (Service, *memory.Store) {
	t.Helper()
	mem := memory.New()
	for _, id := range userIDs {
		u := &domain.User{
			ID:              id,
			FirstName:       id,
			LastName:        "Test",
			Email:           id + "@example.com",
			Password:        "hash",
			Headline:        "Engineer",
			Connections:     []string{"conn-1"},
			SentRequests:    []string{"sent-1"},
			PendingRequests: []string{"pending-1"},
		}
		require.NoError(t, mem.CreateUser(context.Background(), u))
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mem, logger), mem
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func timePtr(v time.Time) *time.Time { return &v }

func TestGetByIDHidesRequestLists(t *testing.T) {
	svc, _ := newService(t, "alice")

	own, err := svc.GetOwn(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"sent-1"}, own.SentRequests)
	assert.Equal(t, []string{"pending-1"}, own.PendingRequests)

	public, err := svc.GetByID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, public.SentRequests)
	assert.Nil(t, public.PendingRequests)
	assert.Equal(t, []string{"conn-1"}, public.Connections)

	_, err = svc.GetByID(context.Background(), "nobody")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestUpdateMergesSuppliedFields(t *testing.T) {
	svc, _ := newService(t, "alice")
	ctx := context.Background()

	updated, err := svc.Update(ctx, "alice", UpdateInput{Headline: "Staff Engineer", Summary: "Builder"})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Headline)
	assert.Equal(t, "Builder", updated.Summary)
	assert.Equal(t, "alice", updated.FirstName, "omitted fields keep their value")

	// Empty strings never blank out existing values.
	updated, err = svc.Update(ctx, "alice", UpdateInput{FirstName: "  ", Headline: ""})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.FirstName)
	assert.Equal(t, "Staff Engineer", updated.Headline)
}

func TestExperienceLifecycle(t *testing.T) {
	svc, _ := newService(t, "alice")
	ctx := context.Background()
	from := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddExperience(ctx, "alice", ExperienceInput{Company: strPtr("Acme"), From: timePtr(from)})
	assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err), "title is required")

	entries, err := svc.AddExperience(ctx, "alice", ExperienceInput{
		Title:   strPtr("Engineer"),
		Company: strPtr("Acme"),
		From:    timePtr(from),
		Current: boolPtr(true),
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Newest entry is prepended.
	entries, err = svc.AddExperience(ctx, "alice", ExperienceInput{
		Title:   strPtr("Senior Engineer"),
		Company: strPtr("Globex"),
		From:    timePtr(from.AddDate(2, 0, 0)),
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Senior Engineer", entries[0].Title)

	// Merge update touches only supplied attributes.
	updated, err := svc.UpdateExperience(ctx, "alice", entries[0].ID, ExperienceInput{
		Description: strPtr("Led the platform team"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated[0].Title)
	assert.Equal(t, "Led the platform team", updated[0].Description)

	_, err = svc.UpdateExperience(ctx, "alice", "missing", ExperienceInput{Title: strPtr("X")})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	require.NoError(t, svc.DeleteExperience(ctx, "alice", entries[0].ID))
	err = svc.DeleteExperience(ctx, "alice", entries[0].ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	user, err := svc.GetOwn(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, user.Experience, 1)
	assert.Equal(t, "Engineer", user.Experience[0].Title)
}

func TestEducationLifecycle(t *testing.T) {
	svc, _ := newService(t, "alice")
	ctx := context.Background()
	from := time.Date(2015, time.September, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.AddEducation(ctx, "alice", EducationInput{School: strPtr("MIT"), From: timePtr(from)})
	assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err), "degree is required")

	entries, err := svc.AddEducation(ctx, "alice", EducationInput{
		School:       strPtr("MIT"),
		Degree:       strPtr("BSc"),
		FieldOfStudy: strPtr("Computer Science"),
		From:         timePtr(from),
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	updated, err := svc.UpdateEducation(ctx, "alice", entries[0].ID, EducationInput{Degree: strPtr("MSc")})
	require.NoError(t, err)
	assert.Equal(t, "MSc", updated[0].Degree)
	assert.Equal(t, "MIT", updated[0].School)

	require.NoError(t, svc.DeleteEducation(ctx, "alice", entries[0].ID))
	err = svc.DeleteEducation(ctx, "alice", entries[0].ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestSearchMatchesNameAndEmail(t *testing.T) {
	svc, mem := newService(t, "alice", "bob")
	ctx := context.Background()

	results, err := svc.Search(ctx, "ALICE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].ID)

	// Substring of the email domain matches everyone seeded here.
	results, err = svc.Search(ctx, "example.com")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Empty query is unfiltered but capped at ten.
	for i := 0; i < 12; i++ {
		u := &domain.User{
			ID:        fmt.Sprintf("extra-%d", i),
			FirstName: "Extra",
			LastName:  "User",
			Email:     fmt.Sprintf("extra-%d@example.com", i),
			Password:  "hash",
		}
		require.NoError(t, mem.CreateUser(ctx, u))
	}
	results, err = svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, results, 10)
}
