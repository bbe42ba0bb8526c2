package post

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/connection"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	mem   *memory.Store
	posts Service
	conns connection.Service
}

func newFixture(t *testing.T, userIDs ...string) fixture {
	t.Helper()
	mem := memory.New()
	for _, id := range userIDs {
		u := &domain.User{
			ID:              id,
			FirstName:       id,
			LastName:        "Test",
			Email:           id + "@example.com",
			Password:        "hash",
			Connections:     []string{},
			SentRequests:    []string{},
			PendingRequests: []string{},
		}
		require.NoError(t, mem.CreateUser(context.Background(), u))
	}
	return fixture{
		mem:   mem,
		posts: New(mem, mem, testLogger()),
		conns: connection.New(mem, testLogger()),
	}
}

func (f fixture) connect(t *testing.T, a, b string) {
	t.Helper()
	require.NoError(t, f.conns.Send(context.Background(), a, b))
	require.NoError(t, f.conns.Accept(context.Background(), b, a))
}

func TestCreateRequiresContent(t *testing.T) {
	f := newFixture(t, "alice")

	_, err := f.posts.Create(context.Background(), "alice", CreateInput{Content: "   "})
	assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err))
}

func TestCreateValidatesMediaKind(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	_, err := f.posts.Create(ctx, "alice", CreateInput{Content: "hi", MediaURL: "u", MediaType: "gif"})
	assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err))

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "hi", MediaURL: "https://cdn/img.png", MediaType: domain.MediaImage})
	require.NoError(t, err)
	assert.Equal(t, domain.MediaImage, p.MediaType)
}

func TestFeedSelectsSelfAndConnectionsOnly(t *testing.T) {
	f := newFixture(t, "u", "x", "y", "z")
	ctx := context.Background()
	f.connect(t, "u", "x")
	f.connect(t, "u", "y")

	for _, author := range []string{"u", "x", "y", "z"} {
		_, err := f.posts.Create(ctx, author, CreateInput{Content: "post by " + author})
		require.NoError(t, err)
	}

	feed, err := f.posts.Feed(ctx, "u")
	require.NoError(t, err)
	require.Len(t, feed, 3)
	for _, view := range feed {
		assert.Contains(t, []string{"u", "x", "y"}, view.AuthorID)
		assert.NotEqual(t, "z", view.AuthorID)
		assert.Equal(t, view.AuthorID, view.Author.ID, "feed entries carry the author summary")
	}
}

func TestFeedNewestFirstCappedAtTwenty(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := f.posts.Create(ctx, "alice", CreateInput{Content: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}

	feed, err := f.posts.Feed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed, 20)
	assert.Equal(t, "post 24", feed[0].Content)
	assert.Equal(t, "post 5", feed[19].Content)
	for i := 1; i < len(feed); i++ {
		prev, cur := feed[i-1], feed[i]
		notAfter := cur.CreatedAt.Before(prev.CreatedAt) || cur.CreatedAt.Equal(prev.CreatedAt)
		assert.True(t, notAfter, "feed must be newest first")
	}
}

func TestPostsByUserIsUncapped(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, err := f.posts.Create(ctx, "alice", CreateInput{Content: fmt.Sprintf("post %d", i)})
		require.NoError(t, err)
	}

	posts, err := f.posts.PostsByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, posts, 25)
}

func TestUpdatePostAuthorization(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "original"})
	require.NoError(t, err)

	_, err = f.posts.Update(ctx, "missing", "alice", "new")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.posts.Update(ctx, p.ID, "bob", "new")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// Empty content keeps the existing value.
	updated, err := f.posts.Update(ctx, p.ID, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "original", updated.Content)

	updated, err = f.posts.Update(ctx, p.ID, "alice", "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
}

func TestDeletePostCascadesComments(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "to be deleted"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.posts.AddComment(ctx, p.ID, "bob", fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	err = f.posts.Delete(ctx, p.ID, "bob")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, f.posts.Delete(ctx, p.ID, "alice"))

	comments, err := f.mem.ListCommentsByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments, "cascade must leave zero comments referencing the post")
}

func TestToggleLikeTwiceRestoresCount(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "likeable"})
	require.NoError(t, err)

	res, err := f.posts.ToggleLike(ctx, p.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.Likes)

	res, err = f.posts.ToggleLike(ctx, p.ID, "bob")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.Likes)

	_, err = f.posts.ToggleLike(ctx, "missing", "bob")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestAddCommentValidation(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "post"})
	require.NoError(t, err)

	_, err = f.posts.AddComment(ctx, p.ID, "alice", "  ")
	assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err))

	_, err = f.posts.AddComment(ctx, "missing", "alice", "hello")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCommentsNewestFirst(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "post"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.posts.AddComment(ctx, p.ID, "alice", fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}

	comments, err := f.posts.CommentsForPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "comment 2", comments[0].Content)
	assert.Equal(t, "comment 0", comments[2].Content)
	assert.Equal(t, "alice", comments[0].Author.ID)
}

func TestDeleteCommentLeavesPost(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	p, err := f.posts.Create(ctx, "alice", CreateInput{Content: "post"})
	require.NoError(t, err)
	comment, err := f.posts.AddComment(ctx, p.ID, "bob", "hello")
	require.NoError(t, err)

	err = f.posts.DeleteComment(ctx, comment.ID, "alice")
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	require.NoError(t, f.posts.DeleteComment(ctx, comment.ID, "bob"))

	_, err = f.mem.GetPost(ctx, p.ID)
	assert.NoError(t, err, "deleting a comment must not touch the parent post")

	err = f.posts.DeleteComment(ctx, comment.ID, "bob")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
