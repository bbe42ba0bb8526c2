package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/store/memory"
)

func testService() Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(memory.New(), NewTokenIssuer("test-secret", time.Hour), logger)
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "Ada@Example.com",
		Password:  "secret123",
	}
}

func TestRegisterCreatesUserWithToken(t *testing.T) {
	svc := testService()

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "ada@example.com", result.User.Email, "email is stored lowercased")
	assert.NotEqual(t, "secret123", result.User.Password, "password must be hashed")
}

func TestRegisterValidation(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing first name", func(in *RegisterInput) { in.FirstName = " " }},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Register(ctx, in)
			assert.Equal(t, apperr.InvalidRequest, apperr.KindOf(err))
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	// Same address with different casing is still a duplicate.
	in := validInput()
	in.Email = "ADA@example.COM"
	_, err = svc.Register(ctx, in)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestLoginVerifiesCredentials(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLoginFailureDoesNotRevealEmailExistence(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ada@example.com", "wrong-pass")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "secret123")

	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(wrongPassword))
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(unknownEmail))
	assert.Equal(t, apperr.MessageOf(unknownEmail), apperr.MessageOf(wrongPassword),
		"wrong password and unknown email must be indistinguishable")
}

func TestPasswordNeverSerialized(t *testing.T) {
	svc := testService()

	result, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)

	raw, err := json.Marshal(result.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), result.User.Password)
}

func TestAuthorizeRoundTrip(t *testing.T) {
	svc := testService()
	ctx := context.Background()

	result, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	userID, err := svc.Authorize(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)

	_, err = svc.Authorize(ctx, "not-a-token")
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}
