// Package auth owns user credentials: registration with bcrypt password
// hashing, login verification and bearer-token issuance.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

const minPasswordLen = 6

// Service registers and authenticates users.
type Service struct {
	users  store.UserStore
	tokens *TokenIssuer
	logger *slog.Logger
}

// New returns an auth service.
func New(users store.UserStore, tokens *TokenIssuer, logger *slog.Logger) Service {
	return Service{users: users, tokens: tokens, logger: logger}
}

// RegisterInput carries registration attributes.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Result bundles the public user view with the issued session token.
type Result struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account. The email is trimmed, lowercased and must be
// unused; the password is stored only as a bcrypt hash.
func (s Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if firstName == "" {
		return nil, apperr.New(apperr.InvalidRequest, "First name is required")
	}
	if lastName == "" {
		return nil, apperr.New(apperr.InvalidRequest, "Last name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.New(apperr.InvalidRequest, "Please include a valid email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.New(apperr.InvalidRequest, "Password must be 6 or more characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not hash password", err)
	}

	user := &domain.User{
		ID:              uuid.NewString(),
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Password:        string(hashed),
		Connections:     []string{},
		SentRequests:    []string{},
		PendingRequests: []string{},
		Experience:      []domain.Experience{},
		Education:       []domain.Education{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "User with this email already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "token generation failed", err)
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return &Result{User: user, Token: token}, nil
}

// Login verifies credentials. Unknown email and wrong password fail with the
// same message so the response does not reveal whether the email exists.
func (s Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "token generation failed", err)
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return &Result{User: user, Token: token}, nil
}

// Authorize verifies a bearer token and confirms the bound user still exists.
func (s Service) Authorize(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", apperr.Wrap(apperr.Unauthorized, "Not authorized, token failed", err)
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", apperr.New(apperr.Unauthorized, "Not authorized, user not found")
	}
	return userID, nil
}
