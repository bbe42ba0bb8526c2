// Package connection owns the bidirectional connection graph. The
// relationship between two users is kept as three per-user sets (connections,
// sentRequests, pendingRequests) mirrored across both records; every
// transition here mutates both sides and hands them to the store as one
// atomic write.
package connection

import (
	"context"
	"errors"
	"log/slog"

	"github.com/talentlink/talentlink/internal/apperr"
	"github.com/talentlink/talentlink/internal/domain"
	"github.com/talentlink/talentlink/internal/store"
)

// Service applies connection-request transitions.
type Service struct {
	users  store.UserStore
	logger *slog.Logger
}

// New returns a connection service.
func New(users store.UserStore, logger *slog.Logger) Service {
	return Service{users: users, logger: logger}
}

func (s Service) loadPair(ctx context.Context, aID, bID string) (*domain.User, *domain.User, error) {
	a, err := s.users.GetUserByID(ctx, aID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, nil, err
	}
	b, err := s.users.GetUserByID(ctx, bID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, nil, err
	}
	return a, b, nil
}

// Send creates a request from sender to receiver. Legal only when no
// relationship exists in either direction.
func (s Service) Send(ctx context.Context, senderID, receiverID string) error {
	if senderID == receiverID {
		return apperr.New(apperr.InvalidRequest, "You cannot connect with yourself")
	}
	sender, receiver, err := s.loadPair(ctx, senderID, receiverID)
	if err != nil {
		return err
	}

	switch {
	case sender.HasConnection(receiverID):
		return apperr.New(apperr.Conflict, "Already connected")
	case sender.HasSentRequest(receiverID):
		return apperr.New(apperr.Conflict, "Request already sent")
	case sender.HasPendingRequest(receiverID):
		return apperr.New(apperr.Conflict, "This user has already sent you a request")
	}

	sender.SentRequests = domain.AddToSet(sender.SentRequests, receiverID)
	receiver.PendingRequests = domain.AddToSet(receiver.PendingRequests, senderID)

	if err := s.users.SaveRelations(ctx, sender, receiver); err != nil {
		return err
	}
	s.logger.Info("connection request sent", "sender", senderID, "receiver", receiverID)
	return nil
}

// Accept turns a pending request from requester into a mutual connection.
// Legal only when the current user actually holds the pending request.
func (s Service) Accept(ctx context.Context, userID, requesterID string) error {
	user, requester, err := s.loadPair(ctx, userID, requesterID)
	if err != nil {
		return err
	}
	if !user.HasPendingRequest(requesterID) {
		return apperr.New(apperr.InvalidRequest, "No pending request from this user")
	}

	user.PendingRequests = domain.RemoveFromSet(user.PendingRequests, requesterID)
	user.Connections = domain.AddToSet(user.Connections, requesterID)
	requester.SentRequests = domain.RemoveFromSet(requester.SentRequests, userID)
	requester.Connections = domain.AddToSet(requester.Connections, userID)

	if err := s.users.SaveRelations(ctx, user, requester); err != nil {
		return err
	}
	s.logger.Info("connection accepted", "user", userID, "requester", requesterID)
	return nil
}

// Reject discards a pending request from requester without establishing a
// connection, returning the pair to no relationship.
func (s Service) Reject(ctx context.Context, userID, requesterID string) error {
	user, requester, err := s.loadPair(ctx, userID, requesterID)
	if err != nil {
		return err
	}
	if !user.HasPendingRequest(requesterID) {
		return apperr.New(apperr.InvalidRequest, "No pending request from this user")
	}

	user.PendingRequests = domain.RemoveFromSet(user.PendingRequests, requesterID)
	requester.SentRequests = domain.RemoveFromSet(requester.SentRequests, userID)

	if err := s.users.SaveRelations(ctx, user, requester); err != nil {
		return err
	}
	s.logger.Info("connection rejected", "user", userID, "requester", requesterID)
	return nil
}

// Remove severs an existing mutual connection on both sides.
func (s Service) Remove(ctx context.Context, userID, otherID string) error {
	user, other, err := s.loadPair(ctx, userID, otherID)
	if err != nil {
		return err
	}
	if !user.HasConnection(otherID) {
		return apperr.New(apperr.InvalidRequest, "Not connected with this user")
	}

	user.Connections = domain.RemoveFromSet(user.Connections, otherID)
	other.Connections = domain.RemoveFromSet(other.Connections, userID)

	if err := s.users.SaveRelations(ctx, user, other); err != nil {
		return err
	}
	s.logger.Info("connection removed", "user", userID, "other", otherID)
	return nil
}

// ListConnections returns summaries of the user's connections.
func (s Service) ListConnections(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	return s.users.GetSummaries(ctx, user.Connections)
}

// ListPending returns summaries of users whose requests await the user's
// decision.
func (s Service) ListPending(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, err
	}
	return s.users.GetSummaries(ctx, user.PendingRequests)
}
