// Package service implements the social-graph business logic on top of the
// repository layer.
package service

import (
	"context"

	"weave/internal/cache"
	"weave/internal/middleware"
	"weave/internal/models"
	"weave/internal/observability"
	"weave/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// NetworkService provides connection, follow and invitation business logic.
// All operations take the acting user explicitly; nothing is read from
// ambient state.
type NetworkService struct {
	userRepo       repository.UserRepository
	connectionRepo repository.ConnectionRepository
	followRepo     repository.FollowRepository
	invitationRepo repository.InvitationRepository
}

// NewNetworkService returns a new NetworkService.
func NewNetworkService(
	userRepo repository.UserRepository,
	connectionRepo repository.ConnectionRepository,
	followRepo repository.FollowRepository,
	invitationRepo repository.InvitationRepository,
) *NetworkService {
	return &NetworkService{
		userRepo:       userRepo,
		connectionRepo: connectionRepo,
		followRepo:     followRepo,
		invitationRepo: invitationRepo,
	}
}

// startSpan opens a span for a service operation, tagging it with the
// request's correlation ID when one is present.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (*observability.Span, context.Context) {
	span, ctx := observability.NewSpan(ctx, name)
	if cid := observability.ExtractCorrelationID(ctx); cid != "" {
		attrs = append(attrs, attribute.String("correlation_id", cid))
	}
	span.AddAttributes(attrs...)
	return span, ctx
}

// CreateMutualConnection ensures both directed rows exist for the pair.
// Connecting a user to themselves is a no-op. Idempotent.
func (s *NetworkService) CreateMutualConnection(ctx context.Context, userID, otherID uint) (err error) {
	span, ctx := startSpan(ctx, "network.create_connection",
		attribute.Int("user_id", int(userID)),
		attribute.Int("other_id", int(otherID)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if userID == otherID {
		return nil
	}
	if err := s.connectionRepo.CreatePair(ctx, userID, otherID); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, userID, otherID)
	return nil
}

// RemoveMutualConnection deletes both directed rows for the pair. Removing a
// connection that does not exist is a no-op.
func (s *NetworkService) RemoveMutualConnection(ctx context.Context, userID, otherID uint) (err error) {
	span, ctx := startSpan(ctx, "network.remove_connection",
		attribute.Int("user_id", int(userID)),
		attribute.Int("other_id", int(otherID)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if err := s.connectionRepo.RemovePair(ctx, userID, otherID); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, userID, otherID)
	return nil
}

// ToggleFollow follows the target if no follow edge exists, otherwise
// unfollows. Following yourself is a no-op. Returns whether the follower is
// following the target afterwards.
func (s *NetworkService) ToggleFollow(ctx context.Context, followerID, targetID uint) (following bool, err error) {
	span, ctx := startSpan(ctx, "network.toggle_follow",
		attribute.Int("follower_id", int(followerID)),
		attribute.Int("target_id", int(targetID)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if followerID == targetID {
		return false, nil
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.followRepo.Delete(ctx, followerID, targetID); err != nil {
			return false, err
		}
		s.invalidateSummaries(ctx, followerID, targetID)
		return false, nil
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: targetID}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return false, err
	}
	s.invalidateSummaries(ctx, followerID, targetID)
	return true, nil
}

// SendInvitation creates a pending invitation from sender to recipient.
//
// Policy no-ops (silent, indistinguishable from success): sender equals
// recipient, the two are already connected, or a pending invitation from
// sender to recipient already exists. A pending invitation in the reverse
// direction is auto-accepted instead: the mutual connection is created and
// the reverse invitation transitions to accepted without a new row.
func (s *NetworkService) SendInvitation(ctx context.Context, senderID, recipientID uint) (err error) {
	span, ctx := startSpan(ctx, "network.send_invitation",
		attribute.Int("sender_id", int(senderID)),
		attribute.Int("recipient_id", int(recipientID)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return err
	}

	if senderID == recipientID {
		middleware.InvitationOutcomes.WithLabelValues("noop").Inc()
		return nil
	}

	connected, err := s.connectionRepo.Exists(ctx, senderID, recipientID)
	if err != nil {
		return err
	}
	if connected {
		middleware.InvitationOutcomes.WithLabelValues("noop").Inc()
		return nil
	}

	reverse, err := s.invitationRepo.FindPending(ctx, recipientID, senderID)
	if err != nil {
		return err
	}
	if reverse != nil {
		if err := s.CreateMutualConnection(ctx, senderID, recipientID); err != nil {
			return err
		}
		if err := s.invitationRepo.MarkResponded(ctx, reverse.ID, models.InvitationStatusAccepted); err != nil {
			return err
		}
		middleware.InvitationOutcomes.WithLabelValues("auto_accepted").Inc()
		return nil
	}

	outgoing, err := s.invitationRepo.FindPending(ctx, senderID, recipientID)
	if err != nil {
		return err
	}
	if outgoing != nil {
		middleware.InvitationOutcomes.WithLabelValues("noop").Inc()
		return nil
	}

	invitation := &models.Invitation{
		FromUserID: senderID,
		ToUserID:   recipientID,
		Status:     models.InvitationStatusPending,
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return err
	}
	s.invalidateSummaries(ctx, senderID, recipientID)
	middleware.InvitationOutcomes.WithLabelValues("created").Inc()
	return nil
}

// RespondToInvitation accepts or declines a pending invitation addressed to
// the user. Accepting additionally creates the mutual connection. Any
// precondition failure (unknown invitation, wrong addressee, not pending)
// surfaces as not-found.
func (s *NetworkService) RespondToInvitation(ctx context.Context, userID, invitationID uint, decision models.InvitationStatus) (err error) {
	span, ctx := startSpan(ctx, "network.respond_invitation",
		attribute.Int("invitation_id", int(invitationID)),
		attribute.String("decision", string(decision)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	if decision != models.InvitationStatusAccepted && decision != models.InvitationStatusDeclined {
		return models.NewValidationError("Decision must be accepted or declined")
	}

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation.ToUserID != userID || invitation.Status != models.InvitationStatusPending {
		return models.NewNotFoundError("Invitation", invitationID)
	}

	// MarkResponded is the state guard: it only matches a still-pending row,
	// so a concurrent response loses here with not-found.
	if err := s.invitationRepo.MarkResponded(ctx, invitationID, decision); err != nil {
		return err
	}

	if decision == models.InvitationStatusAccepted {
		if err := s.CreateMutualConnection(ctx, userID, invitation.FromUserID); err != nil {
			return err
		}
	}

	s.invalidateSummaries(ctx, invitation.FromUserID, invitation.ToUserID)
	middleware.InvitationOutcomes.WithLabelValues(string(decision)).Inc()
	return nil
}

// WithdrawInvitation withdraws a pending invitation sent by the user. Any
// precondition failure surfaces as not-found.
func (s *NetworkService) WithdrawInvitation(ctx context.Context, userID, invitationID uint) (err error) {
	span, ctx := startSpan(ctx, "network.withdraw_invitation",
		attribute.Int("invitation_id", int(invitationID)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if invitation.FromUserID != userID || invitation.Status != models.InvitationStatusPending {
		return models.NewNotFoundError("Invitation", invitationID)
	}

	if err := s.invitationRepo.MarkResponded(ctx, invitationID, models.InvitationStatusWithdrawn); err != nil {
		return err
	}

	s.invalidateSummaries(ctx, invitation.FromUserID, invitation.ToUserID)
	middleware.InvitationOutcomes.WithLabelValues("withdrawn").Inc()
	return nil
}

func (s *NetworkService) invalidateSummaries(ctx context.Context, userIDs ...uint) {
	for _, id := range userIDs {
		cache.InvalidateNetworkSummary(ctx, id)
	}
}
