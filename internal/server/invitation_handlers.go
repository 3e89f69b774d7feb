package server

import (
	"weave/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendInvitation handles POST /api/network/invitations/send/:userId
//
// Policy no-ops (self, already connected, duplicate pending) return the same
// success shape as a real send; the caller cannot distinguish them.
func (s *Server) SendInvitation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	recipientID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if sendErr := s.networkService.SendInvitation(ctx, userID, recipientID); sendErr != nil {
		return respondServiceError(c, sendErr)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// AcceptInvitation handles POST /api/network/invitations/:invitationId/accept
func (s *Server) AcceptInvitation(c *fiber.Ctx) error {
	return s.respondToInvitation(c, models.InvitationStatusAccepted)
}

// DeclineInvitation handles POST /api/network/invitations/:invitationId/decline
func (s *Server) DeclineInvitation(c *fiber.Ctx) error {
	return s.respondToInvitation(c, models.InvitationStatusDeclined)
}

func (s *Server) respondToInvitation(c *fiber.Ctx, decision models.InvitationStatus) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	invitationID, err := s.parseID(c, "invitationId")
	if err != nil {
		return nil
	}

	if respondErr := s.networkService.RespondToInvitation(ctx, userID, invitationID, decision); respondErr != nil {
		return respondServiceError(c, respondErr)
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"decision": decision,
	})
}

// WithdrawInvitation handles POST /api/network/invitations/:invitationId/withdraw
func (s *Server) WithdrawInvitation(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	invitationID, err := s.parseID(c, "invitationId")
	if err != nil {
		return nil
	}

	if withdrawErr := s.networkService.WithdrawInvitation(ctx, userID, invitationID); withdrawErr != nil {
		return respondServiceError(c, withdrawErr)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
