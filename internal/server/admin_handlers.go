package server

import (
	"weave/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListConnections handles GET /api/admin/connections
func (s *Server) AdminListConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	p := parsePagination(c, 50)

	connections, err := s.connectionRepo.ListAll(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(connections)
}

// AdminListFollows handles GET /api/admin/follows
func (s *Server) AdminListFollows(c *fiber.Ctx) error {
	ctx := c.Context()
	p := parsePagination(c, 50)

	follows, err := s.followRepo.ListAll(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(follows)
}

// AdminListInvitations handles GET /api/admin/invitations?status=
func (s *Server) AdminListInvitations(c *fiber.Ctx) error {
	ctx := c.Context()
	p := parsePagination(c, 50)

	status := models.InvitationStatus(c.Query("status"))
	switch status {
	case "", models.InvitationStatusPending, models.InvitationStatusAccepted,
		models.InvitationStatusDeclined, models.InvitationStatusWithdrawn:
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid invitation status filter"))
	}

	invitations, err := s.invitationRepo.ListAll(ctx, status, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(invitations)
}
