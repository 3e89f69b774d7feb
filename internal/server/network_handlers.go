package server

import (
	"github.com/gofiber/fiber/v2"
)

// NetworkSummary handles GET /api/network
func (s *Server) NetworkSummary(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	summary, err := s.networkService.Summary(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(summary)
}

// SearchUsers handles GET /api/network/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	query := c.Query("q")

	results, err := s.networkService.SearchUsers(ctx, userID, query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": results,
	})
}

// GetConnections handles GET /api/network/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	connections, err := s.networkService.Connections(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(connections)
}

// GetFollowLists handles GET /api/network/followers
func (s *Server) GetFollowLists(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	lists, err := s.networkService.Follows(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lists)
}

// GetMutuals handles GET /api/network/mutuals?user_id=
func (s *Server) GetMutuals(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID := uint(c.QueryInt("user_id", 0))

	mutuals, err := s.networkService.Mutuals(ctx, userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user_id": targetID,
		"mutuals": mutuals,
	})
}

// GetInvitations handles GET /api/network/invitations
func (s *Server) GetInvitations(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	lists, err := s.networkService.Invitations(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(lists)
}

// ToggleFollow handles POST /api/network/follow/:userId
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, err := s.networkService.ToggleFollow(ctx, userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"following": following,
	})
}

// RemoveConnection handles POST /api/network/connections/:userId/remove
func (s *Server) RemoveConnection(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	// Target must exist; removing an absent connection is still a no-op.
	if _, getUserErr := s.userRepo.GetByID(ctx, targetID); getUserErr != nil {
		return respondServiceError(c, getUserErr)
	}

	if removeErr := s.networkService.RemoveMutualConnection(ctx, userID, targetID); removeErr != nil {
		return respondServiceError(c, removeErr)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
