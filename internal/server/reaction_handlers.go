package server

import (
	"murmur/internal/models"
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
)

// ToggleReaction flips the caller's reaction on a post or comment and
// returns the authoritative state. The response is what clients reconcile
// their optimistic UI against.
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.ToggleReactionRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	var targetType models.ReactionTargetType
	switch req.TargetType {
	case sns.TargetTypePost:
		targetType = models.ReactionTargetPost
	case sns.TargetTypeComment:
		targetType = models.ReactionTargetComment
	default:
		return respondError(c, models.NewValidationError("invalid target type"))
	}

	active, total, err := s.reactionService.Toggle(c.UserContext(), scope, targetType, req.TargetID, req.Type)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sns.ToggleReactionResponse{Active: active, Total: total})
}
