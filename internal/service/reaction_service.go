package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// ReactionService owns reaction toggles. The toggle result carries the
// authoritative state the client reconciles against.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
}

// NewReactionService creates a new reaction service.
func NewReactionService(reactionRepo repository.ReactionRepository) *ReactionService {
	return &ReactionService{reactionRepo: reactionRepo}
}

// Toggle flips the scope user's reaction on the target and returns the
// resulting state plus the new total. An empty reaction type defaults to
// "like".
func (s *ReactionService) Toggle(ctx context.Context, scope models.Scope, targetType models.ReactionTargetType, targetID uint64, reactionType string) (bool, uint32, error) {
	if reactionType == "" {
		reactionType = "like"
	}
	switch targetType {
	case models.ReactionTargetPost, models.ReactionTargetComment:
	default:
		return false, 0, models.NewValidationError("invalid target type")
	}
	if targetID == 0 {
		return false, 0, models.NewValidationError("target id is required")
	}

	active, err := s.reactionRepo.Toggle(ctx, scope.TenantID, scope.UserID, targetType, targetID, reactionType)
	if err != nil {
		return false, 0, err
	}
	total, err := s.reactionRepo.Count(ctx, scope.TenantID, targetType, targetID, reactionType)
	if err != nil {
		return false, 0, err
	}
	return active, total, nil
}
