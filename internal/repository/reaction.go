package repository

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations.
type ReactionRepository interface {
	// Toggle flips the user's reaction on the target and reports the new
	// state: true when the reaction now exists, false when it was removed.
	Toggle(ctx context.Context, tenantID, userID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (bool, error)
	Count(ctx context.Context, tenantID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (uint32, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, tenantID, userID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (bool, error) {
	defer observability.TrackQuery("toggle", "reactions")()

	// Delete-then-insert keeps the toggle idempotent without an extra read:
	// the delete's row count tells us which way to flip.
	res := r.db.WithContext(ctx).
		Where("tenant_id = ? AND target_type = ? AND target_id = ? AND user_id = ? AND type = ?",
			tenantID, targetType, targetID, userID, reactionType).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		observability.ReactionTogglesTotal.WithLabelValues("inactive").Inc()
		return false, nil
	}

	reaction := models.Reaction{
		TenantID:   tenantID,
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
		Type:       reactionType,
	}
	if err := r.db.WithContext(ctx).Create(&reaction).Error; err != nil {
		return false, err
	}
	observability.ReactionTogglesTotal.WithLabelValues("active").Inc()
	return true, nil
}

func (r *reactionRepository) Count(ctx context.Context, tenantID uint64, targetType models.ReactionTargetType, targetID uint64, reactionType string) (uint32, error) {
	defer observability.TrackQuery("count", "reactions")()

	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("tenant_id = ? AND target_type = ? AND target_id = ? AND type = ?",
			tenantID, targetType, targetID, reactionType).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return uint32(total), nil
}
