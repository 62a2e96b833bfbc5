package models

import "time"

// ReactionTargetType defines the kind of entity a reaction attaches to.
type ReactionTargetType string

const (
	// ReactionTargetPost marks a reaction on a post.
	ReactionTargetPost ReactionTargetType = "post"
	// ReactionTargetComment marks a reaction on a comment.
	ReactionTargetComment ReactionTargetType = "comment"
)

// Reaction is one user's reaction (e.g. a like) on a target entity. The
// composite unique index makes the toggle idempotent at the storage level:
// a user holds at most one reaction of a given type per target.
type Reaction struct {
	ID         uint64             `gorm:"primaryKey" json:"id"`
	TenantID   uint64             `gorm:"uniqueIndex:idx_reactions_identity;not null" json:"tenant_id"`
	TargetType ReactionTargetType `gorm:"type:varchar(20);uniqueIndex:idx_reactions_identity;not null" json:"target_type"`
	TargetID   uint64             `gorm:"uniqueIndex:idx_reactions_identity;not null" json:"target_id"`
	UserID     uint64             `gorm:"uniqueIndex:idx_reactions_identity;not null" json:"user_id"`
	Type       string             `gorm:"size:32;uniqueIndex:idx_reactions_identity;not null" json:"type"`
	CreatedAt  time.Time          `json:"created_at"`
}
