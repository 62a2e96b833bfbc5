package repository

import (
	"context"
	"errors"
	"time"

	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/gorm"
)

// DMRepository defines the interface for conversation and message data operations.
type DMRepository interface {
	// FindDMConversation returns the id of the existing DM between the two
	// users, or 0 when none exists.
	FindDMConversation(ctx context.Context, tenantID, userA, userB uint64) (uint64, error)
	CreateDMConversation(ctx context.Context, tenantID uint64, userIDs ...uint64) (uint64, error)
	FindConversations(ctx context.Context, tenantID, userID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Conversation, error)
	IsMember(ctx context.Context, conversationID, userID uint64) (bool, error)
	FindMessages(ctx context.Context, tenantID, conversationID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Message, error)
	CreateMessage(ctx context.Context, tenantID, conversationID, senderID uint64, body string) (*models.Message, error)
}

type dmRepository struct {
	db *gorm.DB
}

// NewDMRepository creates a new DM repository
func NewDMRepository(db *gorm.DB) DMRepository {
	return &dmRepository{db: db}
}

func (r *dmRepository) FindDMConversation(ctx context.Context, tenantID, userA, userB uint64) (uint64, error) {
	defer observability.TrackQuery("select", "conversations")()

	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_members m1 ON m1.conversation_id = conversations.id AND m1.user_id = ?", userA).
		Joins("JOIN conversation_members m2 ON m2.conversation_id = conversations.id AND m2.user_id = ?", userB).
		Where("conversations.tenant_id = ? AND conversations.kind = ?", tenantID, models.ConversationKindDM).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return conv.ID, nil
}

func (r *dmRepository) CreateDMConversation(ctx context.Context, tenantID uint64, userIDs ...uint64) (uint64, error) {
	defer observability.TrackQuery("insert", "conversations")()

	var convID uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conv := models.Conversation{TenantID: tenantID, Kind: models.ConversationKindDM}
		if err := tx.Create(&conv).Error; err != nil {
			return err
		}
		members := make([]models.ConversationMember, 0, len(userIDs))
		for _, userID := range userIDs {
			members = append(members, models.ConversationMember{
				ConversationID: conv.ID,
				UserID:         userID,
			})
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}
		convID = conv.ID
		return nil
	})
	return convID, err
}

func (r *dmRepository) FindConversations(ctx context.Context, tenantID, userID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Conversation, error) {
	defer observability.TrackQuery("select", "conversations")()

	q := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("user_id")
		}).
		Joins("JOIN conversation_members m ON m.conversation_id = conversations.id AND m.user_id = ?", userID).
		Where("conversations.tenant_id = ?", tenantID)
	if cursorID != 0 {
		q = q.Where("(conversations.created_at < ? OR (conversations.created_at = ? AND conversations.id < ?))", cursorTime, cursorTime, cursorID)
	}

	convos := make([]*models.Conversation, 0, limit)
	err := q.Order("conversations.created_at DESC, conversations.id DESC").Limit(limit).Find(&convos).Error
	return convos, err
}

func (r *dmRepository) IsMember(ctx context.Context, conversationID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *dmRepository) FindMessages(ctx context.Context, tenantID, conversationID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Message, error) {
	defer observability.TrackQuery("select", "messages")()

	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND conversation_id = ?", tenantID, conversationID)
	if cursorID != 0 {
		q = q.Where("(created_at > ? OR (created_at = ? AND id > ?))", cursorTime, cursorTime, cursorID)
	}

	messages := make([]*models.Message, 0, limit)
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *dmRepository) CreateMessage(ctx context.Context, tenantID, conversationID, senderID uint64, body string) (*models.Message, error) {
	defer observability.TrackQuery("insert", "messages")()

	msg := models.Message{
		TenantID:       tenantID,
		ConversationID: conversationID,
		SenderUserID:   senderID,
		Body:           body,
	}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
