package models

import "time"

// Message is a single message in a conversation. Messages are append-only.
type Message struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	TenantID       uint64    `gorm:"index;not null" json:"tenant_id"`
	ConversationID uint64    `gorm:"index:idx_messages_conv_created;not null" json:"conversation_id"`
	SenderUserID   uint64    `gorm:"not null" json:"sender_user_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `gorm:"index:idx_messages_conv_created" json:"created_at"`
}
