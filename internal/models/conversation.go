package models

import "time"

// ConversationKind distinguishes conversation flavors. Only direct messages
// exist today.
type ConversationKind string

// ConversationKindDM is a two-member direct-message conversation.
const ConversationKindDM ConversationKind = "dm"

// Conversation is a message thread within a tenant. The member set is fixed
// at creation.
type Conversation struct {
	ID        uint64                `gorm:"primaryKey" json:"id"`
	TenantID  uint64                `gorm:"index;not null" json:"tenant_id"`
	Kind      ConversationKind      `gorm:"type:varchar(20);not null;default:'dm'" json:"kind"`
	Members   []ConversationMember  `gorm:"foreignKey:ConversationID" json:"members,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// ConversationMember maps users into a conversation.
type ConversationMember struct {
	ConversationID uint64    `gorm:"primaryKey;autoIncrement:false" json:"conversation_id"`
	UserID         uint64    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
