package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a timeline entry within a tenant.
type Post struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	TenantID     uint64 `gorm:"index:idx_posts_tenant_created;not null" json:"tenant_id"`
	AuthorUserID uint64 `gorm:"index;not null" json:"author_user_id"`
	Body         string `gorm:"type:text;not null" json:"body"`
	// LikeCount is not persisted; computed at query time
	LikeCount uint32 `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount uint32 `gorm:"->" json:"comment_count"`
	// LikedByMe indicates whether the requesting user reacted to this post (computed)
	LikedByMe bool           `gorm:"->" json:"liked_by_me"`
	CreatedAt time.Time      `gorm:"index:idx_posts_tenant_created" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
