package models

import "time"

// Comment is a comment on a post. Comments are append-only; there is no edit
// or delete flow.
type Comment struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	TenantID     uint64    `gorm:"index;not null" json:"tenant_id"`
	PostID       uint64    `gorm:"index:idx_comments_post_created;not null" json:"post_id"`
	AuthorUserID uint64    `gorm:"not null" json:"author_user_id"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `gorm:"index:idx_comments_post_created" json:"created_at"`
}
