package models

import "time"

// User is a platform-wide account. Users are keyed by the subject identifier
// handed in by the identity provider (the X-User dev header in development)
// and upserted on first sight.
type User struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	AuthSub     string    `gorm:"uniqueIndex;size:191;not null" json:"auth_sub"`
	DisplayName string    `gorm:"size:255" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
