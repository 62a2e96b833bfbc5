package repository

import (
	"context"
	"time"

	"murmur/internal/models"
	"murmur/internal/observability"

	"gorm.io/gorm"
)

// feedColumns computes the per-request fields of a post: reaction and
// comment totals plus whether the requesting user reacted. Matches the
// shape the client reconciles against after a toggle.
const feedColumns = `posts.*,
	(SELECT COUNT(*) FROM reactions r WHERE r.tenant_id = posts.tenant_id AND r.target_type = 'post' AND r.target_id = posts.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.tenant_id = posts.tenant_id AND c.post_id = posts.id) AS comment_count,
	EXISTS(SELECT 1 FROM reactions r2 WHERE r2.tenant_id = posts.tenant_id AND r2.target_type = 'post' AND r2.target_id = posts.id AND r2.user_id = ?) AS liked_by_me`

// TimelineRepository defines the interface for post and comment data operations.
type TimelineRepository interface {
	CreatePost(ctx context.Context, tenantID, authorID uint64, body string) (*models.Post, error)
	FindFeed(ctx context.Context, tenantID, userID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Post, error)
	GetPost(ctx context.Context, tenantID, postID uint64) (*models.Post, error)
	CreateComment(ctx context.Context, tenantID, postID, authorID uint64, body string) (*models.Comment, error)
	FindComments(ctx context.Context, tenantID, postID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Comment, error)
}

type timelineRepository struct {
	db *gorm.DB
}

// NewTimelineRepository creates a new timeline repository
func NewTimelineRepository(db *gorm.DB) TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) CreatePost(ctx context.Context, tenantID, authorID uint64, body string) (*models.Post, error) {
	defer observability.TrackQuery("insert", "posts")()

	post := models.Post{
		TenantID:     tenantID,
		AuthorUserID: authorID,
		Body:         body,
	}
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *timelineRepository) FindFeed(ctx context.Context, tenantID, userID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Post, error) {
	defer observability.TrackQuery("select", "posts")()

	q := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(feedColumns, userID).
		Where("posts.tenant_id = ?", tenantID)
	if cursorID != 0 {
		q = q.Where("(posts.created_at < ? OR (posts.created_at = ? AND posts.id < ?))", cursorTime, cursorTime, cursorID)
	}

	posts := make([]*models.Post, 0, limit)
	err := q.Order("posts.created_at DESC, posts.id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *timelineRepository) GetPost(ctx context.Context, tenantID, postID uint64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *timelineRepository) CreateComment(ctx context.Context, tenantID, postID, authorID uint64, body string) (*models.Comment, error) {
	defer observability.TrackQuery("insert", "comments")()

	comment := models.Comment{
		TenantID:     tenantID,
		PostID:       postID,
		AuthorUserID: authorID,
		Body:         body,
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *timelineRepository) FindComments(ctx context.Context, tenantID, postID uint64, limit int, cursorTime time.Time, cursorID uint64) ([]*models.Comment, error) {
	defer observability.TrackQuery("select", "comments")()

	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND post_id = ?", tenantID, postID)
	if cursorID != 0 {
		q = q.Where("(created_at > ? OR (created_at = ? AND id > ?))", cursorTime, cursorTime, cursorID)
	}

	comments := make([]*models.Comment, 0, limit)
	err := q.Order("created_at ASC, id ASC").Limit(limit).Find(&comments).Error
	return comments, err
}
