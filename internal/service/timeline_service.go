package service

import (
	"context"
	"strings"

	"murmur/internal/models"
	"murmur/internal/repository"
)

const (
	maxBodyLen       = 2000
	feedPageSize     = 20
	commentsPageSize = 50
)

// TimelineService owns posts and comments within a tenant.
type TimelineService struct {
	timelineRepo repository.TimelineRepository
}

// NewTimelineService creates a new timeline service.
func NewTimelineService(timelineRepo repository.TimelineRepository) *TimelineService {
	return &TimelineService{timelineRepo: timelineRepo}
}

func validBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", models.NewValidationError("body is required")
	}
	if len(body) > maxBodyLen {
		return "", models.NewValidationError("body too long (max 2000 characters)")
	}
	return body, nil
}

// CreatePost stores a new post authored by the scope's user.
func (s *TimelineService) CreatePost(ctx context.Context, scope models.Scope, body string) (*models.Post, error) {
	body, err := validBody(body)
	if err != nil {
		return nil, err
	}
	return s.timelineRepo.CreatePost(ctx, scope.TenantID, scope.UserID, body)
}

// ListFeed returns one newest-first page of the tenant's timeline plus the
// cursor for the next page ("" when this is the last page).
func (s *TimelineService) ListFeed(ctx context.Context, scope models.Scope, token string) ([]*models.Post, string, error) {
	cursorTime, cursorID, err := repository.DecodeCursor(token)
	if err != nil {
		return nil, "", models.NewValidationError("bad cursor")
	}

	posts, err := s.timelineRepo.FindFeed(ctx, scope.TenantID, scope.UserID, feedPageSize, cursorTime, cursorID)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(posts) == feedPageSize {
		last := posts[len(posts)-1]
		next = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return posts, next, nil
}

// CreateComment appends a comment to a post in the scope's tenant.
func (s *TimelineService) CreateComment(ctx context.Context, scope models.Scope, postID uint64, body string) (*models.Comment, error) {
	body, err := validBody(body)
	if err != nil {
		return nil, err
	}
	if _, err := s.timelineRepo.GetPost(ctx, scope.TenantID, postID); err != nil {
		return nil, models.NewNotFoundError("post", postID)
	}
	return s.timelineRepo.CreateComment(ctx, scope.TenantID, postID, scope.UserID, body)
}

// ListComments returns one oldest-first page of a post's comments.
func (s *TimelineService) ListComments(ctx context.Context, scope models.Scope, postID uint64, token string) ([]*models.Comment, string, error) {
	cursorTime, cursorID, err := repository.DecodeCursor(token)
	if err != nil {
		return nil, "", models.NewValidationError("bad cursor")
	}

	comments, err := s.timelineRepo.FindComments(ctx, scope.TenantID, postID, commentsPageSize, cursorTime, cursorID)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(comments) == commentsPageSize {
		last := comments[len(comments)-1]
		next = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return comments, next, nil
}
