package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

const (
	conversationsPageSize = 20
	messagesPageSize      = 50
)

// DMService owns direct-message conversations and their messages.
type DMService struct {
	dmRepo repository.DMRepository
}

// NewDMService creates a new DM service.
func NewDMService(dmRepo repository.DMRepository) *DMService {
	return &DMService{dmRepo: dmRepo}
}

// GetOrCreate returns the id of the DM between the scope's user and the
// other user, creating the conversation on first contact.
func (s *DMService) GetOrCreate(ctx context.Context, scope models.Scope, otherUserID uint64) (uint64, error) {
	if otherUserID == 0 || otherUserID == scope.UserID {
		return 0, models.NewValidationError("invalid other_user_id")
	}

	convID, err := s.dmRepo.FindDMConversation(ctx, scope.TenantID, scope.UserID, otherUserID)
	if err != nil {
		return 0, err
	}
	if convID != 0 {
		return convID, nil
	}
	return s.dmRepo.CreateDMConversation(ctx, scope.TenantID, scope.UserID, otherUserID)
}

// ListConversations returns one newest-first page of the user's conversations.
func (s *DMService) ListConversations(ctx context.Context, scope models.Scope, token string) ([]*models.Conversation, string, error) {
	cursorTime, cursorID, err := repository.DecodeCursor(token)
	if err != nil {
		return nil, "", models.NewValidationError("bad cursor")
	}

	convos, err := s.dmRepo.FindConversations(ctx, scope.TenantID, scope.UserID, conversationsPageSize, cursorTime, cursorID)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(convos) == conversationsPageSize {
		last := convos[len(convos)-1]
		next = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return convos, next, nil
}

// ListMessages returns one oldest-first page of a conversation the scope's
// user belongs to.
func (s *DMService) ListMessages(ctx context.Context, scope models.Scope, conversationID uint64, token string) ([]*models.Message, string, error) {
	cursorTime, cursorID, err := repository.DecodeCursor(token)
	if err != nil {
		return nil, "", models.NewValidationError("bad cursor")
	}

	if err := s.requireMember(ctx, conversationID, scope.UserID); err != nil {
		return nil, "", err
	}

	messages, err := s.dmRepo.FindMessages(ctx, scope.TenantID, conversationID, messagesPageSize, cursorTime, cursorID)
	if err != nil {
		return nil, "", err
	}

	var next string
	if len(messages) == messagesPageSize {
		last := messages[len(messages)-1]
		next = repository.EncodeCursor(last.CreatedAt, last.ID)
	}
	return messages, next, nil
}

// SendMessage appends a message to a conversation the scope's user belongs to.
func (s *DMService) SendMessage(ctx context.Context, scope models.Scope, conversationID uint64, body string) (*models.Message, error) {
	body, err := validBody(body)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, conversationID, scope.UserID); err != nil {
		return nil, err
	}
	return s.dmRepo.CreateMessage(ctx, scope.TenantID, conversationID, scope.UserID, body)
}

func (s *DMService) requireMember(ctx context.Context, conversationID, userID uint64) error {
	ok, err := s.dmRepo.IsMember(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("conversation", conversationID)
	}
	return nil
}
