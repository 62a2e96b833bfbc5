package server

import (
	"encoding/json"
	"errors"
	"time"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// decodeRequest parses the JSON request body into dest. An empty body is
// treated as the zero request, matching protojson's handling of absent
// fields. On failure it writes a 400 response and returns errResponseWritten.
func decodeRequest(c *fiber.Ctx, dest any) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("malformed request body"))
		return errResponseWritten
	}
	return nil
}

// requireScope fetches the scope resolved by the middleware. A missing scope
// means a route was wired without ScopeRequired; answer 401 rather than panic.
func (s *Server) requireScope(c *fiber.Ctx) (models.Scope, error) {
	scope, ok := middleware.ScopeFromLocals(c)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("identity required"))
		return models.Scope{}, errResponseWritten
	}
	return scope, nil
}

// respondError maps application error codes onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "UNAUTHENTICATED":
			status = fiber.StatusUnauthorized
		case "PERMISSION_DENIED":
			status = fiber.StatusForbidden
		}
	}
	return models.RespondWithError(c, status, err)
}

func wireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func wireCursor(token string) *sns.Cursor {
	if token == "" {
		return nil
	}
	return &sns.Cursor{Token: token}
}

func cursorToken(cursor *sns.Cursor) string {
	if cursor == nil {
		return ""
	}
	return cursor.Token
}

func wirePost(p *models.Post) sns.Post {
	return sns.Post{
		ID:           p.ID,
		AuthorUserID: p.AuthorUserID,
		Body:         p.Body,
		CreatedAt:    wireTime(p.CreatedAt),
		LikedByMe:    p.LikedByMe,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
	}
}

func wireComment(c *models.Comment) sns.Comment {
	return sns.Comment{
		ID:           c.ID,
		PostID:       c.PostID,
		AuthorUserID: c.AuthorUserID,
		Body:         c.Body,
		CreatedAt:    wireTime(c.CreatedAt),
	}
}

func wireConversation(conv *models.Conversation) sns.Conversation {
	members := make([]uint64, 0, len(conv.Members))
	for _, m := range conv.Members {
		members = append(members, m.UserID)
	}
	return sns.Conversation{
		ID:            conv.ID,
		CreatedAt:     wireTime(conv.CreatedAt),
		MemberUserIDs: members,
	}
}

func wireMessage(m *models.Message) sns.Message {
	return sns.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderUserID:   m.SenderUserID,
		Body:           m.Body,
		CreatedAt:      wireTime(m.CreatedAt),
	}
}
