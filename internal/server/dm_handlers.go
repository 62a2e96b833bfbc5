package server

import (
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
)

// ListConversations returns one newest-first page of the caller's DM
// conversations.
func (s *Server) ListConversations(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.ListConversationsRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	convos, next, err := s.dmService.ListConversations(c.UserContext(), scope, cursorToken(req.Cursor))
	if err != nil {
		return respondError(c, err)
	}

	resp := sns.ListConversationsResponse{Items: make([]sns.Conversation, 0, len(convos)), Next: wireCursor(next)}
	for _, conv := range convos {
		resp.Items = append(resp.Items, wireConversation(conv))
	}
	return c.JSON(resp)
}

// GetOrCreateDM returns the DM conversation between the caller and another
// user, creating it on first contact.
func (s *Server) GetOrCreateDM(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.GetOrCreateDMRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	convID, err := s.dmService.GetOrCreate(c.UserContext(), scope, req.OtherUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sns.GetOrCreateDMResponse{ConversationID: convID})
}

// ListMessages returns one oldest-first page of a conversation's messages.
func (s *Server) ListMessages(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.ListMessagesRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	messages, next, err := s.dmService.ListMessages(c.UserContext(), scope, req.ConversationID, cursorToken(req.Cursor))
	if err != nil {
		return respondError(c, err)
	}

	resp := sns.ListMessagesResponse{Items: make([]sns.Message, 0, len(messages)), Next: wireCursor(next)}
	for _, m := range messages {
		resp.Items = append(resp.Items, wireMessage(m))
	}
	return c.JSON(resp)
}

// SendMessage appends a message to a conversation the caller belongs to.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.SendMessageRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	message, err := s.dmService.SendMessage(c.UserContext(), scope, req.ConversationID, req.Body)
	if err != nil {
		return respondError(c, err)
	}

	wm := wireMessage(message)
	return c.JSON(sns.SendMessageResponse{Message: &wm})
}
