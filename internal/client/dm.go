package client

import (
	"context"
	"errors"
	"slices"

	"murmur/internal/sns"
)

// Conversations synchronizes the caller's DM conversation list.
type Conversations struct {
	transport *Transport
	identity  Identity

	conversations []sns.Conversation
	next          *sns.Cursor
}

// NewConversations creates a conversation-list synchronizer.
func NewConversations(t *Transport, id Identity) *Conversations {
	return &Conversations{transport: t, identity: id}
}

// Items returns the current view in server order.
func (c *Conversations) Items() []sns.Conversation {
	return c.conversations
}

// Load replaces the view with the caller's conversations. Failures fall back
// to an empty view.
func (c *Conversations) Load(ctx context.Context) {
	var resp sns.ListConversationsResponse
	if !loadView(ctx, c.transport, c.identity, sns.ProcListConversations,
		sns.ListConversationsRequest{}, &resp) {
		c.conversations = []sns.Conversation{}
		c.next = nil
		return
	}
	c.conversations = resp.Items
	if c.conversations == nil {
		c.conversations = []sns.Conversation{}
	}
	c.next = resp.Next
}

// GetOrCreate returns the conversation id shared with another user, creating
// it on first contact. It is a navigation primitive: the loaded list is not
// touched. Failures propagate.
func (c *Conversations) GetOrCreate(ctx context.Context, otherUserID uint64) (uint64, error) {
	var resp sns.GetOrCreateDMResponse
	err := c.transport.Call(ctx, c.identity, sns.ProcGetOrCreateDM,
		sns.GetOrCreateDMRequest{OtherUserID: otherUserID}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.ConversationID, nil
}

// Messages synchronizes one conversation's message thread. The view is kept
// totally ordered by id ascending after every load.
type Messages struct {
	transport      *Transport
	identity       Identity
	conversationID uint64

	messages     []sns.Message
	next         *sns.Cursor
	sendInFlight bool
}

// NewMessages creates a message-thread synchronizer for one conversation.
func NewMessages(t *Transport, id Identity, conversationID uint64) *Messages {
	return &Messages{transport: t, identity: id, conversationID: conversationID}
}

// ConversationID returns the conversation this synchronizer is bound to.
func (m *Messages) ConversationID() uint64 {
	return m.conversationID
}

// Items returns the current view, ordered by id ascending.
func (m *Messages) Items() []sns.Message {
	return m.messages
}

// Load replaces the view with the conversation's messages, sorted ascending
// by id regardless of the order the server returned them in. Failures fall
// back to an empty view.
func (m *Messages) Load(ctx context.Context) {
	var resp sns.ListMessagesResponse
	if !loadView(ctx, m.transport, m.identity, sns.ProcListMessages,
		sns.ListMessagesRequest{ConversationID: m.conversationID}, &resp) {
		m.messages = []sns.Message{}
		m.next = nil
		return
	}
	m.messages = resp.Items
	if m.messages == nil {
		m.messages = []sns.Message{}
	}
	m.next = resp.Next
	m.sortByID()
}

// LoadMore fetches the next page and merges it into the ordered view.
// Failures propagate.
func (m *Messages) LoadMore(ctx context.Context) (bool, error) {
	if m.next == nil {
		return false, nil
	}

	var resp sns.ListMessagesResponse
	err := m.transport.Call(ctx, m.identity, sns.ProcListMessages,
		sns.ListMessagesRequest{ConversationID: m.conversationID, Cursor: m.next}, &resp)
	if err != nil {
		return false, err
	}

	m.messages = append(m.messages, resp.Items...)
	m.next = resp.Next
	m.sortByID()
	return len(resp.Items) > 0, nil
}

// Send publishes a message and appends the server's authoritative copy.
// Only one send per thread may be in flight; a second one is rejected with
// ErrActionInFlight. Failures propagate; the view is untouched on error.
func (m *Messages) Send(ctx context.Context, body string) (*sns.Message, error) {
	if m.sendInFlight {
		return nil, ErrActionInFlight
	}
	m.sendInFlight = true
	defer func() { m.sendInFlight = false }()

	var resp sns.SendMessageResponse
	err := m.transport.Call(ctx, m.identity, sns.ProcSendMessage,
		sns.SendMessageRequest{ConversationID: m.conversationID, Body: body}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Message == nil {
		return nil, &TransportError{Kind: KindDecode, Procedure: sns.ProcSendMessage,
			Err: errors.New("response missing message")}
	}

	m.messages = append(m.messages, *resp.Message)
	return resp.Message, nil
}

func (m *Messages) sortByID() {
	slices.SortFunc(m.messages, func(a, b sns.Message) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
