package client

import (
	"context"
	"errors"

	"murmur/internal/sns"
)

// Comments synchronizes the comment list of one post. Comments are
// append-only and never reordered.
type Comments struct {
	transport *Transport
	identity  Identity
	postID    uint64

	comments []sns.Comment
	next     *sns.Cursor
}

// NewComments creates a comment synchronizer for one post.
func NewComments(t *Transport, id Identity, postID uint64) *Comments {
	return &Comments{transport: t, identity: id, postID: postID}
}

// PostID returns the post this synchronizer is bound to.
func (c *Comments) PostID() uint64 {
	return c.postID
}

// Items returns the current view in server order, oldest first.
func (c *Comments) Items() []sns.Comment {
	return c.comments
}

// Load replaces the view with the post's comments. Failures fall back to an
// empty view.
func (c *Comments) Load(ctx context.Context) {
	var resp sns.ListCommentsResponse
	if !loadView(ctx, c.transport, c.identity, sns.ProcListComments,
		sns.ListCommentsRequest{PostID: c.postID}, &resp) {
		c.comments = []sns.Comment{}
		c.next = nil
		return
	}
	c.comments = resp.Items
	if c.comments == nil {
		c.comments = []sns.Comment{}
	}
	c.next = resp.Next
}

// Add publishes a comment and appends the server's authoritative copy to the
// view. Failures propagate; the view is untouched on error.
func (c *Comments) Add(ctx context.Context, body string) (*sns.Comment, error) {
	var resp sns.CreateCommentResponse
	err := c.transport.Call(ctx, c.identity, sns.ProcCreateComment,
		sns.CreateCommentRequest{PostID: c.postID, Body: body}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Comment == nil {
		return nil, &TransportError{Kind: KindDecode, Procedure: sns.ProcCreateComment,
			Err: errors.New("response missing comment")}
	}

	c.comments = append(c.comments, *resp.Comment)
	return resp.Comment, nil
}
