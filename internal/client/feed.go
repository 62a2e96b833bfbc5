package client

import (
	"context"
	"errors"

	"murmur/internal/sns"
)

// ErrActionInFlight is returned when an action fires while the previous one
// on the same entity is still pending.
var ErrActionInFlight = errors.New("action already in flight")

// Feed synchronizes the tenant timeline. A Feed has a single owner
// goroutine; it is not safe for concurrent use.
type Feed struct {
	transport *Transport
	identity  Identity

	posts []sns.Post
	next  *sns.Cursor

	togglesInFlight map[uint64]bool
}

// NewFeed creates a feed synchronizer bound to one identity.
func NewFeed(t *Transport, id Identity) *Feed {
	return &Feed{
		transport:       t,
		identity:        id,
		togglesInFlight: make(map[uint64]bool),
	}
}

// Posts returns the current view in server order, newest first.
func (f *Feed) Posts() []sns.Post {
	return f.posts
}

// Load replaces the view with the first feed page. Failures fall back to an
// empty view and never surface as errors.
func (f *Feed) Load(ctx context.Context) {
	var resp sns.ListFeedResponse
	if !loadView(ctx, f.transport, f.identity, sns.ProcListFeed, sns.ListFeedRequest{}, &resp) {
		f.posts = []sns.Post{}
		f.next = nil
		return
	}
	f.posts = resp.Items
	if f.posts == nil {
		f.posts = []sns.Post{}
	}
	f.next = resp.Next
}

// LoadMore appends the next page to the view. Unlike Load this is an action
// in the middle of a session, so failures propagate.
func (f *Feed) LoadMore(ctx context.Context) (bool, error) {
	if f.next == nil {
		return false, nil
	}

	var resp sns.ListFeedResponse
	err := f.transport.Call(ctx, f.identity, sns.ProcListFeed,
		sns.ListFeedRequest{Cursor: f.next}, &resp)
	if err != nil {
		return false, err
	}

	f.posts = append(f.posts, resp.Items...)
	f.next = resp.Next
	return len(resp.Items) > 0, nil
}

// CreatePost publishes a new post and prepends the server's authoritative
// copy to the view. Failures propagate; the view is untouched on error.
func (f *Feed) CreatePost(ctx context.Context, body string) (*sns.Post, error) {
	var resp sns.CreatePostResponse
	err := f.transport.Call(ctx, f.identity, sns.ProcCreatePost,
		sns.CreatePostRequest{Body: body}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Post == nil {
		return nil, &TransportError{Kind: KindDecode, Procedure: sns.ProcCreatePost,
			Err: errors.New("response missing post")}
	}

	f.posts = append([]sns.Post{*resp.Post}, f.posts...)
	return resp.Post, nil
}

// ToggleLike flips the caller's like on a post and reconciles the view
// strictly from the server's (active, total) answer. A second toggle on the
// same post while one is pending is rejected with ErrActionInFlight.
func (f *Feed) ToggleLike(ctx context.Context, postID uint64) error {
	if f.togglesInFlight[postID] {
		return ErrActionInFlight
	}
	f.togglesInFlight[postID] = true
	defer delete(f.togglesInFlight, postID)

	var resp sns.ToggleReactionResponse
	err := f.transport.Call(ctx, f.identity, sns.ProcToggleReaction,
		sns.ToggleReactionRequest{
			TargetType: sns.TargetTypePost,
			TargetID:   postID,
			Type:       "like",
		}, &resp)
	if err != nil {
		return err
	}

	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].LikedByMe = resp.Active
			f.posts[i].LikeCount = resp.Total
			break
		}
	}
	return nil
}
