package client

import (
	"context"
	"net/http"
	"testing"

	"murmur/internal/sns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_LoadServerOrder(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{
				{ID: 9, Body: "newest"},
				{ID: 4, Body: "older"},
			}})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	feed.Load(context.Background())

	posts := feed.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, uint64(9), posts[0].ID)
	assert.Equal(t, uint64(4), posts[1].ID)
}

func TestFeed_LoadFallsBackOnNetworkFailure(t *testing.T) {
	feed := NewFeed(NewTransport("http://127.0.0.1:1"), testIdentity())
	feed.Load(context.Background())

	// Empty view, no panic, no error surfaced.
	assert.Empty(t, feed.Posts())
}

func TestFeed_LoadFallsBackOnRemoteError(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	feed.Load(context.Background())
	assert.Empty(t, feed.Posts())
}

func TestFeed_LoadFallsBackWhenGetMeFails(t *testing.T) {
	listCalled := false
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcGetMe: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			listCalled = true
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{{ID: 1}}})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	feed.Load(context.Background())

	assert.Empty(t, feed.Posts())
	// The session preflight failed, so the list was never requested.
	assert.False(t, listCalled)
}

func TestFeed_LoadIsIdempotent(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{{ID: 3}, {ID: 1}}})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	ctx := context.Background()
	feed.Load(ctx)
	feed.Load(ctx)

	// A reload replaces the view, it does not accumulate.
	assert.Len(t, feed.Posts(), 2)
}

func TestFeed_CreatePostPrepends(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{{ID: 5, Body: "existing"}}})
		},
		sns.ProcCreatePost: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.CreatePostResponse{Post: &sns.Post{ID: 8, Body: "fresh"}})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	ctx := context.Background()
	feed.Load(ctx)

	post, err := feed.CreatePost(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), post.ID)

	posts := feed.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, uint64(8), posts[0].ID)
	assert.Equal(t, uint64(5), posts[1].ID)
}

func TestFeed_CreatePostErrorPropagates(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcCreatePost: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"body is required"}`))
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	_, err := feed.CreatePost(context.Background(), "")
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, KindRemote, te.Kind)
	assert.Empty(t, feed.Posts())
}

func TestFeed_ToggleLikeReconciles(t *testing.T) {
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{
				{ID: 7, LikedByMe: false, LikeCount: 3},
			}})
		},
		sns.ProcToggleReaction: func(w http.ResponseWriter, r *http.Request) {
			// The server's answer is authoritative, whatever the client
			// would have derived locally.
			writeJSON(t, w, sns.ToggleReactionResponse{Active: true, Total: 4})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	ctx := context.Background()
	feed.Load(ctx)

	require.NoError(t, feed.ToggleLike(ctx, 7))

	posts := feed.Posts()
	require.Len(t, posts, 1)
	assert.True(t, posts[0].LikedByMe)
	assert.Equal(t, uint32(4), posts[0].LikeCount)
}

func TestFeed_ToggleLikeInFlightGuard(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcToggleReaction: func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			writeJSON(t, w, sns.ToggleReactionResponse{Active: true, Total: 1})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	feed.posts = []sns.Post{{ID: 7}}

	done := make(chan error, 1)
	go func() {
		done <- feed.ToggleLike(context.Background(), 7)
	}()

	<-entered
	// A double-fire on the same post while the first call is pending.
	err := feed.ToggleLike(context.Background(), 7)
	assert.ErrorIs(t, err, ErrActionInFlight)

	close(release)
	require.NoError(t, <-done)

	// Once settled, toggling again is allowed (the guard was cleared).
	assert.True(t, feed.posts[0].LikedByMe)
}

func TestFeed_LoadMore(t *testing.T) {
	page := 0
	srv := newRPCServer(t, map[string]http.HandlerFunc{
		sns.ProcListFeed: func(w http.ResponseWriter, r *http.Request) {
			var req sns.ListFeedRequest
			require.NoError(t, jsonDecode(r, &req))
			page++
			if req.Cursor == nil {
				writeJSON(t, w, sns.ListFeedResponse{
					Items: []sns.Post{{ID: 10}, {ID: 9}},
					Next:  &sns.Cursor{Token: "page2"},
				})
				return
			}
			assert.Equal(t, "page2", req.Cursor.Token)
			writeJSON(t, w, sns.ListFeedResponse{Items: []sns.Post{{ID: 8}}})
		},
	})

	feed := NewFeed(NewTransport(srv.URL), testIdentity())
	ctx := context.Background()
	feed.Load(ctx)
	require.Len(t, feed.Posts(), 2)

	more, err := feed.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, more)
	require.Len(t, feed.Posts(), 3)
	assert.Equal(t, uint64(8), feed.Posts()[2].ID)

	// The last page had no cursor, so there is nothing more to fetch.
	more, err = feed.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, more)
}
