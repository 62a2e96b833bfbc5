package server

import (
	"net/http"
	"strings"
	"testing"

	"murmur/internal/models"
	"murmur/internal/sns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAndListFeed(t *testing.T) {
	app, _ := newTestApp(t)

	var created sns.CreatePostResponse
	status := asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "first post"}, &created)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, created.Post)
	assert.Equal(t, "first post", created.Post.Body)

	var feed sns.ListFeedResponse
	status = asAlice(t, app, sns.ProcListFeed, sns.ListFeedRequest{}, &feed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, created.Post.ID, feed.Items[0].ID)
	assert.Nil(t, feed.Next)
}

func TestCreatePost_Validation(t *testing.T) {
	app, _ := newTestApp(t)

	status := asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "   "}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = asAlice(t, app, sns.ProcCreatePost,
		sns.CreatePostRequest{Body: strings.Repeat("x", 2001)}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFeed_TenantIsolation(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Tenant{Slug: "globex", Name: "Globex"}).Error)

	status := asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "acme only"}, nil)
	require.Equal(t, http.StatusOK, status)

	var feed sns.ListFeedResponse
	status = call(t, app, sns.ProcListFeed, "globex", "u_alice", sns.ListFeedRequest{}, &feed)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, feed.Items)
}

func TestFeed_NewestFirstWithCounts(t *testing.T) {
	app, _ := newTestApp(t)

	var first sns.CreatePostResponse
	require.Equal(t, http.StatusOK,
		asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "older"}, &first))
	var second sns.CreatePostResponse
	require.Equal(t, http.StatusOK,
		asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "newer"}, &second))

	// Bob likes and comments on the older post.
	require.Equal(t, http.StatusOK, call(t, app, sns.ProcToggleReaction, "acme", "u_bob",
		sns.ToggleReactionRequest{TargetType: sns.TargetTypePost, TargetID: first.Post.ID, Type: "like"}, nil))
	require.Equal(t, http.StatusOK, call(t, app, sns.ProcCreateComment, "acme", "u_bob",
		sns.CreateCommentRequest{PostID: first.Post.ID, Body: "nice"}, nil))

	var feed sns.ListFeedResponse
	require.Equal(t, http.StatusOK, asAlice(t, app, sns.ProcListFeed, sns.ListFeedRequest{}, &feed))
	require.Len(t, feed.Items, 2)

	assert.Equal(t, second.Post.ID, feed.Items[0].ID)
	older := feed.Items[1]
	assert.Equal(t, uint32(1), older.LikeCount)
	assert.Equal(t, uint32(1), older.CommentCount)
	// Alice did not like it herself.
	assert.False(t, older.LikedByMe)
}

func TestComments_AppendOrder(t *testing.T) {
	app, _ := newTestApp(t)

	var post sns.CreatePostResponse
	require.Equal(t, http.StatusOK,
		asAlice(t, app, sns.ProcCreatePost, sns.CreatePostRequest{Body: "root"}, &post))

	var c1, c2 sns.CreateCommentResponse
	require.Equal(t, http.StatusOK, asAlice(t, app, sns.ProcCreateComment,
		sns.CreateCommentRequest{PostID: post.Post.ID, Body: "first"}, &c1))
	require.Equal(t, http.StatusOK, asAlice(t, app, sns.ProcCreateComment,
		sns.CreateCommentRequest{PostID: post.Post.ID, Body: "second"}, &c2))

	var list sns.ListCommentsResponse
	require.Equal(t, http.StatusOK, asAlice(t, app, sns.ProcListComments,
		sns.ListCommentsRequest{PostID: post.Post.ID}, &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, c1.Comment.ID, list.Items[0].ID)
	assert.Equal(t, c2.Comment.ID, list.Items[1].ID)
}

func TestCreateComment_MissingPost(t *testing.T) {
	app, _ := newTestApp(t)

	status := asAlice(t, app, sns.ProcCreateComment,
		sns.CreateCommentRequest{PostID: 9999, Body: "into the void"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	status := asAlice(t, app, sns.ProcCreatePost, "not an object", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
