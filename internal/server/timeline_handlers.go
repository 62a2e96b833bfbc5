package server

import (
	"murmur/internal/sns"

	"github.com/gofiber/fiber/v2"
)

// ListFeed returns one newest-first page of the tenant's timeline.
func (s *Server) ListFeed(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.ListFeedRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	posts, next, err := s.timelineService.ListFeed(c.UserContext(), scope, cursorToken(req.Cursor))
	if err != nil {
		return respondError(c, err)
	}

	resp := sns.ListFeedResponse{Items: make([]sns.Post, 0, len(posts)), Next: wireCursor(next)}
	for _, p := range posts {
		resp.Items = append(resp.Items, wirePost(p))
	}
	return c.JSON(resp)
}

// CreatePost stores a new post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.CreatePostRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	post, err := s.timelineService.CreatePost(c.UserContext(), scope, req.Body)
	if err != nil {
		return respondError(c, err)
	}

	wp := wirePost(post)
	return c.JSON(sns.CreatePostResponse{Post: &wp})
}

// ListComments returns one oldest-first page of a post's comments.
func (s *Server) ListComments(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.ListCommentsRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	comments, next, err := s.timelineService.ListComments(c.UserContext(), scope, req.PostID, cursorToken(req.Cursor))
	if err != nil {
		return respondError(c, err)
	}

	resp := sns.ListCommentsResponse{Items: make([]sns.Comment, 0, len(comments)), Next: wireCursor(next)}
	for _, cm := range comments {
		resp.Items = append(resp.Items, wireComment(cm))
	}
	return c.JSON(resp)
}

// CreateComment appends a comment to a post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	scope, err := s.requireScope(c)
	if err != nil {
		return nil
	}

	var req sns.CreateCommentRequest
	if err := decodeRequest(c, &req); err != nil {
		return nil
	}

	comment, err := s.timelineService.CreateComment(c.UserContext(), scope, req.PostID, req.Body)
	if err != nil {
		return respondError(c, err)
	}

	wc := wireComment(comment)
	return c.JSON(sns.CreateCommentResponse{Comment: &wc})
}
