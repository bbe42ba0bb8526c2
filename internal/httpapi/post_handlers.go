package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentlink/talentlink/internal/post"
)

// POST /api/v1/posts
func (r *Router) handleCreatePost(c echo.Context) error {
	var req post.CreateInput
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	p, err := r.posts.Create(c.Request().Context(), requesterID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, p, "Post created successfully")
}

// GET /api/v1/posts/feed
func (r *Router) handleFeed(c echo.Context) error {
	posts, err := r.posts.Feed(c.Request().Context(), requesterID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, posts, "Feed fetched successfully")
}

// GET /api/v1/posts/user/:id
func (r *Router) handlePostsByUser(c echo.Context) error {
	posts, err := r.posts.PostsByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, posts, "User posts fetched successfully")
}

type updatePostRequest struct {
	Content string `json:"content"`
}

// PUT /api/v1/posts/:id
func (r *Router) handleUpdatePost(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	p, err := r.posts.Update(c.Request().Context(), c.Param("id"), requesterID(c), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, p, "Post updated successfully")
}

// DELETE /api/v1/posts/:id
func (r *Router) handleDeletePost(c echo.Context) error {
	if err := r.posts.Delete(c.Request().Context(), c.Param("id"), requesterID(c)); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Post deleted successfully")
}

// POST /api/v1/posts/:id/like
func (r *Router) handleLikePost(c echo.Context) error {
	result, err := r.posts.ToggleLike(c.Request().Context(), c.Param("id"), requesterID(c))
	if err != nil {
		return fail(c, err)
	}
	message := "Post liked"
	if !result.Liked {
		message = "Post unliked"
	}
	return respond(c, http.StatusOK, result, message)
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// POST /api/v1/posts/:id/comments
func (r *Router) handleAddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return failMsg(c, http.StatusBadRequest, "invalid request body")
	}
	comment, err := r.posts.AddComment(c.Request().Context(), c.Param("id"), requesterID(c), req.Content)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// GET /api/v1/posts/:id/comments
func (r *Router) handleComments(c echo.Context) error {
	comments, err := r.posts.CommentsForPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, comments, "Comments fetched successfully")
}

// DELETE /api/v1/posts/:id/comments/:cid
func (r *Router) handleDeleteComment(c echo.Context) error {
	if err := r.posts.DeleteComment(c.Request().Context(), c.Param("cid"), requesterID(c)); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, nil, "Comment deleted successfully")
}
