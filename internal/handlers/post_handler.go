package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/middleware"
	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	forum *forum.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(forumService *forum.Service) *PostHandler {
	return &PostHandler{forum: forumService}
}

// RegisterPublicRoutes registers the post routes that need no credentials
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
}

// RegisterPostRoutes registers the authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/my-posts", h.MyPosts)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/upvote", h.UpvotePost)
	g.POST("/posts/:id/downvote", h.DownvotePost)
}

// RegisterAdminRoutes registers the moderation routes for posts
func (h *PostHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/posts/admin/unapproved", h.PendingPosts)
	g.GET("/posts/admin/unapproved-count", h.PendingPostCount)
	g.PUT("/posts/admin/:id/approve", h.ApprovePost)
	g.PUT("/posts/admin/:id/reject", h.RejectPost)
}

// CreatePost submits a new post; non-admin authors enter the moderation queue
func (h *PostHandler) CreatePost(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.forum.SubmitPost(c.Request().Context(), caller, req)
	if err != nil {
		return mapForumError(err)
	}

	if post.Status == models.StatusPending {
		return c.JSON(http.StatusCreated, echo.Map{"msg": "Post submitted for approval", "post": post})
	}
	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns all approved posts, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.forum.ListPosts(c.Request().Context())
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a single post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.forum.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// MyPosts returns the caller's own posts, all statuses with remarks
func (h *PostHandler) MyPosts(c echo.Context) error {
	claims, ok := middleware.CallerFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	posts, err := h.forum.PostsByAuthor(c.Request().Context(), claims.UserID)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost edits a post; the edit puts it back in the moderation queue
func (h *PostHandler) UpdatePost(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.forum.EditPost(c.Request().Context(), caller, c.Param("id"), req)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Post updated and resubmitted for approval", "post": post})
}

// DeletePost removes a post and cascades to its comments
func (h *PostHandler) DeletePost(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	if err := h.forum.DeletePost(c.Request().Context(), caller, c.Param("id")); err != nil {
		return mapForumError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHandler) vote(c echo.Context, dir forum.Direction) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	post, err := h.forum.VotePost(c.Request().Context(), caller, c.Param("id"), dir)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// UpvotePost toggles the caller's upvote on a post
func (h *PostHandler) UpvotePost(c echo.Context) error {
	return h.vote(c, forum.Up)
}

// DownvotePost toggles the caller's downvote on a post
func (h *PostHandler) DownvotePost(c echo.Context) error {
	return h.vote(c, forum.Down)
}

// PendingPosts returns the post moderation queue
func (h *PostHandler) PendingPosts(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	posts, err := h.forum.PendingPosts(c.Request().Context(), caller)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// PendingPostCount returns the size of the post moderation queue
func (h *PostHandler) PendingPostCount(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	count, err := h.forum.PendingPostCount(c.Request().Context(), caller)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// ApprovePost approves a pending or rejected post
func (h *PostHandler) ApprovePost(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	post, err := h.forum.ApprovePost(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Post approved", "post": post})
}

// RejectPost rejects a post with remarks for the author
func (h *PostHandler) RejectPost(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.RejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.forum.RejectPost(c.Request().Context(), caller, c.Param("id"), req.Remarks)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Post rejected", "post": post})
}
