package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/middleware"
	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	forum *forum.Service
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(forumService *forum.Service) *CommentHandler {
	return &CommentHandler{forum: forumService}
}

// RegisterPublicRoutes registers the comment routes that need no credentials
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/comments/replies/:commentId", h.Replies)
	g.GET("/comments/:postId", h.ListThread)
}

// RegisterCommentRoutes registers the authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments/my-comments", h.MyComments)
	g.POST("/comments/reply/:commentId", h.AddReply)
	g.POST("/comments/:postId", h.AddComment)
	g.POST("/comments/:id/upvote", h.UpvoteComment)
	g.POST("/comments/:id/downvote", h.DownvoteComment)
	g.PUT("/comments/:id", h.EditComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// RegisterAdminRoutes registers the moderation routes for comments
func (h *CommentHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/comments/admin/unapproved", h.PendingComments)
	g.PUT("/comments/admin/:id/approve", h.ApproveComment)
	g.PUT("/comments/admin/:id/reject", h.RejectComment)
}

// AddComment creates a top-level comment on a post
func (h *CommentHandler) AddComment(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.forum.AddComment(c.Request().Context(), caller, c.Param("postId"), req.Text)
	if err != nil {
		return mapForumError(err)
	}

	if comment.Status == models.StatusPending {
		return c.JSON(http.StatusCreated, echo.Map{"msg": "Comment submitted for approval", "comment": comment})
	}
	return c.JSON(http.StatusCreated, comment)
}

// AddReply creates a reply; replying to a reply attaches to the thread root
func (h *CommentHandler) AddReply(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.forum.AddReply(c.Request().Context(), caller, c.Param("commentId"), req.Text)
	if err != nil {
		return mapForumError(err)
	}

	if reply.Status == models.StatusPending {
		return c.JSON(http.StatusCreated, echo.Map{"msg": "Reply submitted for approval", "reply": reply})
	}
	return c.JSON(http.StatusCreated, reply)
}

// ListThread returns the approved comment tree of a post
func (h *CommentHandler) ListThread(c echo.Context) error {
	threads, err := h.forum.ListThread(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, threads)
}

// Replies returns the approved replies of a comment, oldest first
func (h *CommentHandler) Replies(c echo.Context) error {
	replies, err := h.forum.Replies(c.Request().Context(), c.Param("commentId"))
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, replies)
}

// MyComments returns the caller's own comments, all statuses with remarks
func (h *CommentHandler) MyComments(c echo.Context) error {
	claims, ok := middleware.CallerFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	comments, err := h.forum.CommentsByAuthor(c.Request().Context(), claims.UserID)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// EditComment edits a comment; the edit puts it back in the moderation queue
func (h *CommentHandler) EditComment(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.forum.EditComment(c.Request().Context(), caller, c.Param("id"), req.Text)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Comment updated", "comment": comment})
}

// DeleteComment removes a comment and cascades to its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	if err := h.forum.DeleteComment(c.Request().Context(), caller, c.Param("id")); err != nil {
		return mapForumError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) vote(c echo.Context, dir forum.Direction) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	comment, err := h.forum.VoteComment(c.Request().Context(), caller, c.Param("id"), dir)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// UpvoteComment toggles the caller's upvote on a comment
func (h *CommentHandler) UpvoteComment(c echo.Context) error {
	return h.vote(c, forum.Up)
}

// DownvoteComment toggles the caller's downvote on a comment
func (h *CommentHandler) DownvoteComment(c echo.Context) error {
	return h.vote(c, forum.Down)
}

// PendingComments returns the comment moderation queue
func (h *CommentHandler) PendingComments(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	comments, err := h.forum.PendingComments(c.Request().Context(), caller)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// ApproveComment approves a pending or rejected comment
func (h *CommentHandler) ApproveComment(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	comment, err := h.forum.ApproveComment(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Comment approved", "comment": comment})
}

// RejectComment rejects a comment with remarks for the author
func (h *CommentHandler) RejectComment(c echo.Context) error {
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

	comment, err := h.forum.RejectComment(c.Request().Context(), caller, c.Param("id"), req.Remarks)
	if err != nil {
		return mapForumError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Comment rejected", "comment": comment})
}
