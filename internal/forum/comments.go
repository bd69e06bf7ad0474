package forum

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// AddComment creates a top-level comment on a post.
func (s *Service) AddComment(ctx context.Context, caller Caller, postID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:       text,
		AuthorID:   caller.ID,
		AuthorName: caller.Name,
		PostID:     post.ID,
		ParentID:   nil,
		Status:     submissionStatus(caller),
		Upvotes:    []uint{},
		Downvotes:  []uint{},
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// AddReply creates a reply under a comment. Replies always attach to the
// top-level ancestor: replying to a reply lands in the same flat tier as its
// siblings rather than nesting deeper.
func (s *Service) AddReply(ctx context.Context, caller Caller, parentID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: reply text is required", ErrValidation)
	}

	parent, err := s.comments.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	root := parent.ID
	if parent.ParentID != nil {
		root = *parent.ParentID
	}

	reply := &models.Comment{
		Text:       text,
		AuthorID:   caller.ID,
		AuthorName: caller.Name,
		PostID:     parent.PostID,
		ParentID:   &root,
		Status:     submissionStatus(caller),
		Upvotes:    []uint{},
		Downvotes:  []uint{},
	}

	if err := s.comments.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// ListThread returns the approved top-level comments of a post, newest first,
// each carrying its approved replies oldest first. New discussion stays
// visible at the top while each reply chain reads chronologically.
func (s *Service) ListThread(ctx context.Context, postID string) ([]models.CommentThread, error) {
	topLevel, err := s.comments.FindTopLevel(ctx, postID, models.StatusApproved)
	if err != nil {
		return nil, err
	}

	threads := make([]models.CommentThread, 0, len(topLevel))
	for _, c := range topLevel {
		replies, err := s.comments.FindReplies(ctx, c.ID.Hex(), models.StatusApproved)
		if err != nil {
			return nil, err
		}
		threads = append(threads, models.CommentThread{Comment: c, Replies: replies})
	}
	return threads, nil
}

// Replies returns the approved replies of a single comment, oldest first.
func (s *Service) Replies(ctx context.Context, commentID string) ([]models.Comment, error) {
	return s.comments.FindReplies(ctx, commentID, models.StatusApproved)
}

// CommentsByAuthor returns all of the author's comments regardless of
// status, including rejection remarks, for the profile view.
func (s *Service) CommentsByAuthor(ctx context.Context, authorID uint) ([]models.Comment, error) {
	return s.comments.FindByAuthor(ctx, authorID)
}

// EditComment updates a comment's text. Author-only, and the edit sends the
// comment back through the moderation queue.
func (s *Service) EditComment(ctx context.Context, caller Caller, id, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != caller.ID {
		return nil, fmt.Errorf("%w: only the author may edit this comment", ErrForbidden)
	}

	comment.Text = text
	comment.Status = models.StatusPending
	comment.Remarks = ""
	comment.UpdatedAt = time.Now()

	if err := s.comments.Update(ctx, id, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and its replies. Permitted for the author
// or an admin. Replies go first so a partial failure cannot orphan them.
func (s *Service) DeleteComment(ctx context.Context, caller Caller, id string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != caller.ID && !caller.IsAdmin() {
		return fmt.Errorf("%w: only the author or an admin may delete this comment", ErrForbidden)
	}

	removed, err := s.comments.DeleteByParentID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting replies of comment %s: %w", id, err)
	}
	if removed > 0 {
		log.Printf("cascade delete: removed %d replies of comment %s", removed, id)
	}

	return s.comments.Delete(ctx, id)
}

// PendingComments returns the comment moderation queue, oldest first.
func (s *Service) PendingComments(ctx context.Context, caller Caller) ([]models.Comment, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return s.comments.FindByStatus(ctx, models.StatusPending)
}

// ApproveComment marks a comment approved and clears any rejection remarks.
func (s *Service) ApproveComment(ctx context.Context, caller Caller, id string) (*models.Comment, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return s.comments.SetStatus(ctx, id, models.StatusApproved, "")
}

// RejectComment marks a comment rejected with the given remarks.
func (s *Service) RejectComment(ctx context.Context, caller Caller, id, remarks string) (*models.Comment, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	if strings.TrimSpace(remarks) == "" {
		return nil, fmt.Errorf("%w: rejection remarks are required", ErrValidation)
	}
	return s.comments.SetStatus(ctx, id, models.StatusRejected, remarks)
}
