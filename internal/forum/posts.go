package forum

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// SubmitPost creates a new post. Admin authors are approved immediately,
// everyone else enters the moderation queue.
func (s *Service) SubmitPost(ctx context.Context, caller Caller, req models.CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		AuthorID:   caller.ID,
		AuthorName: caller.Name,
		Status:     submissionStatus(caller),
		Upvotes:    []uint{},
		Downvotes:  []uint{},
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns approved posts, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.FindByStatus(ctx, models.StatusApproved, true)
}

// GetPost returns a single post by id.
func (s *Service) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// PostsByAuthor returns all of the author's posts regardless of status, so
// the profile view can show pending and rejected items with their remarks.
func (s *Service) PostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	return s.posts.FindByAuthor(ctx, authorID)
}

// EditPost updates a post's content. Only the original author may edit, and
// the edit sends the post back through the moderation queue.
func (s *Service) EditPost(ctx context.Context, caller Caller, id string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != caller.ID {
		return nil, fmt.Errorf("%w: only the author may edit this post", ErrForbidden)
	}

	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	post.Status = models.StatusPending
	post.Remarks = ""
	post.UpdatedAt = time.Now()

	if err := s.posts.Update(ctx, id, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and all of its comments. Permitted for the
// author or an admin. Comments are deleted before the post so a partial
// failure cannot orphan them.
func (s *Service) DeletePost(ctx context.Context, caller Caller, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if post.AuthorID != caller.ID && !caller.IsAdmin() {
		return fmt.Errorf("%w: only the author or an admin may delete this post", ErrForbidden)
	}

	removed, err := s.comments.DeleteByPostID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting comments of post %s: %w", id, err)
	}
	if removed > 0 {
		log.Printf("cascade delete: removed %d comments of post %s", removed, id)
	}

	return s.posts.Delete(ctx, id)
}

// PendingPosts returns the moderation queue for posts, oldest first.
func (s *Service) PendingPosts(ctx context.Context, caller Caller) ([]models.Post, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return s.posts.FindByStatus(ctx, models.StatusPending, false)
}

// PendingPostCount returns the size of the post moderation queue.
func (s *Service) PendingPostCount(ctx context.Context, caller Caller) (int64, error) {
	if !caller.IsAdmin() {
		return 0, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return s.posts.CountByStatus(ctx, models.StatusPending)
}

// ApprovePost marks a post approved and clears any rejection remarks.
func (s *Service) ApprovePost(ctx context.Context, caller Caller, id string) (*models.Post, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	return s.posts.SetStatus(ctx, id, models.StatusApproved, "")
}

// RejectPost marks a post rejected with the given remarks. Remarks are
// required so the author always learns why.
func (s *Service) RejectPost(ctx context.Context, caller Caller, id, remarks string) (*models.Post, error) {
	if !caller.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	if strings.TrimSpace(remarks) == "" {
		return nil, fmt.Errorf("%w: rejection remarks are required", ErrValidation)
	}
	return s.posts.SetStatus(ctx, id, models.StatusRejected, remarks)
}
