package forum

import (
	"context"

	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// PostStore is the persistence surface the forum service needs for posts.
// Implementations must return ErrNotFound when an id does not resolve.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	FindByStatus(ctx context.Context, status string, newestFirst bool) ([]models.Post, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, id string, post *models.Post) error
	SetStatus(ctx context.Context, id, status, remarks string) (*models.Post, error)
	SetVotes(ctx context.Context, id string, upvotes, downvotes []uint) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}

// CommentStore is the persistence surface for comments.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	FindTopLevel(ctx context.Context, postID, status string) ([]models.Comment, error)
	FindReplies(ctx context.Context, parentID, status string) ([]models.Comment, error)
	FindByStatus(ctx context.Context, status string) ([]models.Comment, error)
	FindByAuthor(ctx context.Context, authorID uint) ([]models.Comment, error)
	Update(ctx context.Context, id string, comment *models.Comment) error
	SetStatus(ctx context.Context, id, status, remarks string) (*models.Comment, error)
	SetVotes(ctx context.Context, id string, upvotes, downvotes []uint) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByParentID(ctx context.Context, parentID string) (int64, error)
	DeleteByPostID(ctx context.Context, postID string) (int64, error)
}
