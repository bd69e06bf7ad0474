package forum

import (
	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// Caller identifies who is performing an operation. Handlers build it from
// verified token claims; tests build it directly.
type Caller struct {
	ID   uint
	Name string
	Role string
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// Service applies the moderation, voting, and threading rules on top of the
// post and comment stores.
type Service struct {
	posts    PostStore
	comments CommentStore
}

// NewService creates a forum Service
func NewService(posts PostStore, comments CommentStore) *Service {
	return &Service{posts: posts, comments: comments}
}

// submissionStatus is the status a newly created item is born with.
// Admin submissions skip the moderation queue.
func submissionStatus(caller Caller) string {
	if caller.IsAdmin() {
		return models.StatusApproved
	}
	return models.StatusPending
}
