package forum

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sajidhasan/forumhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory PostStore and CommentStore so the moderation rules run under
// test without a database. A shared monotonic clock keeps created_at
// ordering deterministic.

type memClock struct {
	mu  sync.Mutex
	now time.Time
}

func newMemClock() *memClock {
	return &memClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *memClock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type memPostStore struct {
	clock *memClock
	posts map[string]*models.Post
}

func newMemPostStore(clock *memClock) *memPostStore {
	return &memPostStore{clock: clock, posts: map[string]*models.Post{}}
}

func (s *memPostStore) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = s.clock.tick()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	s.posts[post.ID.Hex()] = &clone
	return nil
}

func (s *memPostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	clone := *post
	return &clone, nil
}

func (s *memPostStore) FindByStatus(_ context.Context, status string, newestFirst bool) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memPostStore) FindByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	out := []models.Post{}
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memPostStore) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range s.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memPostStore) Update(_ context.Context, id string, post *models.Post) error {
	stored, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.ImageURL = post.ImageURL
	stored.Status = post.Status
	stored.Remarks = post.Remarks
	stored.UpdatedAt = post.UpdatedAt
	return nil
}

func (s *memPostStore) SetStatus(_ context.Context, id, status, remarks string) (*models.Post, error) {
	stored, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	stored.Status = status
	stored.Remarks = remarks
	clone := *stored
	return &clone, nil
}

func (s *memPostStore) SetVotes(_ context.Context, id string, upvotes, downvotes []uint) (*models.Post, error) {
	stored, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	stored.Upvotes = upvotes
	stored.Downvotes = downvotes
	clone := *stored
	return &clone, nil
}

func (s *memPostStore) Delete(_ context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, ErrNotFound)
	}
	delete(s.posts, id)
	return nil
}

type memCommentStore struct {
	clock    *memClock
	comments map[string]*models.Comment
}

func newMemCommentStore(clock *memClock) *memCommentStore {
	return &memCommentStore{clock: clock, comments: map[string]*models.Comment{}}
}

func (s *memCommentStore) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = s.clock.tick()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	s.comments[comment.ID.Hex()] = &clone
	return nil
}

func (s *memCommentStore) GetByID(_ context.Context, id string) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	clone := *comment
	return &clone, nil
}

func (s *memCommentStore) FindTopLevel(_ context.Context, postID, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID.Hex() == postID && c.ParentID == nil && c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) FindReplies(_ context.Context, parentID, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.ParentID != nil && c.ParentID.Hex() == parentID && c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) FindByStatus(_ context.Context, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) FindByAuthor(_ context.Context, authorID uint) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.AuthorID == authorID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) Update(_ context.Context, id string, comment *models.Comment) error {
	stored, ok := s.comments[id]
	if !ok {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	stored.Text = comment.Text
	stored.Status = comment.Status
	stored.Remarks = comment.Remarks
	stored.UpdatedAt = comment.UpdatedAt
	return nil
}

func (s *memCommentStore) SetStatus(_ context.Context, id, status, remarks string) (*models.Comment, error) {
	stored, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	stored.Status = status
	stored.Remarks = remarks
	clone := *stored
	return &clone, nil
}

func (s *memCommentStore) SetVotes(_ context.Context, id string, upvotes, downvotes []uint) (*models.Comment, error) {
	stored, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	stored.Upvotes = upvotes
	stored.Downvotes = downvotes
	clone := *stored
	return &clone, nil
}

func (s *memCommentStore) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	delete(s.comments, id)
	return nil
}

func (s *memCommentStore) DeleteByParentID(_ context.Context, parentID string) (int64, error) {
	var n int64
	for id, c := range s.comments {
		if c.ParentID != nil && c.ParentID.Hex() == parentID {
			delete(s.comments, id)
			n++
		}
	}
	return n, nil
}

func (s *memCommentStore) DeleteByPostID(_ context.Context, postID string) (int64, error) {
	var n int64
	for id, c := range s.comments {
		if c.PostID.Hex() == postID {
			delete(s.comments, id)
			n++
		}
	}
	return n, nil
}

// newTestService builds a Service over fresh in-memory stores.
func newTestService() (*Service, *memPostStore, *memCommentStore) {
	clock := newMemClock()
	posts := newMemPostStore(clock)
	comments := newMemCommentStore(clock)
	return NewService(posts, comments), posts, comments
}
