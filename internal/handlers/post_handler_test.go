package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/middleware"
	"github.com/sajidhasan/forumhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePostStore is a map-backed PostStore for route-level tests.
type fakePostStore struct {
	posts map[string]*models.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[string]*models.Post{}}
}

func (s *fakePostStore) Create(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	s.posts[post.ID.Hex()] = &cp
	return nil
}

func (s *fakePostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	cp := *post
	return &cp, nil
}

func (s *fakePostStore) FindByStatus(_ context.Context, status string, _ bool) ([]models.Post, error) {
	out := []models.Post{}
	for _, post := range s.posts {
		if post.Status == status {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (s *fakePostStore) FindByAuthor(_ context.Context, authorID uint) ([]models.Post, error) {
	out := []models.Post{}
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (s *fakePostStore) CountByStatus(_ context.Context, status string) (int64, error) {
	var count int64
	for _, post := range s.posts {
		if post.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *fakePostStore) Update(_ context.Context, id string, post *models.Post) error {
	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	cp := *post
	s.posts[id] = &cp
	return nil
}

func (s *fakePostStore) SetStatus(_ context.Context, id, status, remarks string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	post.Status = status
	post.Remarks = remarks
	cp := *post
	return &cp, nil
}

func (s *fakePostStore) SetVotes(_ context.Context, id string, upvotes, downvotes []uint) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	post.Upvotes = upvotes
	post.Downvotes = downvotes
	cp := *post
	return &cp, nil
}

func (s *fakePostStore) Delete(_ context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	delete(s.posts, id)
	return nil
}

// fakeCommentStore is a map-backed CommentStore for route-level tests.
type fakeCommentStore struct {
	comments map[string]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[string]*models.Comment{}}
}

func (s *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	cp := *comment
	s.comments[comment.ID.Hex()] = &cp
	return nil
}

func (s *fakeCommentStore) GetByID(_ context.Context, id string) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	cp := *comment
	return &cp, nil
}

func (s *fakeCommentStore) FindTopLevel(_ context.Context, postID, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, comment := range s.comments {
		if comment.ParentID == nil && comment.PostID.Hex() == postID && comment.Status == status {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindReplies(_ context.Context, parentID, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, comment := range s.comments {
		if comment.ParentID != nil && comment.ParentID.Hex() == parentID && comment.Status == status {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindByStatus(_ context.Context, status string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, comment := range s.comments {
		if comment.Status == status {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindByAuthor(_ context.Context, authorID uint) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, comment := range s.comments {
		if comment.AuthorID == authorID {
			out = append(out, *comment)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) Update(_ context.Context, id string, comment *models.Comment) error {
	if _, ok := s.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	cp := *comment
	s.comments[id] = &cp
	return nil
}

func (s *fakeCommentStore) SetStatus(_ context.Context, id, status, remarks string) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	comment.Status = status
	comment.Remarks = remarks
	cp := *comment
	return &cp, nil
}

func (s *fakeCommentStore) SetVotes(_ context.Context, id string, upvotes, downvotes []uint) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	comment.Upvotes = upvotes
	comment.Downvotes = downvotes
	cp := *comment
	return &cp, nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) DeleteByParentID(_ context.Context, parentID string) (int64, error) {
	var removed int64
	for id, comment := range s.comments {
		if comment.ParentID != nil && comment.ParentID.Hex() == parentID {
			delete(s.comments, id)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeCommentStore) DeleteByPostID(_ context.Context, postID string) (int64, error) {
	var removed int64
	for id, comment := range s.comments {
		if comment.PostID.Hex() == postID {
			delete(s.comments, id)
			removed++
		}
	}
	return removed, nil
}

// forumEcho wires the post and comment handlers into the same three route
// groups the router uses: public, JWT-protected, and JWT+admin.
func forumEcho(t *testing.T) (*echo.Echo, *fakePostStore, *fakeCommentStore) {
	t.Helper()

	e := setupEcho()
	postStore := newFakePostStore()
	commentStore := newFakeCommentStore()
	svc := forum.NewService(postStore, commentStore)
	postHandler := NewPostHandler(svc)
	commentHandler := NewCommentHandler(svc)

	public := e.Group("/api")
	postHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)

	api := e.Group("/api", middleware.JWTAuthMiddleware(testSecret))
	postHandler.RegisterPostRoutes(api)
	commentHandler.RegisterCommentRoutes(api)

	admin := e.Group("/api", middleware.JWTAuthMiddleware(testSecret), middleware.RequireAdmin())
	postHandler.RegisterAdminRoutes(admin)
	commentHandler.RegisterAdminRoutes(admin)

	return e, postStore, commentStore
}

func bearerToken(t *testing.T, id uint, username, role string) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   id,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doAuthJSON(e *echo.Echo, method, path, auth string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreatePostRequiresToken(t *testing.T) {
	e, _, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodPost, "/api/posts", "", models.CreatePostRequest{Title: "t", Content: "c"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePostEntersQueueForPlainUser(t *testing.T) {
	e, postStore, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodPost, "/api/posts", bearerToken(t, 2, "bob", models.RoleUser),
		models.CreatePostRequest{Title: "hello", Content: "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "submitted for approval")

	pending, err := postStore.FindByStatus(context.Background(), models.StatusPending, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "hello", pending[0].Title)
}

func TestAdminPostRoutesAreRoleGated(t *testing.T) {
	e, _, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodGet, "/api/posts/admin/unapproved",
		bearerToken(t, 2, "bob", models.RoleUser), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doAuthJSON(e, http.MethodGet, "/api/posts/admin/unapproved",
		bearerToken(t, 1, "alice", models.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUnknownPostIsNotFound(t *testing.T) {
	e, _, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodGet, "/api/posts/64f000000000000000000000", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePostByNonAuthorIsForbidden(t *testing.T) {
	e, _, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodPost, "/api/posts", bearerToken(t, 2, "bob", models.RoleUser),
		models.CreatePostRequest{Title: "mine", Content: "original"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doAuthJSON(e, http.MethodPut, "/api/posts/"+created.Post.ID.Hex(),
		bearerToken(t, 3, "carol", models.RoleUser), models.UpdatePostRequest{Content: "hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRejectPostBlankRemarksIsBadRequest(t *testing.T) {
	e, _, _ := forumEcho(t)

	rec := doAuthJSON(e, http.MethodPost, "/api/posts", bearerToken(t, 2, "bob", models.RoleUser),
		models.CreatePostRequest{Title: "t", Content: "c"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Post models.Post `json:"post"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doAuthJSON(e, http.MethodPut, "/api/posts/admin/"+created.Post.ID.Hex()+"/reject",
		bearerToken(t, 1, "alice", models.RoleAdmin), models.RejectRequest{Remarks: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
