package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation statuses shared by posts and comments.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Post represents a forum post stored in MongoDB
type Post struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	ImageURL   string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	AuthorID   uint               `json:"author_id" bson:"author_id"`
	AuthorName string             `json:"author_name" bson:"author_name"`
	Status     string             `json:"status" bson:"status"`
	Remarks    string             `json:"remarks,omitempty" bson:"remarks,omitempty"` // Set on rejection, cleared on approval
	Upvotes    []uint             `json:"upvotes" bson:"upvotes"`
	Downvotes  []uint             `json:"downvotes" bson:"downvotes"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Content  string `json:"content" validate:"required,min=1"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post.
// ImageURL is a pointer so an explicit empty string removes the image while
// an absent field keeps it.
type UpdatePostRequest struct {
	Title    string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content  string  `json:"content,omitempty" validate:"omitempty,min=1"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty"`
}

// RejectRequest defines the request body for rejecting a post or comment
type RejectRequest struct {
	Remarks string `json:"remarks" validate:"required,min=1"`
}
