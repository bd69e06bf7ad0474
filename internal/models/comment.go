package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post, stored in MongoDB.
// ParentID is nil for top-level comments. For replies it always references
// a top-level comment: replying to a reply attaches under the original
// thread root, giving a strict two-tier tree.
type Comment struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Text       string              `json:"text" bson:"text"`
	AuthorID   uint                `json:"author_id" bson:"author_id"`
	AuthorName string              `json:"author_name" bson:"author_name"`
	PostID     primitive.ObjectID  `json:"post_id" bson:"post_id"`
	ParentID   *primitive.ObjectID `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	Status     string              `json:"status" bson:"status"`
	Remarks    string              `json:"remarks,omitempty" bson:"remarks,omitempty"`
	Upvotes    []uint              `json:"upvotes" bson:"upvotes"`
	Downvotes  []uint              `json:"downvotes" bson:"downvotes"`
	CreatedAt  time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// CommentThread is a top-level comment together with its approved replies,
// as returned by the thread listing.
type CommentThread struct {
	Comment `bson:",inline"`
	Replies []Comment `json:"replies"`
}

// CreateCommentRequest defines the request body for creating a comment or reply
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}
