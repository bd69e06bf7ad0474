package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/sajidhasan/forumhub/backend/internal/forum"
	"github.com/sajidhasan/forumhub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCommentRepository implements forum.CommentStore for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

func commentID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	return objID, nil
}

// Create inserts a new comment
func (r *MongoCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetByID retrieves a comment by ID
func (r *MongoCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := commentID(id)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *MongoCommentRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// FindTopLevel retrieves top-level comments of a post with the given status,
// newest first.
func (r *MongoCommentRepository) FindTopLevel(ctx context.Context, postID, status string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, forum.ErrNotFound)
	}
	filter := bson.M{"post_id": objID, "parent_id": nil, "status": status}
	return r.find(ctx, filter, bson.D{{Key: "created_at", Value: -1}})
}

// FindReplies retrieves replies of a comment with the given status, oldest
// first so the conversation reads chronologically.
func (r *MongoCommentRepository) FindReplies(ctx context.Context, parentID, status string) ([]models.Comment, error) {
	objID, err := commentID(parentID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"parent_id": objID, "status": status}
	return r.find(ctx, filter, bson.D{{Key: "created_at", Value: 1}})
}

// FindByStatus retrieves all comments with the given status, oldest first
// (moderation queue order).
func (r *MongoCommentRepository) FindByStatus(ctx context.Context, status string) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"status": status}, bson.D{{Key: "created_at", Value: 1}})
}

// FindByAuthor retrieves every comment by the given author, newest first.
func (r *MongoCommentRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.Comment, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, bson.D{{Key: "created_at", Value: -1}})
}

// Update persists an edited comment's mutable fields.
func (r *MongoCommentRepository) Update(ctx context.Context, id string, comment *models.Comment) error {
	objID, err := commentID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"text":       comment.Text,
			"status":     comment.Status,
			"remarks":    comment.Remarks,
			"updated_at": comment.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	return nil
}

// SetStatus updates the moderation status and remarks in one atomic update
// and returns the resulting document.
func (r *MongoCommentRepository) SetStatus(ctx context.Context, id, status, remarks string) (*models.Comment, error) {
	objID, err := commentID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"status": status, "remarks": remarks, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment models.Comment
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// SetVotes replaces both vote sets in one atomic update and returns the
// resulting document.
func (r *MongoCommentRepository) SetVotes(ctx context.Context, id string, upvotes, downvotes []uint) (*models.Comment, error) {
	objID, err := commentID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"upvotes": upvotes, "downvotes": downvotes}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var comment models.Comment
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &comment, nil
}

// Delete deletes a comment by ID
func (r *MongoCommentRepository) Delete(ctx context.Context, id string) error {
	objID, err := commentID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("comment %s: %w", id, forum.ErrNotFound)
	}
	return nil
}

// DeleteByParentID deletes every reply under the given comment.
func (r *MongoCommentRepository) DeleteByParentID(ctx context.Context, parentID string) (int64, error) {
	objID, err := commentID(parentID)
	if err != nil {
		return 0, err
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"parent_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByPostID deletes every comment of the given post, replies included.
func (r *MongoCommentRepository) DeleteByPostID(ctx context.Context, postID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", postID, forum.ErrNotFound)
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"post_id": objID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
