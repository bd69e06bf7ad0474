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

// MongoPostRepository implements forum.PostStore for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// postID parses a hex id. An unparseable id cannot reference any document,
// so it reports not found rather than a distinct error.
func postID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	return objID, nil
}

// Create inserts a new post
func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetByID retrieves a post by ID
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := postID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// FindByStatus retrieves posts with the given status. newestFirst selects
// the sort order on created_at.
func (r *MongoPostRepository) FindByStatus(ctx context.Context, status string, newestFirst bool) ([]models.Post, error) {
	order := 1
	if newestFirst {
		order = -1
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByAuthor retrieves every post by the given author, newest first.
func (r *MongoPostRepository) FindByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CountByStatus counts posts with the given status.
func (r *MongoPostRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// Update persists an edited post's mutable fields.
func (r *MongoPostRepository) Update(ctx context.Context, id string, post *models.Post) error {
	objID, err := postID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"title":      post.Title,
			"content":    post.Content,
			"image_url":  post.ImageURL,
			"status":     post.Status,
			"remarks":    post.Remarks,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	return nil
}

// SetStatus updates the moderation status and remarks in one atomic update
// and returns the resulting document.
func (r *MongoPostRepository) SetStatus(ctx context.Context, id, status, remarks string) (*models.Post, error) {
	objID, err := postID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"status": status, "remarks": remarks, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// SetVotes replaces both vote sets in one atomic update and returns the
// resulting document.
func (r *MongoPostRepository) SetVotes(ctx context.Context, id string, upvotes, downvotes []uint) (*models.Post, error) {
	objID, err := postID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"upvotes": upvotes, "downvotes": downvotes}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
		}
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post by ID
func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	objID, err := postID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("post %s: %w", id, forum.ErrNotFound)
	}
	return nil
}
