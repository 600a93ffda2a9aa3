package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rahulsm/goblog/models"
)

// PostRepository owns persistence of blog posts.
type PostRepository interface {
	Insert(ctx context.Context, post *models.Post) error
	FindAll(ctx context.Context, page, limit int) ([]models.PostWithAuthor, int64, error)
	FindByAuthor(ctx context.Context, author bson.ObjectID) ([]models.Post, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type MongoPostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{col: db.Collection("posts")}
}

func (r *MongoPostRepository) Insert(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, post)
	return err
}

// FindAll returns newest-first posts with the author's name and email
// joined in from the users collection.
func (r *MongoPostRepository) FindAll(ctx context.Context, page, limit int) ([]models.PostWithAuthor, int64, error) {
	skip := int64((page - 1) * limit)

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "author"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "authorInfo"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$authorInfo"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := make([]models.PostWithAuthor, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *MongoPostRepository) FindByAuthor(ctx context.Context, author bson.ObjectID) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var post models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, post.ID, bson.M{"$set": bson.M{
		"title":     post.Title,
		"content":   post.Content,
		"slug":      post.Slug,
		"updatedAt": post.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var _ PostRepository = (*MongoPostRepository)(nil)
