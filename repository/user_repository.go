package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/rahulsm/goblog/models"
	"github.com/rahulsm/goblog/utils"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository owns persistence of user records.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	SetRefreshToken(ctx context.Context, id bson.ObjectID, token *string) error
}

type MongoUserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"refreshToken": token})
}

// SetRefreshToken overwrites the mirrored refresh token; nil clears it.
// No transaction spans the lookup and this write: concurrent logins for
// the same user are last-write-wins.
func (r *MongoUserRepository) SetRefreshToken(ctx context.Context, id bson.ObjectID, token *string) error {
	update := bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}}
	if token == nil {
		update["$unset"] = bson.M{"refreshToken": ""}
	} else {
		update["$set"].(bson.M)["refreshToken"] = *token
	}

	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var _ UserRepository = (*MongoUserRepository)(nil)
