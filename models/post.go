package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Slug      string        `bson:"slug" json:"slug"`
	Author    bson.ObjectID `bson:"author" json:"author"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PostWithAuthor is the public listing shape: the author id is replaced
// with the author's name and email.
type PostWithAuthor struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Content   string        `bson:"content" json:"content"`
	Slug      string        `bson:"slug" json:"slug"`
	Author    AuthorInfo    `bson:"authorInfo" json:"author"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type AuthorInfo struct {
	ID    bson.ObjectID `bson:"_id" json:"id"`
	Name  string        `bson:"name" json:"name"`
	Email string        `bson:"email" json:"email"`
}
