package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The password field holds a bcrypt hash and
// never leaves the server.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
}

// UserSummary is the slice of a user embedded in profile responses.
type UserSummary struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}
