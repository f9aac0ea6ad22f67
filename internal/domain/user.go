package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId,omitempty" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserView is the public shape of a user, safe to return to clients.
type UserView struct {
	ID     primitive.ObjectID `json:"id"`
	UserID string             `json:"userId"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
}

func (u *User) View() UserView {
	return UserView{
		ID:     u.ID,
		UserID: u.UserID,
		Name:   u.Name,
		Email:  u.Email,
	}
}
