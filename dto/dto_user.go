package dto

import (
	"hoot-api/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserProfile is the public shape of a user, substituted for bare author ids
// in every hoot/comment response.
type UserProfile struct {
	ID       bson.ObjectID `json:"_id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
}

func ProfileOf(u *models.User) UserProfile {
	return UserProfile{ID: u.ID, Username: u.Username, Email: u.Email}
}
