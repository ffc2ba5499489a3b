package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateHootReq struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Text     string `json:"text" validate:"required,min=1,max=5000"`
	Category string `json:"category" validate:"required,oneof=News Sports Games Movies Television Music"`
}

// UpdateHootReq carries only the mutable fields. Author is deliberately not
// mappable here so an update can never reassign ownership.
type UpdateHootReq struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Text     *string `json:"text" validate:"omitempty,min=1,max=5000"`
	Category *string `json:"category" validate:"omitempty,oneof=News Sports Games Movies Television Music"`
}

// HootResponse is a hoot with the author reference expanded to the full
// public profile, for both the hoot itself and each embedded comment.
type HootResponse struct {
	ID        bson.ObjectID     `json:"id"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Category  string            `json:"category"`
	Author    UserProfile       `json:"author"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
