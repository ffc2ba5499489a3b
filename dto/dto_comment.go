package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type CreateCommentReq struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        bson.ObjectID `json:"id"`
	Text      string        `json:"text"`
	Author    UserProfile   `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
