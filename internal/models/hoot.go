package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Hoot is a post document. The category enum (News, Sports, Games, Movies,
// Television, Music) is enforced by the DTO validate tags.
type Hoot struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string        `json:"title" bson:"title"`
	Text      string        `json:"text" bson:"text"`
	Category  string        `json:"category" bson:"category"`
	Author    bson.ObjectID `json:"author" bson:"author"`
	Comments  []Comment     `json:"comments" bson:"comments"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}

// HootUpdate carries the mutable hoot fields for a partial update. Nil means
// leave the stored value alone. Author has no slot here on purpose.
type HootUpdate struct {
	Title    *string
	Text     *string
	Category *string
}

// Comment is embedded in its parent hoot document. It has no collection of
// its own; its _id only identifies it inside the comments array.
type Comment struct {
	ID        bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Text      string        `json:"text" bson:"text"`
	Author    bson.ObjectID `json:"author" bson:"author"`
	CreatedAt time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updated_at"`
}
