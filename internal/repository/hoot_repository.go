package repository

import (
	"context"
	"time"

	"hoot-api/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type HootRepository struct {
	Col *mongo.Collection
}

func NewHootRepository(db *mongo.Database) *HootRepository {
	return &HootRepository{Col: db.Collection("hoots")}
}

func (r *HootRepository) Insert(ctx context.Context, h *models.Hoot) error {
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.Comments == nil {
		h.Comments = []models.Comment{}
	}

	res, err := r.Col.InsertOne(ctx, h)
	if err != nil {
		return err
	}
	h.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// FindByID returns (nil, nil) when no hoot matches.
func (r *HootRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Hoot, error) {
	var h models.Hoot
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// FindAllNewestFirst returns every hoot sorted by created_at descending,
// _id as tiebreaker so the order stays stable under equal timestamps.
func (r *HootRepository) FindAllNewestFirst(ctx context.Context) ([]models.Hoot, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var hoots []models.Hoot
	if err := cur.All(ctx, &hoots); err != nil {
		return nil, err
	}
	return hoots, nil
}

// Update applies only the fields set in upd and refreshes updated_at. The
// author field is never part of the $set document. Returns (nil, nil) when
// no hoot matches.
func (r *HootRepository) Update(ctx context.Context, id bson.ObjectID, upd models.HootUpdate) (*models.Hoot, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Text != nil {
		set["text"] = *upd.Text
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var h models.Hoot
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&h)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// Delete reports whether a hoot was actually removed.
func (r *HootRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PushComment appends c to the parent hoot's comments array and refreshes the
// parent's updated_at. Reports whether the parent exists.
func (r *HootRepository) PushComment(ctx context.Context, hootID bson.ObjectID, c *models.Comment) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": hootID},
		bson.M{
			"$push": bson.M{"comments": c},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
