package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/highroll-gg/bigwin-notifier/internal/db/model"
	"github.com/highroll-gg/bigwin-notifier/internal/types"
)

func (db *Database) GetCheckpoint(ctx context.Context) (types.Cursor, error) {
	var result model.Checkpoint
	err := db.collection(model.CheckpointCollection).
		FindOne(ctx, bson.M{"_id": model.CheckpointID}).
		Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Never written: start from the beginning.
		return types.Cursor{}, nil
	}
	if err != nil {
		return types.Cursor{}, err
	}
	return types.Cursor{Round: result.Round, Intra: result.Intra}, nil
}

func (db *Database) AdvanceCheckpoint(ctx context.Context, from, to types.Cursor) (bool, error) {
	filter := bson.M{
		"_id":   model.CheckpointID,
		"round": from.Round,
		"intra": from.Intra,
	}
	update := bson.M{"$set": bson.M{"round": to.Round, "intra": to.Intra}}

	res, err := db.collection(model.CheckpointCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	// No document matched. If the caller started from the zero cursor the
	// checkpoint may simply not exist yet; create it. A duplicate key here
	// means another writer got in first, which is a lost CAS, not an error.
	if (from != types.Cursor{}) {
		return false, nil
	}
	_, err = db.collection(model.CheckpointCollection).InsertOne(ctx, model.Checkpoint{
		ID:    model.CheckpointID,
		Round: to.Round,
		Intra: to.Intra,
	})
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
