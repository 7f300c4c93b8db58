package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// boardKey is the application key the snapshot lives under; it carries over
// the web client's localStorage key so migrated exports stay recognisable.
const boardKey = "todoData_v2"

type BoardRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves the MongoDB collection holding the board snapshot
func GetBoardRepo(client *mongo.Client) *BoardRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("BOARD_COLLECTION")
	if collectionName == "" {
		collectionName = "board"
	}
	return &BoardRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type boardDoc struct {
	ID        string       `bson:"_id"`
	Board     *model.Board `bson:"board"`
	UpdatedAt time.Time    `bson:"updated_at"`
}

// Load fetches the snapshot and normalizes legacy records; a missing document
// yields a freshly seeded board.
func (r *BoardRepo) Load(ctx context.Context) (*model.Board, error) {
	timer := utils.TrackDBOperation("find", "board")
	defer timer.ObserveDuration()

	var doc boardDoc
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": boardKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.NewBoard(), nil
	}
	if err != nil {
		utils.TrackError("database", "board_load_failed")
		return nil, err
	}
	if doc.Board == nil {
		return model.NewBoard(), nil
	}
	doc.Board.Normalize()
	return doc.Board, nil
}

// Save upserts the whole snapshot.
func (r *BoardRepo) Save(ctx context.Context, board *model.Board) error {
	timer := utils.TrackDBOperation("replace", "board")
	defer timer.ObserveDuration()

	doc := boardDoc{ID: boardKey, Board: board, UpdatedAt: time.Now()}
	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": boardKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "board_save_failed")
	}
	return err
}
