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

const settingsKey = "settings_v1"

type SettingsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves the MongoDB collection holding user settings
func GetSettingsRepo(client *mongo.Client) *SettingsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SETTINGS_COLLECTION")
	if collectionName == "" {
		collectionName = "settings"
	}
	return &SettingsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

type settingsDoc struct {
	ID        string          `bson:"_id"`
	Settings  *model.Settings `bson:"settings"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

func (r *SettingsRepo) Load(ctx context.Context) (*model.Settings, error) {
	timer := utils.TrackDBOperation("find", "settings")
	defer timer.ObserveDuration()

	var doc settingsDoc
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": settingsKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		utils.TrackError("database", "settings_load_failed")
		return nil, err
	}
	if doc.Settings == nil {
		return model.DefaultSettings(), nil
	}
	if doc.Settings.AICooldown <= 0 {
		doc.Settings.AICooldown = model.DefaultSettings().AICooldown
	}
	return doc.Settings, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings *model.Settings) error {
	timer := utils.TrackDBOperation("replace", "settings")
	defer timer.ObserveDuration()

	doc := settingsDoc{ID: settingsKey, Settings: settings, UpdatedAt: time.Now()}
	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": settingsKey}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "settings_save_failed")
	}
	return err
}
