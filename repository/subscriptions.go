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

type SubscriptionsRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves the MongoDB collection holding web-push subscriptions
func GetSubscriptionsRepo(client *mongo.Client) *SubscriptionsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SUBSCRIPTIONS_COLLECTION")
	if collectionName == "" {
		collectionName = "subscriptions"
	}
	return &SubscriptionsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// SaveSubscription upserts a subscription by its endpoint.
func (r *SubscriptionsRepo) SaveSubscription(ctx context.Context, sub *model.PushSubscription) error {
	timer := utils.TrackDBOperation("replace", "subscriptions")
	defer timer.ObserveDuration()

	if sub.AddedAt.IsZero() {
		sub.AddedAt = time.Now()
	}
	_, err := r.MongoCollection.ReplaceOne(ctx,
		bson.M{"_id": sub.Endpoint}, sub, options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("database", "subscription_save_failed")
	}
	return err
}

// ListSubscriptions returns every stored subscription.
func (r *SubscriptionsRepo) ListSubscriptions(ctx context.Context) ([]*model.PushSubscription, error) {
	timer := utils.TrackDBOperation("find", "subscriptions")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.TrackError("database", "subscription_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.PushSubscription
	if err = cursor.All(ctx, &subs); err != nil {
		utils.TrackError("database", "subscription_decode_failed")
		return nil, err
	}
	return subs, nil
}

// DeleteSubscription removes a subscription (e.g. after the push service
// reports it gone).
func (r *SubscriptionsRepo) DeleteSubscription(ctx context.Context, endpoint string) error {
	timer := utils.TrackDBOperation("delete", "subscriptions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": endpoint})
	if err != nil {
		utils.TrackError("database", "subscription_delete_failed")
	}
	return err
}
