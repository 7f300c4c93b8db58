package model

import "time"

// PushSubscription is a browser web-push subscription as delivered by the
// client's PushManager.
type PushSubscription struct {
	Endpoint string           `bson:"_id" json:"endpoint" binding:"required,url"`
	Keys     SubscriptionKeys `bson:"keys" json:"keys" binding:"required"`
	AddedAt  time.Time        `bson:"added_at" json:"addedAt"`
}

type SubscriptionKeys struct {
	P256dh string `bson:"p256dh" json:"p256dh" binding:"required"`
	Auth   string `bson:"auth" json:"auth" binding:"required"`
}
