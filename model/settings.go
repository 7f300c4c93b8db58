package model

import "time"

// Settings holds user preferences that live outside the board snapshot.
type Settings struct {
	QuietHoursEnabled bool          `bson:"quiet_hours_enabled" json:"quietHoursEnabled"`
	QuietStart        string        `bson:"quiet_start" json:"quietStart"` // "HH:mm"
	QuietEnd          string        `bson:"quiet_end" json:"quietEnd"`     // "HH:mm"
	AICooldown        time.Duration `bson:"ai_cooldown" json:"aiCooldown"`
}

// DefaultSettings mirrors the defaults the web client shipped with.
func DefaultSettings() *Settings {
	return &Settings{
		QuietHoursEnabled: false,
		QuietStart:        "22:00",
		QuietEnd:          "07:00",
		AICooldown:        2 * time.Minute,
	}
}
