package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"main/model"
)

// SettingsStore persists user settings.
type SettingsStore interface {
	Load(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

// SettingsService keeps the current settings in memory with write-behind
// persistence, mirroring how the board is handled.
type SettingsService struct {
	mu       sync.RWMutex
	settings *model.Settings
	repo     SettingsStore
}

func NewSettingsService(ctx context.Context, repo SettingsStore) (*SettingsService, error) {
	settings, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsService{settings: settings, repo: repo}, nil
}

// Get returns a copy of the current settings.
func (svc *SettingsService) Get() model.Settings {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	return *svc.settings
}

// Current is the provider handed to the reminder scheduler.
func (svc *SettingsService) Current() *model.Settings {
	s := svc.Get()
	return &s
}

// Update replaces the settings and persists them; a failed save is logged and
// the in-memory value stays authoritative.
func (svc *SettingsService) Update(settings model.Settings) model.Settings {
	if settings.AICooldown <= 0 {
		settings.AICooldown = model.DefaultSettings().AICooldown
	}

	svc.mu.Lock()
	svc.settings = &settings
	svc.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.repo.Save(ctx, &settings); err != nil {
		log.Printf("settings: persisting: %v", err)
	}
	return settings
}
