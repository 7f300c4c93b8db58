package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKey = "advisor:cooldown_until"

// CooldownGuard rate limits the AI advisor client-side: after each call a
// fixed cooldown is armed, persisted in redis so it survives restarts. With
// no redis configured it degrades to an in-process expiry timestamp.
type CooldownGuard struct {
	client *redis.Client

	mu    sync.Mutex
	until time.Time // fallback when redis is unavailable
}

func NewCooldownGuard(redisURL string) (*CooldownGuard, error) {
	if redisURL == "" {
		log.Println("REDIS_URL not set, advisor cooldown is process-local")
		return &CooldownGuard{}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &CooldownGuard{client: client}, nil
}

// Remaining returns how long the cooldown still has to run; zero means the
// advisor may be called.
func (g *CooldownGuard) Remaining(ctx context.Context) time.Duration {
	if g.client == nil {
		g.mu.Lock()
		defer g.mu.Unlock()
		if rest := time.Until(g.until); rest > 0 {
			return rest
		}
		return 0
	}

	ttl, err := g.client.TTL(ctx, cooldownKey).Result()
	if err != nil {
		log.Printf("cooldown: redis TTL: %v", err)
		return 0
	}
	if ttl > 0 {
		return ttl
	}
	return 0
}

// Arm starts a new cooldown window.
func (g *CooldownGuard) Arm(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	if g.client == nil {
		g.mu.Lock()
		g.until = time.Now().Add(d)
		g.mu.Unlock()
		return
	}
	expiry := time.Now().Add(d).UnixMilli()
	if err := g.client.Set(ctx, cooldownKey, expiry, d).Err(); err != nil {
		log.Printf("cooldown: redis SET: %v", err)
	}
}
