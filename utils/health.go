package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Store     string    `json:"store"`
	StoreOK   bool      `json:"storeOk"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthChecker pings whichever backends the service was started with. Nil fields are skipped.
type HealthChecker struct {
	Store string
	Mongo *mongo.Client
	SQL   *gorm.DB
	Redis *redis.Client
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// Check runs one round of pings and stores the result.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{Store: h.Store, CheckedAt: time.Now()}
	switch {
	case h.Mongo != nil:
		status.StoreOK = h.Mongo.Ping(ctx, nil) == nil
	case h.SQL != nil:
		if sqlDB, err := h.SQL.DB(); err == nil {
			status.StoreOK = sqlDB.PingContext(ctx) == nil
		}
	}
	if h.Redis != nil {
		status.Redis = h.Redis.Ping(ctx).Err() == nil
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func (h *HealthChecker) StartHealthMonitor(ctx context.Context, every time.Duration) {
	h.Check(ctx)
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.Check(ctx)
			}
		}
	}()
}
