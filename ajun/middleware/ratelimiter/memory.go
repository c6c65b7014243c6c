package ratelimiter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]*ClientData
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string]*ClientData),
	}
}

func (mb *MemoryBackend) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	now := time.Now()
	data, exists := mb.data[key]
	if !exists {
		data = &ClientData{}
		mb.data[key] = data
	}

	if !now.Before(data.WindowEnd) {
		data.Count = 0
		data.WindowEnd = now.Add(window)
	}
	data.Count++

	return data.Count, nil
}

func (mb *MemoryBackend) Block(_ context.Context, key string, duration time.Duration) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	data, exists := mb.data[key]
	if !exists {
		data = &ClientData{}
		mb.data[key] = data
	}
	data.Count = 0
	data.DisableUntil = time.Now().Add(duration)

	return nil
}

func (mb *MemoryBackend) BlockedUntil(_ context.Context, key string) (time.Time, error) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	data, exists := mb.data[key]
	if !exists || !data.DisableUntil.After(time.Now()) {
		return time.Time{}, nil
	}
	return data.DisableUntil, nil
}

// StartCleanupWorker remove periodicamente os clientes cuja janela e
// bloqueio já expiraram. Para quando ctx é cancelado.
func (mb *MemoryBackend) StartCleanupWorker(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := mb.cleanupOldData(); removed > 0 {
				logger.Debug("limpeza do rate limiter concluída", zap.Int("removidos", removed))
			}
		case <-ctx.Done():
			logger.Debug("cleanup worker parado")
			return
		}
	}
}

func (mb *MemoryBackend) cleanupOldData() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	now := time.Now()
	count := 0
	for key, d := range mb.data {
		if d.WindowEnd.Before(now) && d.DisableUntil.Before(now) {
			delete(mb.data, key)
			count++
		}
	}
	return count
}
