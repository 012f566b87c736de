package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "inventario:rate_limit"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
}

// Limiter limitador de ventana fija sobre Redis (INCR + EXPIRE en el primer incremento).
type Limiter struct {
	store  cmdable
	raw    *redis.Client
	limit  int64
	window time.Duration
}

// NewLimiter conecta a Redis con la URL dada y verifica la conexión.
func NewLimiter(ctx context.Context, url string, limit int, window time.Duration) (*Limiter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Limiter{store: raw, raw: raw, limit: int64(limit), window: window}, nil
}

// Allow incrementa el contador de scope y dice si sigue dentro del límite.
func (l *Limiter) Allow(ctx context.Context, scope string) (bool, error) {
	if l.store == nil {
		return false, errors.New("redis client not initialized")
	}
	key := rateLimitKey(scope)
	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 && l.window > 0 {
		if err := l.store.Expire(ctx, key, l.window).Err(); err != nil {
			return true, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count <= l.limit, nil
}

// Close cierra la conexión.
func (l *Limiter) Close() error {
	if l.raw != nil {
		return l.raw.Close()
	}
	return nil
}

func rateLimitKey(scope string) string {
	return keyNamespace + ":" + strings.ToLower(strings.TrimSpace(scope))
}

// MemoryLimiter ventana fija en memoria del proceso, para cuando no hay Redis configurado.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	windows map[string]memoryWindow
}

type memoryWindow struct {
	start time.Time
	count int
}

// NewMemoryLimiter construye el limitador local.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		windows: make(map[string]memoryWindow),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, scope string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := rateLimitKey(scope)
	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		w = memoryWindow{start: now}
	}
	w.count++
	l.windows[key] = w

	// purga perezosa de ventanas vencidas
	if len(l.windows) > 10000 {
		for k, v := range l.windows {
			if now.Sub(v.start) >= l.window {
				delete(l.windows, k)
			}
		}
	}
	return w.count <= l.limit, nil
}

func (l *MemoryLimiter) Close() error { return nil }
