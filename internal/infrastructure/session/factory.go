package session

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	domain "github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/config"
)

// Store is a TokenStore that owns resources
type Store interface {
	domain.TokenStore
	io.Closer
}

// NewStore creates the store selected by cfg.Session.Store. Outside
// production an unreachable Redis falls back to memory.
func NewStore(cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Session.Store {
	case "redis":
		store, err := NewRedisStore(RedisConfig{
			Addr:      cfg.RedisAddr(),
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			TTL:       cfg.Session.MaxAge,
		})
		if err == nil {
			logger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr()))
			return store, nil
		}
		if cfg.IsProduction() {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		logger.Warn("Redis unavailable, falling back to in-memory session store", zap.Error(err))
		return NewMemoryStore(cfg.Session.MaxAge), nil
	case "", "memory":
		logger.Info("Using in-memory session store")
		return NewMemoryStore(cfg.Session.MaxAge), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
