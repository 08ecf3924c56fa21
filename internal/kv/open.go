package kv

import (
	"context"
	"fmt"

	"wellspring/internal/config"

	"go.uber.org/zap"
)

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Backend {
	case config.BackendMemory:
		log.Debug("using memory store")
		return NewMemoryStore(), nil
	case "", config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLite.Path, cfg.SQLite.Driver, log)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.Redis.URL, cfg.Redis.Namespace, log)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
