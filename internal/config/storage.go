package config

import "fmt"

// Backend names a key-value persistence backend.
type Backend string

const (
	BackendMemory Backend = "memory" // process-local, nothing survives exit
	BackendSQLite Backend = "sqlite" // single local database file
	BackendRedis  Backend = "redis"  // a redis reachable from this machine
)

// SQLite driver names as registered with database/sql.
const (
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3 (cgo)
	DriverModernc = "sqlite"  // modernc.org/sqlite (pure Go)
)

// StorageConfig configures the key-value store.
type StorageConfig struct {
	Backend Backend      `yaml:"backend"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
	Redis   RedisConfig  `yaml:"redis"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	Path   string `yaml:"path"`
	Driver string `yaml:"driver"` // sqlite3 | sqlite
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"` // every key is stored as <namespace>:<key>
}

// Validate checks the storage section.
func (s StorageConfig) Validate() error {
	switch s.Backend {
	case BackendMemory:
	case BackendSQLite:
		if s.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required for the sqlite backend")
		}
		switch s.SQLite.Driver {
		case "", DriverMattn, DriverModernc:
		default:
			return fmt.Errorf("unknown storage.sqlite.driver %q (want %q or %q)", s.SQLite.Driver, DriverMattn, DriverModernc)
		}
	case BackendRedis:
		if s.Redis.URL == "" {
			return fmt.Errorf("storage.redis.url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", s.Backend)
	}
	return nil
}
