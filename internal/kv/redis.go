package kv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps keys in a redis database under "<namespace>:".
type RedisStore struct {
	rdb       *goredis.Client
	namespace string
	log       *zap.Logger
}

// OpenRedis connects to url (redis://host:port/db) and pings the server.
func OpenRedis(ctx context.Context, url, namespace string, log *zap.Logger) (*RedisStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, wrap("open", "", fmt.Errorf("invalid redis url: %w", err))
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, wrap("open", "", fmt.Errorf("redis ping: %w", err))
	}

	log.Debug("redis store ready", zap.String("addr", opts.Addr), zap.String("namespace", namespace))
	return &RedisStore{rdb: rdb, namespace: namespace, log: log}, nil
}

func (r *RedisStore) key(k string) string {
	if r.namespace == "" {
		return k
	}
	return r.namespace + ":" + k
}

func (r *RedisStore) strip(k string) string {
	if r.namespace == "" {
		return k
	}
	return strings.TrimPrefix(k, r.namespace+":")
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, r.key(key)).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrap("get", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return wrap("set", key, r.rdb.Set(ctx, r.key(key), value, 0).Err())
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	return wrap("remove", key, r.rdb.Del(ctx, r.key(key)).Err())
}

func (r *RedisStore) Keys(ctx context.Context) ([]string, error) {
	match := "*"
	if r.namespace != "" {
		match = r.namespace + ":*"
	}

	var keys []string
	iter := r.rdb.Scan(ctx, 0, match, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, r.strip(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrap("keys", "", err)
	}

	// SCAN may return a key more than once.
	sort.Strings(keys)
	out := keys[:0]
	for i, k := range keys {
		if i > 0 && keys[i-1] == k {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (r *RedisStore) MultiGet(ctx context.Context, keys []string) ([]Pair, error) {
	out := make([]Pair, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	vals, err := r.rdb.MGet(ctx, full...).Result()
	if err != nil {
		return nil, wrap("multiget", "", err)
	}
	for i, k := range keys {
		out[i].Key = k
		if s, ok := vals[i].(string); ok {
			out[i].Value, out[i].Found = s, true
		}
	}
	return out, nil
}

func (r *RedisStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return wrap("multiremove", "", r.rdb.Del(ctx, full...).Err())
}

func (r *RedisStore) Close() error {
	return wrap("close", "", r.rdb.Close())
}
