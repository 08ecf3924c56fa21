package kv

import (
	"context"
	"strings"
)

// Entry is one record of a Collection.
type Entry struct {
	ID    string // key with the collection prefix stripped
	Value string
}

// Collection is the set of keys sharing a prefix. All prefix scanning in the
// program goes through here.
type Collection struct {
	store  Store
	prefix string
}

// NewCollection returns the collection of keys starting with prefix.
func NewCollection(store Store, prefix string) *Collection {
	return &Collection{store: store, prefix: prefix}
}

// Prefix returns the key prefix.
func (c *Collection) Prefix() string { return c.prefix }

// Key returns the full store key for id.
func (c *Collection) Key(id string) string { return c.prefix + id }

func (c *Collection) Put(ctx context.Context, id, value string) error {
	return c.store.Set(ctx, c.Key(id), value)
}

func (c *Collection) Get(ctx context.Context, id string) (string, bool, error) {
	return c.store.Get(ctx, c.Key(id))
}

func (c *Collection) Remove(ctx context.Context, id string) error {
	return c.store.Remove(ctx, c.Key(id))
}

// IDs returns the ids present, sorted.
func (c *Collection) IDs(ctx context.Context) ([]string, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, k := range keys {
		if id, ok := strings.CutPrefix(k, c.prefix); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// List returns every entry sorted by id.
func (c *Collection) List(ctx context.Context) ([]Entry, error) {
	ids, err := c.IDs(ctx)
	if err != nil || len(ids) == 0 {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.Key(id)
	}
	pairs, err := c.store.MultiGet(ctx, keys)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(pairs))
	for i, p := range pairs {
		// removed between Keys and MultiGet
		if !p.Found {
			continue
		}
		out = append(out, Entry{ID: ids[i], Value: p.Value})
	}
	return out, nil
}

// Clear removes every key of the collection and reports how many there were.
func (c *Collection) Clear(ctx context.Context) (int, error) {
	ids, err := c.IDs(ctx)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.Key(id)
	}
	if err := c.store.MultiRemove(ctx, keys); err != nil {
		return 0, err
	}
	return len(keys), nil
}
