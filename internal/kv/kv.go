// Package kv is the key-value persistence layer. Every component stores its
// state as string values under string keys through a Store; prefix-grouped
// records go through a Collection.
package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrPersistence is matched (errors.Is) by every backend failure.
var ErrPersistence = errors.New("persistence failed")

// Error describes a failed store operation.
type Error struct {
	Op  string // get, set, remove, keys, multiget, multiremove, open, close
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("kv %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("kv %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrPersistence.
func (e *Error) Is(target error) bool { return target == ErrPersistence }

func wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Key: key, Err: err}
}

// Pair is one MultiGet result.
type Pair struct {
	Key   string
	Value string
	Found bool
}

// Store is a string key-value store.
type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys returns every key, sorted.
	Keys(ctx context.Context) ([]string, error)
	// MultiGet returns one Pair per requested key, in request order.
	MultiGet(ctx context.Context, keys []string) ([]Pair, error)
	MultiRemove(ctx context.Context, keys []string) error
	Close() error
}
