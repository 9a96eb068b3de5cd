// Package cache holds small in-process read-through caches.
package cache

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value V
	// zero means no expiry
	expires time.Time
}

func (e entry[V]) fresh(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

// Store is a keyed cache with an optional ttl (0 keeps entries until they
// are deleted). Empty keys are never cached.
type Store[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry[V]
	// epoch advances on every delete so loads that started before an
	// invalidation do not store their result.
	epoch uint64

	flight singleflight.Group
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{ttl: ttl, now: time.Now, entries: map[string]entry[V]{}}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(key)
}

func (s *Store[V]) lookupLocked(key string) (V, bool) {
	e, ok := s.entries[key]
	if ok && !e.fresh(s.now()) {
		delete(s.entries, key)
		ok = false
	}
	return e.value, ok
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.storeLocked(key, value)
	s.mu.Unlock()
}

func (s *Store[V]) storeLocked(key string, value V) {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[key] = e
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.epoch++
	s.mu.Unlock()
	s.flight.Forget(key)
}

func (s *Store[V]) DeletePrefix(_ context.Context, prefix string) {
	s.mu.Lock()
	maps.DeleteFunc(s.entries, func(key string, _ entry[V]) bool {
		return strings.HasPrefix(key, prefix)
	})
	s.epoch++
	s.mu.Unlock()
}

// GetOrLoad returns the cached value or calls load, sharing one call among
// concurrent callers of the same key. Errors are returned but not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if load == nil {
		var zero V
		return zero, errors.New("cache: nil loader")
	}
	if key == "" {
		return load(ctx)
	}

	s.mu.Lock()
	if v, ok := s.lookupLocked(key); ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	shared, err, _ := s.flight.Do(key, func() (any, error) {
		s.mu.Lock()
		if v, ok := s.lookupLocked(key); ok {
			s.mu.Unlock()
			return v, nil
		}
		started := s.epoch
		s.mu.Unlock()

		v, err := load(ctx)
		if err != nil {
			return v, err
		}

		s.mu.Lock()
		if s.epoch == started {
			s.storeLocked(key, v)
		}
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return shared.(V), nil
}
