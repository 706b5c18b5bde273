package dataset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrNotFound = errors.New("dataset not found")

// Store holds ingested datasets keyed by an opaque id. Datasets are immutable
// once stored, so callers may share what Get returns across goroutines.
type Store interface {
	Init() error

	// Put stores ds under id, replacing any previous dataset with that id.
	Put(ctx context.Context, id string, ds *Dataset) error

	// Get returns ErrNotFound (possibly wrapped) for unknown ids.
	Get(ctx context.Context, id string) (*Dataset, error)

	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps datasets in process memory. With a zero ttl entries live
// for the lifetime of the process.
type MemoryStore struct {
	c *cache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	expiration := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl / 2
	}
	return &MemoryStore{c: cache.New(expiration, cleanup)}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) Put(ctx context.Context, id string, ds *Dataset) error {
	s.c.Set(id, ds, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Dataset, error) {
	v, found := s.c.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	return v.(*Dataset), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.c.Delete(id)
	return nil
}

func (s *MemoryStore) Len() int {
	return s.c.ItemCount()
}

// CachedStore is a read-through cache in front of a slower store, so that a
// persisted dataset is decoded once and then served from memory.
type CachedStore struct {
	backing Store
	c       *cache.Cache
}

var _ Store = &CachedStore{}

func NewCachedStore(backing Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backing: backing,
		c:       cache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Init() error {
	return s.backing.Init()
}

func (s *CachedStore) Put(ctx context.Context, id string, ds *Dataset) error {
	if err := s.backing.Put(ctx, id, ds); err != nil {
		return err
	}
	s.c.Set(id, ds, cache.DefaultExpiration)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (*Dataset, error) {
	if v, found := s.c.Get(id); found {
		return v.(*Dataset), nil
	}
	ds, err := s.backing.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset cache miss", "id", id)
	s.c.Set(id, ds, cache.DefaultExpiration)
	return ds, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.c.Delete(id)
	return s.backing.Delete(ctx, id)
}
