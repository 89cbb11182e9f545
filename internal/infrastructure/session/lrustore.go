// Package session stores client sessions in process memory.
package session

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	appsession "github.com/supportdesk/supportdesk/internal/application/session"
)

const (
	defaultMaxEntries = 10000
	defaultTTL        = 12 * time.Hour
)

// LRUStore is a bounded session store. Entries expire ttl after their last
// write; the least recently used entry is evicted once maxEntries is reached.
type LRUStore struct {
	cache *expirable.LRU[string, appsession.State]
}

func NewLRUStore(maxEntries int, ttl time.Duration) *LRUStore {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRUStore{
		cache: expirable.NewLRU[string, appsession.State](maxEntries, nil, ttl),
	}
}

func (s *LRUStore) Get(ctx context.Context, token string) (appsession.State, bool, error) {
	if err := ctx.Err(); err != nil {
		return appsession.State{}, false, err
	}
	state, ok := s.cache.Get(token)
	return state, ok, nil
}

func (s *LRUStore) Put(ctx context.Context, state appsession.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Add(state.Token, state)
	return nil
}

func (s *LRUStore) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Remove(token)
	return nil
}

// Len reports the number of live sessions.
func (s *LRUStore) Len() int {
	return s.cache.Len()
}
