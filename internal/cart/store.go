package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultStorageKey is the fixed key cart snapshots are persisted under.
const DefaultStorageKey = "huum:cart:items"

// Store persists line-item snapshots in Redis. Only the items survive a
// restart; totals and the shipping context are always rebuilt.
type Store struct {
	R   *redis.Client
	Key string
}

// NewStore constructs a store with the default key when none is given.
func NewStore(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{R: client, Key: key}
}

// Save overwrites the snapshot. Snapshots never expire.
func (s *Store) Save(ctx context.Context, items []LineItem) error {
	if s == nil || s.R == nil {
		return errors.New("cart store not configured")
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.R.Set(ctx, s.Key, data, 0).Err()
}

// Load returns the persisted snapshot, or nil when none exists.
func (s *Store) Load(ctx context.Context) ([]LineItem, error) {
	if s == nil || s.R == nil {
		return nil, errors.New("cart store not configured")
	}
	data, err := s.R.Get(ctx, s.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
