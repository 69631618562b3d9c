package badger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/brfintools/fiitrack/internal/common"
)

// KVEntry represents a key-value pair stored in BadgerDB. Values are
// JSON-encoded so callers can store arbitrary structs.
type KVEntry struct {
	Key   string `badgerhold:"key"`
	Value []byte
}

type kvStorage struct {
	store  *Store
	logger *common.Logger
}

// NewKVStorage creates a new KVStore backed by BadgerHold.
func NewKVStorage(store *Store, logger *common.Logger) *kvStorage {
	return &kvStorage{store: store, logger: logger}
}

func (s *kvStorage) Get(_ context.Context, key string, value interface{}) error {
	var entry KVEntry
	err := s.store.db.Get(key, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("key '%s' not found", key)
		}
		return fmt.Errorf("failed to get key '%s': %w", key, err)
	}
	if err := json.Unmarshal(entry.Value, value); err != nil {
		return fmt.Errorf("failed to decode key '%s': %w", key, err)
	}
	return nil
}

func (s *kvStorage) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key '%s': %w", key, err)
	}
	entry := KVEntry{Key: key, Value: data}
	if err := s.store.db.Upsert(key, &entry); err != nil {
		return fmt.Errorf("failed to set key '%s': %w", key, err)
	}
	return nil
}

func (s *kvStorage) Delete(_ context.Context, key string) error {
	err := s.store.db.Delete(key, KVEntry{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete key '%s': %w", key, err)
	}
	return nil
}

func (s *kvStorage) Exists(_ context.Context, key string) (bool, error) {
	var entry KVEntry
	err := s.store.db.Get(key, &entry)
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check key '%s': %w", key, err)
	}
	return true, nil
}
