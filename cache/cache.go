package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Cache maps an endpoint, exactly as requested, to the JSON document it
// returned. It never expires anything on its own; that is up to the Store.
type Cache struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Cache {
	return &Cache{
		store: store,
		now:   time.Now,
	}
}

// Get reports a miss both for absent keys and for entries the store can no
// longer decode.
func (c *Cache) Get(endpoint string) (json.RawMessage, bool, error) {
	raw, err := c.store.Get(endpoint)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, err
	}

	return entry.Value, true, nil
}

func (c *Cache) Set(endpoint string, value json.RawMessage) error {
	entry := Entry{
		Endpoint: endpoint,
		Value:    value,
		StoredAt: c.now(),
	}

	bytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.store.Set(endpoint, bytes)
}
