package cache

import (
	"encoding/json"
	"time"
)

type Entry struct {
	Endpoint string          `json:"endpoint"`
	Value    json.RawMessage `json:"value"`
	StoredAt time.Time       `json:"stored_at"`
}
