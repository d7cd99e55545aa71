package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix = "post:"

	// SyncedAtKey records when the post set was last replaced.
	SyncedAtKey = "meta:synced_at"
)

var (
	ErrNotFound = errors.New("record not found")
)

// postKey builds the storage key for a slug
func postKey(slug string) []byte {
	return []byte(PostKeyPrefix + slug)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
