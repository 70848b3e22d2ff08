package repositories

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

const (
	// Key prefixes for different entity types
	PostKeyPrefix   = "post:"
	TagKeyPrefix    = "tag:"
	AuthorKeyPrefix = "author:"
	BookKeyPrefix   = "book:"
	VolumeKeyPrefix = "volume:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey   = "seq:post"
	TagSeqKey    = "seq:tag"
	AuthorSeqKey = "seq:author"
	BookSeqKey   = "seq:book"
	VolumeSeqKey = "seq:volume"
)

// getNextID gets the next available ID for a given sequence key
func getNextID(txn *badger.Txn, seqKey string) (int, error) {
	var id uint32
	item, err := txn.Get([]byte(seqKey))
	if err == badger.ErrKeyNotFound {
		id = 1
	} else if err != nil {
		return 0, err
	} else {
		err = item.Value(func(val []byte) error {
			id = binary.BigEndian.Uint32(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
		id++
	}

	idBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(idBytes, id)
	if err := txn.Set([]byte(seqKey), idBytes); err != nil {
		return 0, err
	}

	return int(id), nil
}

// entityKey builds the primary key for an entity
func entityKey(prefix string, id int) []byte {
	return []byte(fmt.Sprintf("%s%d", prefix, id))
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
