package repositories

import (
	"strings"

	"gazette/app/hooks"
	"gazette/app/models"

	"github.com/dgraph-io/badger/v4"
)

// VolumeKind is the hook registry kind for shelf volumes.
const VolumeKind = "volume"

// BadgerVolumeRepository implements VolumeRepository using BadgerDB.
// It is the persistence layer's side of the hook contract: every write
// and delete fires the registered lifecycle hooks synchronously.
type BadgerVolumeRepository struct {
	db    *badger.DB
	hooks *hooks.Registry
}

// NewBadgerVolumeRepository creates a new BadgerVolumeRepository
func NewBadgerVolumeRepository(db *badger.DB, registry *hooks.Registry) *BadgerVolumeRepository {
	return &BadgerVolumeRepository{db: db, hooks: registry}
}

// Save inserts or updates a volume. Pre-save hooks run first and may
// transform the pending volume; post-save hooks run after the write
// with the created flag.
func (r *BadgerVolumeRepository) Save(volume *models.Volume) error {
	r.hooks.FirePreSave(VolumeKind, volume)

	created := volume.ID == 0
	err := r.db.Update(func(txn *badger.Txn) error {
		if created {
			id, err := getNextID(txn, VolumeSeqKey)
			if err != nil {
				return err
			}
			volume.ID = id
		} else {
			_, err := txn.Get(entityKey(VolumeKeyPrefix, volume.ID))
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			if err != nil {
				return err
			}
		}

		data, err := marshalEntity(volume)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(VolumeKeyPrefix, volume.ID), data)
	})
	if err != nil {
		return err
	}

	r.hooks.FirePostSave(VolumeKind, volume, created)
	return nil
}

// GetByID retrieves a volume by ID
func (r *BadgerVolumeRepository) GetByID(id int) (*models.Volume, error) {
	var volume models.Volume

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(VolumeKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &volume)
		})
	})

	if err != nil {
		return nil, err
	}
	return &volume, nil
}

// List retrieves all volumes in key order
func (r *BadgerVolumeRepository) List() ([]*models.Volume, error) {
	var volumes []*models.Volume
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(VolumeKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var volume models.Volume
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &volume)
			})
			if err != nil {
				return err
			}
			volumes = append(volumes, &volume)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return volumes, nil
}

// DeleteByNameContains removes every volume whose name contains the
// fragment, case-insensitively. Pre-delete hooks fire once per match
// before the batch is removed. An empty match set deletes nothing and
// returns no error.
func (r *BadgerVolumeRepository) DeleteByNameContains(fragment string) ([]*models.Volume, error) {
	needle := strings.ToLower(fragment)
	var matches []*models.Volume

	err := r.db.Update(func(txn *badger.Txn) error {
		matches = matches[:0]

		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		prefix := []byte(VolumeKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var volume models.Volume
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &volume)
			})
			if err != nil {
				return err
			}
			if strings.Contains(strings.ToLower(volume.Name), needle) {
				matches = append(matches, &volume)
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}

		for _, volume := range matches {
			r.hooks.FirePreDelete(VolumeKind, volume)
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}
