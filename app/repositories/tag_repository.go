package repositories

import (
	"gazette/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerTagRepository implements TagRepository using BadgerDB
type BadgerTagRepository struct {
	db *badger.DB
}

// NewBadgerTagRepository creates a new BadgerTagRepository
func NewBadgerTagRepository(db *badger.DB) *BadgerTagRepository {
	return &BadgerTagRepository{db: db}
}

// Create creates a new tag
func (r *BadgerTagRepository) Create(tag *models.Tag) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, TagSeqKey)
		if err != nil {
			return err
		}
		tag.ID = id

		data, err := marshalEntity(tag)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(TagKeyPrefix, tag.ID), data)
	})
}

// ListByPost retrieves all tags for a given post
func (r *BadgerTagRepository) ListByPost(postID int) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(TagKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tag models.Tag
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &tag)
			})
			if err != nil {
				return err
			}
			if tag.PostID == postID {
				tags = append(tags, &tag)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete deletes a tag by ID
func (r *BadgerTagRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(TagKeyPrefix, id)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// DeleteByPost removes every tag belonging to the post
func (r *BadgerTagRepository) DeleteByPost(postID int) (int, error) {
	deleted := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		prefix := []byte(TagKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tag models.Tag
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &tag)
			})
			if err != nil {
				return err
			}
			if tag.PostID == postID {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(keys)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
