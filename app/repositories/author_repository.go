package repositories

import (
	"gazette/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerAuthorRepository implements AuthorRepository using BadgerDB
type BadgerAuthorRepository struct {
	db *badger.DB
}

// NewBadgerAuthorRepository creates a new BadgerAuthorRepository
func NewBadgerAuthorRepository(db *badger.DB) *BadgerAuthorRepository {
	return &BadgerAuthorRepository{db: db}
}

// Create creates a new author
func (r *BadgerAuthorRepository) Create(author *models.Author) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, AuthorSeqKey)
		if err != nil {
			return err
		}
		author.ID = id

		data, err := marshalEntity(author)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(AuthorKeyPrefix, author.ID), data)
	})
}

// GetByID retrieves an author by ID
func (r *BadgerAuthorRepository) GetByID(id int) (*models.Author, error) {
	var author models.Author

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(AuthorKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &author)
		})
	})

	if err != nil {
		return nil, err
	}
	return &author, nil
}

// List retrieves all authors in key order
func (r *BadgerAuthorRepository) List() ([]*models.Author, error) {
	var authors []*models.Author
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(AuthorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var author models.Author
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &author)
			})
			if err != nil {
				return err
			}
			authors = append(authors, &author)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return authors, nil
}

// Update updates an existing author
func (r *BadgerAuthorRepository) Update(author *models.Author) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(AuthorKeyPrefix, author.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(author)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes an author by ID
func (r *BadgerAuthorRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(AuthorKeyPrefix, id)

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
