package repositories

import (
	"gazette/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBookRepository implements BookRepository using BadgerDB
type BadgerBookRepository struct {
	db *badger.DB
}

// NewBadgerBookRepository creates a new BadgerBookRepository
func NewBadgerBookRepository(db *badger.DB) *BadgerBookRepository {
	return &BadgerBookRepository{db: db}
}

// Create creates a new book
func (r *BadgerBookRepository) Create(book *models.Book) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, BookSeqKey)
		if err != nil {
			return err
		}
		book.ID = id

		data, err := marshalEntity(book)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(BookKeyPrefix, book.ID), data)
	})
}

// GetByID retrieves a book by ID
func (r *BadgerBookRepository) GetByID(id int) (*models.Book, error) {
	var book models.Book

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(BookKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &book)
		})
	})

	if err != nil {
		return nil, err
	}
	return &book, nil
}

// List retrieves all books in key order
func (r *BadgerBookRepository) List() ([]*models.Book, error) {
	return r.listWhere(func(*models.Book) bool { return true })
}

// ListByAuthor retrieves all books written by the given author
func (r *BadgerBookRepository) ListByAuthor(authorID int) ([]*models.Book, error) {
	return r.listWhere(func(b *models.Book) bool { return b.AuthorID == authorID })
}

// ListPublishedAfter retrieves books published strictly after the year
func (r *BadgerBookRepository) ListPublishedAfter(year int) ([]*models.Book, error) {
	return r.listWhere(func(b *models.Book) bool { return b.PublishedAfter(year) })
}

// listWhere scans the book prefix and keeps rows matching the predicate
func (r *BadgerBookRepository) listWhere(keep func(*models.Book) bool) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(BookKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var book models.Book
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &book)
			})
			if err != nil {
				return err
			}
			if keep(&book) {
				books = append(books, &book)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// CountByAuthor aggregates the number of books per author ID
func (r *BadgerBookRepository) CountByAuthor() (map[int]int, error) {
	counts := make(map[int]int)
	books, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, book := range books {
		counts[book.AuthorID]++
	}
	return counts, nil
}

// Update updates an existing book
func (r *BadgerBookRepository) Update(book *models.Book) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(BookKeyPrefix, book.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(book)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a book by ID
func (r *BadgerBookRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(BookKeyPrefix, id)

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

// DeleteByAuthor removes every book belonging to the author
func (r *BadgerBookRepository) DeleteByAuthor(authorID int) (int, error) {
	deleted := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		prefix := []byte(BookKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var book models.Book
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &book)
			})
			if err != nil {
				return err
			}
			if book.AuthorID == authorID {
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
