package repositories

import "gazette/app/models"

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	// List returns posts in key order. A negative limit returns
	// everything after the offset.
	List(limit, offset int) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(tag *models.Tag) error
	ListByPost(postID int) ([]*models.Tag, error)
	Delete(id int) error
	// DeleteByPost removes every tag of a post and returns how many
	// were removed.
	DeleteByPost(postID int) (int, error)
}

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id int) (*models.Author, error)
	List() ([]*models.Author, error)
	Update(author *models.Author) error
	Delete(id int) error
}

// BookRepository defines the interface for book data access
type BookRepository interface {
	Create(book *models.Book) error
	GetByID(id int) (*models.Book, error)
	List() ([]*models.Book, error)
	ListByAuthor(authorID int) ([]*models.Book, error)
	// ListPublishedAfter returns books whose publication year is
	// strictly greater than year.
	ListPublishedAfter(year int) ([]*models.Book, error)
	// CountByAuthor returns the number of books per author ID.
	CountByAuthor() (map[int]int, error)
	Update(book *models.Book) error
	Delete(id int) error
	// DeleteByAuthor removes every book of an author and returns how
	// many were removed.
	DeleteByAuthor(authorID int) (int, error)
}

// VolumeRepository defines the interface for shelf volume data access.
// Implementations fire the lifecycle hook registry around writes and
// deletes.
type VolumeRepository interface {
	// Save inserts the volume when its ID is zero, otherwise updates
	// it. Pre-save hooks run before the write and may transform the
	// volume; post-save hooks run after it.
	Save(volume *models.Volume) error
	GetByID(id int) (*models.Volume, error)
	List() ([]*models.Volume, error)
	// DeleteByNameContains removes every volume whose name contains
	// the fragment, case-insensitively, in one transaction. Pre-delete
	// hooks run for each matching volume. Zero matches is a no-op,
	// not an error. Returns the deleted volumes.
	DeleteByNameContains(fragment string) ([]*models.Volume, error)
}
