package services

import (
	"fmt"

	"gazette/app/models"
	"gazette/app/repositories"

	"go.uber.org/zap"
)

// AuthorBookCount is an author annotated with the number of books they
// have written.
type AuthorBookCount struct {
	models.Author
	BookCount int `json:"book_count"`
}

// LibraryService handles business logic for authors and their books
type LibraryService struct {
	authorRepo repositories.AuthorRepository
	bookRepo   repositories.BookRepository
	log        *zap.Logger
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(authorRepo repositories.AuthorRepository, bookRepo repositories.BookRepository, log *zap.Logger) *LibraryService {
	return &LibraryService{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		log:        log,
	}
}

// CreateAuthor creates a new author with validation
func (s *LibraryService) CreateAuthor(author *models.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}
	if err := s.authorRepo.Create(author); err != nil {
		return err
	}
	s.log.Info("author created", zap.Int("id", author.ID), zap.String("name", author.Name))
	return nil
}

// ListAuthors retrieves all authors
func (s *LibraryService) ListAuthors() ([]*models.Author, error) {
	return s.authorRepo.List()
}

// GetAuthorWithBooks retrieves an author and every book they wrote
func (s *LibraryService) GetAuthorWithBooks(id int) (*models.Author, []*models.Book, error) {
	author, err := s.authorRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	books, err := s.bookRepo.ListByAuthor(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get books: %w", err)
	}
	return author, books, nil
}

// SaveBooks creates or updates the given books for one author. Every
// book is validated before anything is written.
func (s *LibraryService) SaveBooks(authorID int, books []*models.Book) error {
	if _, err := s.authorRepo.GetByID(authorID); err != nil {
		return err
	}

	for _, book := range books {
		book.AuthorID = authorID
		if err := book.Validate(); err != nil {
			return fmt.Errorf("invalid book %q: %w", book.Title, err)
		}
	}

	for _, book := range books {
		if book.ID == 0 {
			if err := s.bookRepo.Create(book); err != nil {
				return err
			}
			continue
		}
		existing, err := s.bookRepo.GetByID(book.ID)
		if err != nil {
			return err
		}
		if existing.AuthorID != authorID {
			return fmt.Errorf("book %d does not belong to author %d", book.ID, authorID)
		}
		if err := s.bookRepo.Update(book); err != nil {
			return err
		}
	}

	s.log.Info("books saved", zap.Int("author", authorID), zap.Int("count", len(books)))
	return nil
}

// AuthorsWithBookCount annotates every author with the number of books
// they have written.
func (s *LibraryService) AuthorsWithBookCount() ([]AuthorBookCount, error) {
	authors, err := s.authorRepo.List()
	if err != nil {
		return nil, err
	}
	counts, err := s.bookRepo.CountByAuthor()
	if err != nil {
		return nil, err
	}

	annotated := make([]AuthorBookCount, 0, len(authors))
	for _, author := range authors {
		annotated = append(annotated, AuthorBookCount{
			Author:    *author,
			BookCount: counts[author.ID],
		})
	}
	return annotated, nil
}

// BooksPublishedAfter lists books published strictly after the year
func (s *LibraryService) BooksPublishedAfter(year int) ([]*models.Book, error) {
	return s.bookRepo.ListPublishedAfter(year)
}

// DeleteAuthor deletes an author and all their books
func (s *LibraryService) DeleteAuthor(id int) error {
	deleted, err := s.bookRepo.DeleteByAuthor(id)
	if err != nil {
		return fmt.Errorf("failed to delete books: %w", err)
	}
	if err := s.authorRepo.Delete(id); err != nil {
		return err
	}
	s.log.Info("author deleted", zap.Int("id", id), zap.Int("books_removed", deleted))
	return nil
}
