package services

import (
	"testing"
	"time"

	"gazette/app/models"
	"gazette/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLibraryService(t *testing.T) (*LibraryService, repositories.BookRepository) {
	db := setupTestDB(t)
	bookRepo := repositories.NewBadgerBookRepository(db)
	svc := NewLibraryService(repositories.NewBadgerAuthorRepository(db), bookRepo, zap.NewNop())
	return svc, bookRepo
}

func pubDate(year int) time.Time {
	return time.Date(year, 1, 15, 0, 0, 0, 0, time.UTC)
}

func TestAuthorsWithBookCount(t *testing.T) {
	svc, _ := newLibraryService(t)

	rowling := &models.Author{Name: "J.K. Rowling", Email: "jk@example.com"}
	herbert := &models.Author{Name: "Frank Herbert", Email: "fh@example.com"}
	require.NoError(t, svc.CreateAuthor(rowling))
	require.NoError(t, svc.CreateAuthor(herbert))

	require.NoError(t, svc.SaveBooks(rowling.ID, []*models.Book{
		{Title: "Philosopher's Stone", PublicationDate: pubDate(1997)},
		{Title: "Chamber of Secrets", PublicationDate: pubDate(1998)},
		{Title: "Prisoner of Azkaban", PublicationDate: pubDate(1999)},
	}))

	annotated, err := svc.AuthorsWithBookCount()
	require.NoError(t, err)
	require.Len(t, annotated, 2)

	byName := map[string]int{}
	for _, row := range annotated {
		byName[row.Name] = row.BookCount
	}
	assert.Equal(t, 3, byName["J.K. Rowling"])
	assert.Equal(t, 0, byName["Frank Herbert"])
}

func TestSaveBooksValidatesEveryRowFirst(t *testing.T) {
	svc, books := newLibraryService(t)

	author := &models.Author{Name: "J.K. Rowling", Email: "jk@example.com"}
	require.NoError(t, svc.CreateAuthor(author))

	err := svc.SaveBooks(author.ID, []*models.Book{
		{Title: "Good", PublicationDate: pubDate(2001)},
		{Title: "", PublicationDate: pubDate(2002)},
	})
	require.Error(t, err)

	// Nothing was written.
	saved, err := books.ListByAuthor(author.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSaveBooksUpdatesExistingRows(t *testing.T) {
	svc, books := newLibraryService(t)

	author := &models.Author{Name: "Frank Herbert", Email: "fh@example.com"}
	require.NoError(t, svc.CreateAuthor(author))
	require.NoError(t, svc.SaveBooks(author.ID, []*models.Book{
		{Title: "Dune", PublicationDate: pubDate(1965)},
	}))

	existing, err := books.ListByAuthor(author.ID)
	require.NoError(t, err)
	require.Len(t, existing, 1)

	edited := []*models.Book{
		{ID: existing[0].ID, Title: "Dune (revised)", PublicationDate: pubDate(1965)},
		{Title: "Dune Messiah", PublicationDate: pubDate(1969)},
	}
	require.NoError(t, svc.SaveBooks(author.ID, edited))

	after, err := books.ListByAuthor(author.ID)
	require.NoError(t, err)
	require.Len(t, after, 2)
}

func TestSaveBooksRejectsForeignRows(t *testing.T) {
	svc, books := newLibraryService(t)

	first := &models.Author{Name: "A", Email: "a@example.com"}
	second := &models.Author{Name: "B", Email: "b@example.com"}
	require.NoError(t, svc.CreateAuthor(first))
	require.NoError(t, svc.CreateAuthor(second))

	require.NoError(t, svc.SaveBooks(first.ID, []*models.Book{
		{Title: "Owned", PublicationDate: pubDate(2000)},
	}))
	owned, err := books.ListByAuthor(first.ID)
	require.NoError(t, err)

	err = svc.SaveBooks(second.ID, []*models.Book{
		{ID: owned[0].ID, Title: "Stolen", PublicationDate: pubDate(2000)},
	})
	assert.Error(t, err)
}

func TestSaveBooksUnknownAuthor(t *testing.T) {
	svc, _ := newLibraryService(t)
	err := svc.SaveBooks(42, []*models.Book{{Title: "x", PublicationDate: pubDate(2000)}})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBooksPublishedAfter(t *testing.T) {
	svc, _ := newLibraryService(t)

	author := &models.Author{Name: "Frank Herbert", Email: "fh@example.com"}
	require.NoError(t, svc.CreateAuthor(author))
	require.NoError(t, svc.SaveBooks(author.ID, []*models.Book{
		{Title: "Dune", PublicationDate: pubDate(1965)},
		{Title: "Dune Messiah", PublicationDate: pubDate(1969)},
		{Title: "God Emperor", PublicationDate: pubDate(1981)},
	}))

	after, err := svc.BooksPublishedAfter(1969)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "God Emperor", after[0].Title)
}

func TestDeleteAuthorCascadesBooks(t *testing.T) {
	svc, books := newLibraryService(t)

	author := &models.Author{Name: "Frank Herbert", Email: "fh@example.com"}
	require.NoError(t, svc.CreateAuthor(author))
	require.NoError(t, svc.SaveBooks(author.ID, []*models.Book{
		{Title: "Dune", PublicationDate: pubDate(1965)},
		{Title: "Dune Messiah", PublicationDate: pubDate(1969)},
	}))

	require.NoError(t, svc.DeleteAuthor(author.ID))

	remaining, err := books.ListByAuthor(author.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, _, err = svc.GetAuthorWithBooks(author.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
