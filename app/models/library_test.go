package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthorValidation(t *testing.T) {
	valid := &Author{Name: "J.K. Rowling", Email: "jk@example.com"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Author{Name: "J.K. Rowling", Email: "not-an-email"}).Validate())
	assert.Error(t, (&Author{Email: "jk@example.com"}).Validate())
}

func TestBookValidation(t *testing.T) {
	valid := &Book{
		Title:           "Harry Potter",
		PublicationDate: time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC),
		AuthorID:        1,
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Book{Title: "Orphan", PublicationDate: time.Now()}).Validate())
	assert.Error(t, (&Book{PublicationDate: time.Now(), AuthorID: 1}).Validate())
}

func TestBookPublishedAfter(t *testing.T) {
	book := &Book{
		Title:           "Harry Potter",
		PublicationDate: time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC),
		AuthorID:        1,
	}

	assert.True(t, book.PublishedAfter(1990))
	assert.False(t, book.PublishedAfter(1997))
	assert.False(t, book.PublishedAfter(2000))
}

func TestVolumeValidation(t *testing.T) {
	valid := &Volume{Name: "Dune", Author: "Herbert", Detail: "Desert planet epic"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Volume{Author: "Herbert", Detail: "x"}).Validate())
	tooLong := &Volume{Name: "Dune", Author: "an author name longer than twenty", Detail: "x"}
	assert.Error(t, tooLong.Validate())
}
