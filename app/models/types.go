package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post represents a press article with its tags.
type Post struct {
	ID        int       `validate:"gte=0"`
	Title     string    `validate:"required,max=200"`
	Content   string    `validate:"required"`
	Author    string    `validate:"required,max=100"`
	CreatedAt time.Time `validate:"-"`
	UpdatedAt time.Time `validate:"-"`
	Image     string    `validate:"-"`
	Status    string    `validate:"required,oneof=draft published"`
	Tags      []*Tag    `validate:"-"`
}

// Tag labels a post and is removed together with it.
type Tag struct {
	ID     int    `validate:"gte=0"`
	PostID int    `validate:"gte=0"`
	Name   string `validate:"required,max=50"`
}

// Author owns library books.
type Author struct {
	ID    int    `validate:"gte=0"`
	Name  string `validate:"required,max=100"`
	Email string `validate:"required,email"`
}

// Book belongs to an author and is removed together with them.
type Book struct {
	ID              int       `validate:"gte=0"`
	Title           string    `validate:"required,max=200"`
	PublicationDate time.Time `validate:"required"`
	AuthorID        int       `validate:"required,gte=1"`
}

// Volume is the standalone shelf record whose saves and deletes run
// through the lifecycle hook registry. It has no relations.
type Volume struct {
	ID     int    `validate:"gte=0"`
	Name   string `validate:"required,max=50"`
	Author string `validate:"required,max=20"`
	Detail string `validate:"required"`
}
