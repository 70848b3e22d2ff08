package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusDraft
	}
}

// BeforeUpdate refreshes the modification timestamp
func (p *Post) BeforeUpdate() {
	p.UpdatedAt = time.Now()
}

// AddTag attaches a tag to the post
func (p *Post) AddTag(tag *Tag) error {
	if tag == nil {
		return errors.New("tag cannot be nil")
	}

	tag.PostID = p.ID
	p.Tags = append(p.Tags, tag)
	return nil
}

// Validate checks if the tag meets all validation requirements
func (t *Tag) Validate() error {
	return validate.Struct(t)
}
