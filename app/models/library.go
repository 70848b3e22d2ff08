package models

// Validate checks if the author meets all validation requirements
func (a *Author) Validate() error {
	return validate.Struct(a)
}

// Validate checks if the book meets all validation requirements
func (b *Book) Validate() error {
	return validate.Struct(b)
}

// PublishedAfter reports whether the book was published strictly after
// the given year.
func (b *Book) PublishedAfter(year int) bool {
	return b.PublicationDate.Year() > year
}

// Validate checks if the volume meets all validation requirements
func (v *Volume) Validate() error {
	return validate.Struct(v)
}
