package forms

import (
	"encoding/json"
	"net/http"
	"strings"
)

// BookFormSet edits the complete set of books belonging to one author
// in a single request. Validation covers every row before anything is
// saved; SetErrors reports failures per row index.
type BookFormSet struct {
	Books []BookForm `json:"books"`
}

// SetErrors maps a row index to that row's field errors.
type SetErrors map[int]Errors

// HasErrors reports whether any row failed validation.
func (e SetErrors) HasErrors() bool {
	return len(e) > 0
}

// ParseBookSet binds a formset from a JSON body ({"books": [...]}) or
// from repeated url-encoded fields (id, title, publication_date).
func ParseBookSet(r *http.Request) (*BookFormSet, SetErrors) {
	set := &BookFormSet{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(set); err != nil {
			return set, SetErrors{0: {nonFieldKey: "invalid JSON body"}}
		}
		return set, set.Validate()
	}

	if err := r.ParseForm(); err != nil {
		return set, SetErrors{0: {nonFieldKey: "malformed form body"}}
	}
	titles := r.Form["title"]
	dates := r.Form["publication_date"]
	ids := r.Form["id"]
	if len(dates) != len(titles) || (len(ids) > 0 && len(ids) != len(titles)) {
		return set, SetErrors{0: {nonFieldKey: "mismatched row fields"}}
	}
	for i := range titles {
		form := BookForm{
			Title:           strings.TrimSpace(titles[i]),
			PublicationDate: strings.TrimSpace(dates[i]),
		}
		// A fully blank row is an unused extra form, not an error.
		if form.Title == "" && form.PublicationDate == "" {
			continue
		}
		if len(ids) > 0 {
			form.ID = atoiOrZero(ids[i])
		}
		set.Books = append(set.Books, form)
	}
	return set, set.Validate()
}

// Validate checks every row and collects errors per index.
func (s *BookFormSet) Validate() SetErrors {
	errs := SetErrors{}
	for i := range s.Books {
		if rowErrs := s.Books[i].Validate(); rowErrs.HasErrors() {
			errs[i] = rowErrs
		}
	}
	return errs
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
