// Package forms declares the input schemas for every user-submitted
// payload. Each form binds from an url-encoded body or a JSON body,
// validates itself with struct tags, and exposes cleaned values plus a
// field-keyed error map. Persistence is left to the services.
package forms

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DateLayout is the wire format for publication dates.
const DateLayout = "2006-01-02"

// isJSON reports whether the request body should be decoded as JSON.
func isJSON(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/json"
}

// ContactForm collects a message from a site visitor.
type ContactForm struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// ParseContact binds and validates a contact submission.
func ParseContact(r *http.Request) (*ContactForm, Errors) {
	form := &ContactForm{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return form, Errors{nonFieldKey: "invalid JSON body"}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return form, Errors{nonFieldKey: "malformed form body"}
		}
		form.Name = strings.TrimSpace(r.FormValue("name"))
		form.Email = strings.TrimSpace(r.FormValue("email"))
		form.Message = r.FormValue("message")
	}
	if err := validate.Struct(form); err != nil {
		return form, fieldErrors(err)
	}
	return form, Errors{}
}

// PersonForm captures a name, location and a bounded age.
type PersonForm struct {
	Name     string `json:"name" validate:"required,max=50"`
	Location string `json:"location" validate:"required,max=50"`
	Age      int    `json:"age" validate:"gte=0,lte=120"`
}

// ParsePerson binds and validates a person submission.
func ParsePerson(r *http.Request) (*PersonForm, Errors) {
	form := &PersonForm{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return form, Errors{nonFieldKey: "invalid JSON body"}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return form, Errors{nonFieldKey: "malformed form body"}
		}
		form.Name = strings.TrimSpace(r.FormValue("name"))
		form.Location = strings.TrimSpace(r.FormValue("location"))
		age, err := strconv.Atoi(strings.TrimSpace(r.FormValue("age")))
		if err != nil {
			return form, Errors{"age": "enter a whole number"}
		}
		form.Age = age
	}
	if err := validate.Struct(form); err != nil {
		return form, fieldErrors(err)
	}
	return form, Errors{}
}

// AuthorForm creates or updates a library author.
type AuthorForm struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

// ParseAuthor binds and validates an author submission.
func ParseAuthor(r *http.Request) (*AuthorForm, Errors) {
	form := &AuthorForm{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return form, Errors{nonFieldKey: "invalid JSON body"}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return form, Errors{nonFieldKey: "malformed form body"}
		}
		form.Name = strings.TrimSpace(r.FormValue("name"))
		form.Email = strings.TrimSpace(r.FormValue("email"))
	}
	if err := validate.Struct(form); err != nil {
		return form, fieldErrors(err)
	}
	return form, Errors{}
}

// BookForm creates or updates a single library book. ID is zero for
// new rows and set when editing an existing one inside a formset.
type BookForm struct {
	ID              int    `json:"id" validate:"gte=0"`
	Title           string `json:"title" validate:"required,max=200"`
	PublicationDate string `json:"publication_date" validate:"required"`
}

// Date returns the parsed publication date.
func (f *BookForm) Date() (time.Time, error) {
	return time.Parse(DateLayout, f.PublicationDate)
}

// Validate runs tag validation plus the date-format check.
func (f *BookForm) Validate() Errors {
	if err := validate.Struct(f); err != nil {
		return fieldErrors(err)
	}
	if _, err := f.Date(); err != nil {
		return Errors{"publication_date": "enter a valid date (YYYY-MM-DD)"}
	}
	return Errors{}
}

// VolumeForm creates a shelf volume.
type VolumeForm struct {
	Name   string `json:"name" validate:"required,max=50"`
	Author string `json:"author" validate:"required,max=20"`
	Detail string `json:"detail" validate:"required"`
}

// ParseVolume binds and validates a volume submission.
func ParseVolume(r *http.Request) (*VolumeForm, Errors) {
	form := &VolumeForm{}
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(form); err != nil {
			return form, Errors{nonFieldKey: "invalid JSON body"}
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return form, Errors{nonFieldKey: "malformed form body"}
		}
		form.Name = strings.TrimSpace(r.FormValue("name"))
		form.Author = strings.TrimSpace(r.FormValue("author"))
		form.Detail = r.FormValue("detail")
	}
	if err := validate.Struct(form); err != nil {
		return form, fieldErrors(err)
	}
	return form, Errors{}
}
