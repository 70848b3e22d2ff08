package controllers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"gazette/app/forms"
	"gazette/app/models"
	"gazette/app/repositories"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LibraryController handles authors, their books and the annotated
// author queries
type LibraryController struct {
	library   *services.LibraryService
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewLibraryController creates a new LibraryController
func NewLibraryController(library *services.LibraryService, basePath string, log *zap.Logger) *LibraryController {
	return &LibraryController{
		library:   library,
		templates: loadTemplates(basePath),
		log:       log,
	}
}

type authorsPage struct {
	Form    interface{}
	Errors  forms.Errors
	Authors []*models.Author
}

// Authors lists authors and creates one from a submitted AuthorForm
func (lc *LibraryController) Authors(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		form, errs := forms.ParseAuthor(r)
		if errs.HasErrors() {
			lc.renderAuthors(w, r, form, errs, http.StatusBadRequest)
			return
		}

		author := &models.Author{Name: form.Name, Email: form.Email}
		if err := lc.library.CreateAuthor(author); err != nil {
			sendError(w, r, "Failed to create author: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if wantsJSON(r) {
			sendJSON(w, author)
			return
		}
		http.Redirect(w, r, "/library/authors", http.StatusSeeOther)
		return
	}

	if wantsJSON(r) {
		authors, err := lc.library.ListAuthors()
		if err != nil {
			sendError(w, r, "Failed to list authors: "+err.Error(), http.StatusInternalServerError)
			return
		}
		sendJSON(w, map[string]interface{}{"authors": authors})
		return
	}
	lc.renderAuthors(w, r, &forms.AuthorForm{}, nil, http.StatusOK)
}

func (lc *LibraryController) renderAuthors(w http.ResponseWriter, r *http.Request, form *forms.AuthorForm, errs forms.Errors, code int) {
	if wantsJSON(r) && errs.HasErrors() {
		sendFieldErrors(w, r, nil, nil, errs)
		return
	}
	authors, err := lc.library.ListAuthors()
	if err != nil {
		sendError(w, r, "Failed to list authors: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if code != http.StatusOK {
		w.WriteHeader(code)
	}
	data := authorsPage{Form: form, Errors: errs, Authors: authors}
	if err := lc.templates["authors"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// AuthorBooks shows an author's books and saves the whole set on POST
func (lc *LibraryController) AuthorBooks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	authorID, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, r, "Invalid author ID", http.StatusBadRequest)
		return
	}

	if r.Method == http.MethodPost {
		set, setErrs := forms.ParseBookSet(r)
		if setErrs.HasErrors() {
			if wantsJSON(r) {
				sendFieldErrors(w, r, nil, nil, setErrs)
				return
			}
			lc.renderBooks(w, r, authorID, set, setErrs, http.StatusBadRequest)
			return
		}

		books := make([]*models.Book, 0, len(set.Books))
		for i := range set.Books {
			date, err := set.Books[i].Date()
			if err != nil {
				sendError(w, r, "Invalid publication date", http.StatusBadRequest)
				return
			}
			books = append(books, &models.Book{
				ID:              set.Books[i].ID,
				Title:           set.Books[i].Title,
				PublicationDate: date,
			})
		}
		if err := lc.library.SaveBooks(authorID, books); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				sendError(w, r, "Author not found", http.StatusNotFound)
				return
			}
			sendError(w, r, "Failed to save books: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if wantsJSON(r) {
			sendJSON(w, map[string]interface{}{"books": books})
			return
		}
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}

	author, books, err := lc.library.GetAuthorWithBooks(authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, r, "Author not found", http.StatusNotFound)
			return
		}
		sendError(w, r, "Failed to load author: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"author": author, "books": books})
		return
	}
	lc.renderBooks(w, r, authorID, nil, nil, http.StatusOK)
}

type booksPage struct {
	Author *models.Author
	Books  []*models.Book
	Set    *forms.BookFormSet
	Errors forms.SetErrors
}

func (lc *LibraryController) renderBooks(w http.ResponseWriter, r *http.Request, authorID int, set *forms.BookFormSet, errs forms.SetErrors, code int) {
	author, books, err := lc.library.GetAuthorWithBooks(authorID)
	if err != nil {
		sendError(w, r, "Author not found", http.StatusNotFound)
		return
	}
	if code != http.StatusOK {
		w.WriteHeader(code)
	}
	data := booksPage{Author: author, Books: books, Set: set, Errors: errs}
	if err := lc.templates["author_books"].ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// AnnotatedAuthors returns every author with their book count
func (lc *LibraryController) AnnotatedAuthors(w http.ResponseWriter, r *http.Request) {
	annotated, err := lc.library.AuthorsWithBookCount()
	if err != nil {
		sendError(w, r, "Failed to annotate authors: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, map[string]interface{}{"authors": annotated})
}

// PublishedAfter lists books published strictly after the given year
func (lc *LibraryController) PublishedAfter(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("published_after"))
	if err != nil {
		sendError(w, r, "published_after must be a year", http.StatusBadRequest)
		return
	}
	books, err := lc.library.BooksPublishedAfter(year)
	if err != nil {
		sendError(w, r, "Failed to list books: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, map[string]interface{}{"books": books})
}

// DeleteAuthor removes an author and all their books
func (lc *LibraryController) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	authorID, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, r, "Invalid author ID", http.StatusBadRequest)
		return
	}
	if err := lc.library.DeleteAuthor(authorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, r, "Author not found", http.StatusNotFound)
			return
		}
		sendError(w, r, "Failed to delete author: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, map[string]string{"message": "author deleted"})
}
