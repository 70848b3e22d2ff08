package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
)

// wantsJSON reports whether the client asked for a JSON response,
// either via the Accept header or by calling an /api route.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// sendJSON writes data as a JSON response
func sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// sendError writes an error response, JSON or plain text depending on
// the request
func sendError(w http.ResponseWriter, r *http.Request, message string, code int) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, code)
}

// sendFieldErrors reports a failed form validation: a 400 JSON error
// map for API callers, otherwise the form page re-rendered with the
// field errors.
func sendFieldErrors(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data interface{}, errs interface{}) {
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": errs})
		return
	}
	w.WriteHeader(http.StatusBadRequest)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	pages := map[string]string{
		"contact":       "app/views/contact/form.html",
		"person":        "app/views/person/form.html",
		"posts_index":   "app/views/posts/index.html",
		"posts_show":    "app/views/posts/show.html",
		"authors":       "app/views/library/authors.html",
		"author_books":  "app/views/library/books.html",
		"volumes_form":  "app/views/volumes/form.html",
		"volumes_index": "app/views/volumes/index.html",
	}
	layout := filepath.Join(basePath, "app/views/layout.html")
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(layout, filepath.Join(basePath, page)))
	}
	return templates
}
