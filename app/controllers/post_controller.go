package controllers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"gazette/app/models"
	"gazette/app/repositories"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxImageUpload caps post image uploads at 8 MiB.
const maxImageUpload = 8 << 20

// PostController handles HTTP requests for press posts
type PostController struct {
	posts     *services.PostService
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, basePath string, log *zap.Logger) *PostController {
	return &PostController{
		posts:     posts,
		templates: loadTemplates(basePath),
		log:       log,
	}
}

// Index lists posts with the admin's search and filter knobs:
// ?search= matches title or author, ?author=, ?status= and
// ?created_after=YYYY-MM-DD narrow the set.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	opts := services.PostListOptions{
		Search: r.URL.Query().Get("search"),
		Author: r.URL.Query().Get("author"),
		Status: r.URL.Query().Get("status"),
		Page:   1,
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			opts.PerPage = pp
		}
	}
	if after := r.URL.Query().Get("created_after"); after != "" {
		cutoff, err := time.Parse("2006-01-02", after)
		if err != nil {
			sendError(w, r, "created_after must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		opts.CreatedAfter = cutoff
	}

	posts, err := pc.posts.ListPosts(opts)
	if err != nil {
		sendError(w, r, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{
			"posts": posts,
			"page":  opts.Page,
		})
		return
	}
	data := struct {
		Posts []*models.Post
		Page  int
	}{Posts: posts, Page: opts.Page}
	if err := pc.templates["posts_index"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.posts.GetPost(id)
	if err != nil {
		sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, post)
		return
	}
	if err := pc.templates["posts_show"].ExecuteTemplate(w, "layout", post); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if wantsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		post.Title = r.FormValue("title")
		post.Content = r.FormValue("content")
		post.Author = r.FormValue("author")
		post.Status = r.FormValue("status")
		for _, name := range r.Form["tag"] {
			post.Tags = append(post.Tags, &models.Tag{Name: name})
		}
	}

	if err := pc.posts.CreatePost(&post); err != nil {
		sendError(w, r, "Failed to create post: "+err.Error(), http.StatusBadRequest)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, post)
		return
	}
	http.Redirect(w, r, "/posts/"+strconv.Itoa(post.ID), http.StatusSeeOther)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	post.ID = id

	if err := pc.posts.UpdatePost(&post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, r, "Post not found", http.StatusNotFound)
			return
		}
		sendError(w, r, "Failed to update post: "+err.Error(), http.StatusBadRequest)
		return
	}
	sendJSON(w, post)
}

// Delete handles deleting a post together with its tags
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := pc.posts.DeletePost(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, r, "Post not found", http.StatusNotFound)
			return
		}
		sendError(w, r, "Failed to delete post: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, map[string]string{"message": "post deleted"})
}

// UploadImage stores a multipart image upload for a post
func (pc *PostController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		sendError(w, r, "Invalid multipart body: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		sendError(w, r, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	post, err := pc.posts.AttachImage(id, header.Filename, file)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, r, "Post not found", http.StatusNotFound)
			return
		}
		sendError(w, r, "Failed to store image: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, post)
}
