package routes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gazette/app/admin"
	"gazette/app/config"
	"gazette/app/models"
	"gazette/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "correct horse battery staple"
)

func setupTestTemplates(t *testing.T) string {
	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	// Create directories
	dirs := []string{
		filepath.Join(viewsDir, "contact"),
		filepath.Join(viewsDir, "person"),
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "library"),
		filepath.Join(viewsDir, "volumes"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	// Create template files
	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"):         `{{define "layout"}}<!DOCTYPE html><html><body>{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "contact/form.html"):   `{{define "content"}}<form method="POST"><input name="name"><input name="email"><textarea name="message"></textarea></form>{{end}}`,
		filepath.Join(viewsDir, "person/form.html"):    `{{define "content"}}<form method="POST"><input name="name"><input name="location"><input name="age"></form>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"):    `{{define "content"}}<div class="posts">{{range .Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"):     `{{define "content"}}<h1>{{.Title}}</h1><p>{{.Content}}</p>{{end}}`,
		filepath.Join(viewsDir, "library/authors.html"): `{{define "content"}}<ul>{{range .Authors}}<li>{{.Name}}</li>{{end}}</ul>{{end}}`,
		filepath.Join(viewsDir, "library/books.html"):   `{{define "content"}}<h1>{{.Author.Name}}</h1>{{range .Books}}<p>{{.Title}}</p>{{end}}{{end}}`,
		filepath.Join(viewsDir, "volumes/form.html"):    `{{define "content"}}<form method="POST"><input name="name"><input name="author"><textarea name="detail"></textarea></form>{{end}}`,
		filepath.Join(viewsDir, "volumes/index.html"):   `{{define "content"}}<ul>{{range .Volumes}}<li>{{.Name}}</li>{{end}}</ul>{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRouter(t *testing.T, db *badger.DB) (*mux.Router, *config.Config) {
	tmpDir := setupTestTemplates(t)

	hash, err := admin.HashPassword(testAdminPassword)
	require.NoError(t, err)

	cfg := &config.Config{
		Addr:              ":0",
		DBPath:            "",
		MediaDir:          t.TempDir(),
		ViewsDir:          tmpDir,
		LogLevel:          "error",
		AdminUser:         testAdminUser,
		AdminPasswordHash: hash,
		JWTSecret:         "routes-test-secret",
		TokenTTL:          time.Hour,
	}
	return Setup(db, cfg), cfg
}

// setupTestPost stores one post directly through the repository so that
// read-only routes have something to return.
func setupTestPost(t *testing.T, db *badger.DB) *models.Post {
	post := &models.Post{
		Title:     "Test Post",
		Content:   "This is a test post",
		Author:    "tester",
		Status:    models.StatusPublished,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, post.Validate())
	require.NoError(t, repositories.NewBadgerPostRepository(db).Create(post))
	return post
}
