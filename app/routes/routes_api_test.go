package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gazette/app/models"
	"gazette/app/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, path string, body interface{}) *http.Request {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func login(t *testing.T, router http.Handler) string {
	req := jsonRequest("POST", "/admin/login", map[string]string{
		"username": testAdminUser,
		"password": testAdminPassword,
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res["token"])
	return res["token"]
}

func TestAdminLogin(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	t.Run("valid credentials return a token", func(t *testing.T) {
		login(t, router)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		req := jsonRequest("POST", "/admin/login", map[string]string{
			"username": testAdminUser,
			"password": "wrong",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminPostWrites(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	t.Run("post creation without a token is rejected", func(t *testing.T) {
		req := jsonRequest("POST", "/api/posts", map[string]string{
			"title": "No token", "content": "body", "author": "eve",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	token := login(t, router)

	var created models.Post
	t.Run("post creation with a token succeeds", func(t *testing.T) {
		req := jsonRequest("POST", "/api/posts", map[string]interface{}{
			"title":   "First Post",
			"content": "hello world",
			"author":  "admin",
			"status":  models.StatusPublished,
		})
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, 1, created.ID)
		assert.Equal(t, "First Post", created.Title)
	})

	t.Run("created post is publicly readable", func(t *testing.T) {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/posts/%d", created.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, created.Title, got.Title)
	})

	t.Run("update with a token succeeds", func(t *testing.T) {
		req := jsonRequest("PUT", fmt.Sprintf("/api/posts/%d", created.ID), map[string]interface{}{
			"title":   "First Post, revised",
			"content": "hello again",
			"author":  "admin",
			"status":  models.StatusPublished,
		})
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete without a token is rejected", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/posts/%d", created.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete with a token succeeds", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/posts/%d", created.ID), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest("GET", fmt.Sprintf("/api/posts/%d", created.ID), nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLibraryAPI(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	var author models.Author
	t.Run("create author", func(t *testing.T) {
		req := jsonRequest("POST", "/api/library/authors", map[string]string{
			"name":  "Octavia",
			"email": "octavia@example.com",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &author))
		require.Equal(t, 1, author.ID)
	})

	t.Run("save a set of books for the author", func(t *testing.T) {
		req := jsonRequest("POST", fmt.Sprintf("/api/library/authors/%d/books", author.ID), map[string]interface{}{
			"books": []map[string]interface{}{
				{"title": "Kindred", "publication_date": "1979-06-01"},
				{"title": "Dawn", "publication_date": "1987-05-01"},
				{"title": "Parable of the Sower", "publication_date": "1993-10-01"},
			},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("formset with a bad date reports the row", func(t *testing.T) {
		req := jsonRequest("POST", fmt.Sprintf("/api/library/authors/%d/books", author.ID), map[string]interface{}{
			"books": []map[string]interface{}{
				{"title": "Fledgling", "publication_date": "not-a-date"},
			},
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("annotated authors carry their book count", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/library/authors", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Authors []services.AuthorBookCount `json:"authors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Authors, 1)
		assert.Equal(t, "Octavia", res.Authors[0].Name)
		assert.Equal(t, 3, res.Authors[0].BookCount)
	})

	t.Run("published_after filters strictly by year", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/library/books?published_after=1987", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Books []models.Book `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Books, 1)
		assert.Equal(t, "Parable of the Sower", res.Books[0].Title)
	})

	t.Run("missing published_after is a bad request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/library/books", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deleting the author cascades to the books", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", fmt.Sprintf("/api/library/authors/%d", author.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest("GET", "/api/library/books?published_after=1900", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Books []models.Book `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Empty(t, res.Books)
	})
}

func TestShelfAPI(t *testing.T) {
	db := setupTestDB(t)
	router, _ := setupTestRouter(t, db)

	t.Run("saving returns the volume with the hook-rewritten name", func(t *testing.T) {
		req := jsonRequest("POST", "/api/shelf/books", map[string]string{
			"name":   "Dune",
			"author": "Herbert",
			"detail": "sand",
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var vol models.Volume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vol))
		assert.Equal(t, services.ForcedVolumeName, vol.Name)
		assert.Equal(t, "Herbert", vol.Author)
	})

	t.Run("listing wraps the volumes in a books envelope", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/shelf/books", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Books []models.Volume `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Books, 1)
	})

	t.Run("deleting by fragment reports how many were removed", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/shelf/books/corrupted", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Message string `json:"message"`
			Deleted int    `json:"deleted"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, "All the requested books deleted", res.Message)
		assert.Equal(t, 1, res.Deleted)
	})
}
