package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"gazette/app/hooks"
	"gazette/app/models"
	"gazette/app/repositories"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestShelfController(t *testing.T) *ShelfController {
	db := setupControllerDB(t)
	registry := hooks.NewRegistry()
	services.RegisterShelfHooks(registry, zap.NewNop())

	volumeRepo := repositories.NewBadgerVolumeRepository(db, registry)
	shelfService := services.NewShelfService(volumeRepo, zap.NewNop())
	return &ShelfController{
		shelf:     shelfService,
		templates: make(map[string]*template.Template),
		log:       zap.NewNop(),
	}
}

func setupShelfRouter(controller *ShelfController) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/books/", controller.SaveVolume).Methods("POST")
	router.HandleFunc("/book-list/", controller.ListVolumes).Methods("GET")
	router.HandleFunc("/delete-books/{name}/", controller.DeleteByName).Methods("DELETE")
	return router
}

func TestShelfController(t *testing.T) {
	controller := setupTestShelfController(t)
	router := setupShelfRouter(controller)

	t.Run("save volume runs the pre-save hook", func(t *testing.T) {
		payload := `{"name":"Dune","author":"Herbert","detail":"sand"}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonReq(http.MethodPost, "/books/", payload))

		require.Equal(t, http.StatusOK, w.Code)
		var vol models.Volume
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vol))
		assert.Equal(t, services.ForcedVolumeName, vol.Name)
		assert.Equal(t, "Herbert", vol.Author)
		assert.Equal(t, 1, vol.ID)
	})

	t.Run("invalid volume never reaches the hooks", func(t *testing.T) {
		payload := `{"name":"","author":"Herbert","detail":"sand"}`
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonReq(http.MethodPost, "/books/", payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list volumes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonReq(http.MethodGet, "/book-list/", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var res struct {
			Books []models.Volume `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Books, 1)
		assert.Equal(t, services.ForcedVolumeName, res.Books[0].Name)
	})

	t.Run("delete by name", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, jsonReq(http.MethodDelete, "/delete-books/corrupted/", ""))

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
