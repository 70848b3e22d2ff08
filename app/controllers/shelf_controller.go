package controllers

import (
	"fmt"
	"html/template"
	"net/http"

	"gazette/app/forms"
	"gazette/app/models"
	"gazette/app/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ShelfController handles the hook-driven volume endpoints
type ShelfController struct {
	shelf     *services.ShelfService
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewShelfController creates a new ShelfController
func NewShelfController(shelf *services.ShelfService, basePath string, log *zap.Logger) *ShelfController {
	return &ShelfController{
		shelf:     shelf,
		templates: loadTemplates(basePath),
		log:       log,
	}
}

// SaveVolume renders the volume form on GET and persists a volume on
// POST. The stored name is whatever the pre-save hooks left behind,
// not necessarily what was submitted.
func (sc *ShelfController) SaveVolume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		if err := sc.templates["volumes_form"].ExecuteTemplate(w, "layout", formPage{Form: &forms.VolumeForm{}}); err != nil {
			sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	form, errs := forms.ParseVolume(r)
	if errs.HasErrors() {
		sendFieldErrors(w, r, sc.templates["volumes_form"], formPage{Form: form, Errors: errs}, errs)
		return
	}

	volume := &models.Volume{Name: form.Name, Author: form.Author, Detail: form.Detail}
	if err := sc.shelf.SaveVolume(volume); err != nil {
		sendError(w, r, "Failed to save volume: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, volume)
		return
	}
	fmt.Fprint(w, "FORM DATA SAVED")
}

// ListVolumes shows every stored volume
func (sc *ShelfController) ListVolumes(w http.ResponseWriter, r *http.Request) {
	volumes, err := sc.shelf.ListVolumes()
	if err != nil {
		sendError(w, r, "Failed to list volumes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{"books": volumes})
		return
	}
	data := struct{ Volumes []*models.Volume }{Volumes: volumes}
	if err := sc.templates["volumes_index"].ExecuteTemplate(w, "layout", data); err != nil {
		sendError(w, r, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// DeleteByName removes every volume whose name contains the path
// fragment, case-insensitively. Zero matches still succeeds.
func (sc *ShelfController) DeleteByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	deleted, err := sc.shelf.DeleteVolumesByName(name)
	if err != nil {
		sendError(w, r, "Failed to delete volumes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		sendJSON(w, map[string]interface{}{
			"message": "All the requested books deleted",
			"deleted": deleted,
		})
		return
	}
	fmt.Fprint(w, "All the requested books deleted")
}
