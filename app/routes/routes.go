package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"gazette/app/admin"
	"gazette/app/config"
	"gazette/app/controllers"
	"gazette/app/hooks"
	"gazette/app/logging"
	"gazette/app/middleware"
	"gazette/app/repositories"
	"gazette/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Setup wires repositories, services, hooks and controllers into the
// application router.
func Setup(db *badger.DB, cfg *config.Config) *mux.Router {
	registry := hooks.NewRegistry()
	services.RegisterShelfHooks(registry, logging.Named("shelf"))

	postRepo := repositories.NewBadgerPostRepository(db)
	tagRepo := repositories.NewBadgerTagRepository(db)
	authorRepo := repositories.NewBadgerAuthorRepository(db)
	bookRepo := repositories.NewBadgerBookRepository(db)
	volumeRepo := repositories.NewBadgerVolumeRepository(db, registry)

	postService := services.NewPostService(postRepo, tagRepo, cfg.MediaDir, logging.Named("press"))
	libraryService := services.NewLibraryService(authorRepo, bookRepo, logging.Named("library"))
	shelfService := services.NewShelfService(volumeRepo, logging.Named("shelf"))

	tokens := admin.NewTokenService(cfg.JWTSecret, "gazette", cfg.TokenTTL)

	postController := controllers.NewPostController(postService, cfg.ViewsDir, logging.Named("press"))
	contactController := controllers.NewContactController(cfg.ViewsDir, logging.Named("contact"))
	libraryController := controllers.NewLibraryController(libraryService, cfg.ViewsDir, logging.Named("library"))
	shelfController := controllers.NewShelfController(shelfService, cfg.ViewsDir, logging.Named("shelf"))
	authController := controllers.NewAuthController(cfg.AdminUser, cfg.AdminPasswordHash, tokens, logging.Named("admin"))

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logging.Named("http")))
	router.Use(middleware.Recoverer(logging.Named("http")))

	// API callers get a JSON 404 instead of the plain-text default.
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")

	router.HandleFunc("/contact", contactController.Contact).Methods("GET", "POST")
	router.HandleFunc("/person", contactController.Person).Methods("GET", "POST")

	library := router.PathPrefix("/library").Subrouter()
	library.HandleFunc("/authors", libraryController.Authors).Methods("GET", "POST")
	library.HandleFunc("/authors/{id:[0-9]+}/books", libraryController.AuthorBooks).Methods("GET", "POST")

	// Shelf routes keep their historical shapes
	router.HandleFunc("/books/", shelfController.SaveVolume).Methods("GET", "POST")
	router.HandleFunc("/book-list/", shelfController.ListVolumes).Methods("GET")
	router.HandleFunc("/delete-books/{name}/", shelfController.DeleteByName).Methods("GET", "DELETE")

	router.HandleFunc("/admin/login", authController.Login).Methods("POST")

	// Serve uploaded post images
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaDir))))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")

	// Post writes require an admin session token
	adminPosts := api.PathPrefix("/posts").Subrouter()
	adminPosts.Use(middleware.RequireAdmin(tokens))
	adminPosts.HandleFunc("", postController.Create).Methods("POST")
	adminPosts.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	adminPosts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	adminPosts.HandleFunc("/{id:[0-9]+}/image", postController.UploadImage).Methods("POST")

	apiLibrary := api.PathPrefix("/library").Subrouter()
	apiLibrary.HandleFunc("/authors", libraryController.AnnotatedAuthors).Methods("GET")
	apiLibrary.HandleFunc("/authors", libraryController.Authors).Methods("POST")
	apiLibrary.HandleFunc("/authors/{id:[0-9]+}", libraryController.DeleteAuthor).Methods("DELETE")
	apiLibrary.HandleFunc("/authors/{id:[0-9]+}/books", libraryController.AuthorBooks).Methods("GET", "POST")
	apiLibrary.HandleFunc("/books", libraryController.PublishedAfter).Methods("GET")

	apiShelf := api.PathPrefix("/shelf").Subrouter()
	apiShelf.HandleFunc("/books", shelfController.SaveVolume).Methods("POST")
	apiShelf.HandleFunc("/books", shelfController.ListVolumes).Methods("GET")
	apiShelf.HandleFunc("/books/{name}", shelfController.DeleteByName).Methods("DELETE")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
