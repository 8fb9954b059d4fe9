// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package song provides the campfire song catalog: songs, their hierarchical
categories and downloadable songbooks.

# Routing Strategy

  - Public (v1): Catalog browsing and title search (GET).
  - Restricted (v1): Mutative endpoints requiring the Methodist role.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package song

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	requestutil "github.com/azhdanov/zarnitsa/internal/platform/request"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for the song catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new song [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the song domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Catalog Endpoints
	router.Get("/", handler.listSongs)
	router.Get("/search", handler.searchSongs)
	router.Get("/categories", handler.listCategories)
	router.Get("/categories/{id}/songs", handler.songsByCategory)
	router.Get("/books", handler.listBooks)
	router.Get("/{id}", handler.getSong)

	// ## Catalog Management (Methodist Protected)
	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleMethodist))

		restricted.Post("/", handler.createSong)
		restricted.Post("/import", handler.importSongs)
		restricted.Patch("/{id}", handler.updateSong)
		restricted.Delete("/", handler.deleteSongs)

		restricted.Post("/categories", handler.createCategory)
		restricted.Patch("/categories/{id}", handler.renameCategory)
		restricted.Delete("/categories", handler.deleteCategories)

		restricted.Post("/books", handler.createBook)
		restricted.Delete("/books", handler.deleteBooks)
	})

	return router
}

// # Song Endpoints

/*
GET /api/v1/songs.

Response:
  - 200: []Song: Full song catalog
*/
func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	songs, err := handler.service.ListSongs(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, songs)
}

/*
GET /api/v1/songs/search.

Description: Fuzzy title lookup; answers "find THE song" with the best
matches first.

Request:
  - q: string (Title as typed, required)

Response:
  - 200: []Song: Matches, best first; empty list when nothing matched
  - 400: 400: Validation: Missing query
*/
func (handler *Handler) searchSongs(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	if query == "" {
		respond.Error(writer, request, apperr.ValidationError("query parameter 'q' is required"))
		return
	}

	songs, err := handler.service.SearchByTitle(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, songs)
}

/*
GET /api/v1/songs/{id}.

Response:
  - 200: Song: Success
  - 404: 404: ErrNotFound: Song not found
*/
func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetSong(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// # Request Payloads

// songRequest defines the inbound JSON schema for song creation.
type songRequest struct {
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	FilePath   *string `json:"file_path"`
	CategoryID *int64  `json:"category_id"`
}

func (input songRequest) draft() Draft {
	return Draft{
		Title:      input.Title,
		Text:       input.Text,
		FilePath:   input.FilePath,
		CategoryID: input.CategoryID,
	}
}

// idsRequest carries the target ids of a bulk delete.
type idsRequest struct {
	IDs []int64 `json:"ids"`
}

/*
POST /api/v1/songs.

Response:
  - 201: Song: Created song
  - 400: 400: Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
*/
func (handler *Handler) createSong(writer http.ResponseWriter, request *http.Request) {
	var input songRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	songs, err := handler.service.CreateSongs(request.Context(), []Draft{input.draft()})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, songs[0])
}

/*
POST /api/v1/songs/import.

Description: Creates a batch of songs atomically. Either every song in
the payload is persisted or none is.

Response:
  - 201: []Song: Created songs
  - 400: 400: Validation: Invalid input data
*/
func (handler *Handler) importSongs(writer http.ResponseWriter, request *http.Request) {
	var inputs []songRequest
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(inputs) == 0 {
		respond.Error(writer, request, apperr.ValidationError("empty import payload"))
		return
	}

	drafts := make([]Draft, len(inputs))
	for i, input := range inputs {
		drafts[i] = input.draft()
	}

	songs, err := handler.service.CreateSongs(request.Context(), drafts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, songs)
}

/*
PATCH /api/v1/songs/{id}.

Response:
  - 200: Song: Updated song
  - 404: 404: ErrNotFound: Song not found
*/
func (handler *Handler) updateSong(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title      *string `json:"title"`
		Text       *string `json:"text"`
		FilePath   *string `json:"file_path"`
		CategoryID *int64  `json:"category_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateSong(request.Context(), id, Changes{
		Title:      input.Title,
		Text:       input.Text,
		FilePath:   input.FilePath,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

/*
DELETE /api/v1/songs.

Description: Bulk delete. The response lists the ids that were actually
removed; unknown ids are silently absent.

Response:
  - 200: {"deleted": []int64}
*/
func (handler *Handler) deleteSongs(writer http.ResponseWriter, request *http.Request) {
	var input idsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteSongs(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}

// # Category Endpoints

/*
GET /api/v1/songs/categories.

Response:
  - 200: []CategoryNode: Category hierarchy, children nested
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	tree, err := handler.service.ListCategoryTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

/*
GET /api/v1/songs/categories/{id}/songs.

Response:
  - 200: []Song: Songs filed under the category
  - 404: 404: ErrNotFound: Category not found
*/
func (handler *Handler) songsByCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	songs, err := handler.service.SongsByCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, songs)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Name     string `json:"name"`
		ParentID *int64 `json:"parent_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), input.Name, input.ParentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) renameCategory(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RenameCategory(request.Context(), id, input.Name); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteCategories(writer http.ResponseWriter, request *http.Request) {
	var input idsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteCategories(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}

// # Songbook Endpoints

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Name     string  `json:"name"`
		FilePath *string `json:"file_path"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateBook(request.Context(), input.Name, input.FilePath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) deleteBooks(writer http.ResponseWriter, request *http.Request) {
	var input idsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteBooks(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}
