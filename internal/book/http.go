// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package book provides the methodical book: a tree of chapters, each
optionally carrying an attached document for counselors to download.

# Routing Strategy

  - Public (v1): Tree browsing (GET).
  - Restricted (v1): Mutative endpoints requiring the Methodist role.
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	requestutil "github.com/azhdanov/zarnitsa/internal/platform/request"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// Handler implements the HTTP layer for the methodical book.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the book domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Book Endpoints
	router.Get("/", handler.tree)
	router.Get("/{id}", handler.getChapter)
	router.Get("/{id}/children", handler.children)

	// ## Book Management (Methodist Protected)
	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleMethodist))

		restricted.Post("/", handler.createChapter)
		restricted.Patch("/{id}", handler.updateChapter)
		restricted.Post("/{id}/move", handler.moveChapter)
		restricted.Delete("/", handler.deleteChapters)
	})

	return router
}

/*
GET /api/v1/book.

Response:
  - 200: []Node: Chapter hierarchy, children nested
*/
func (handler *Handler) tree(writer http.ResponseWriter, request *http.Request) {
	tree, err := handler.service.Tree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tree)
}

/*
GET /api/v1/book/{id}.

Response:
  - 200: Chapter: Success
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
GET /api/v1/book/{id}/children.

Response:
  - 200: []Chapter: Immediate children of the chapter
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) children(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.ChildrenOf(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

// chapterRequest defines the inbound JSON schema for chapter creation.
type chapterRequest struct {
	Title    string  `json:"title"`
	ParentID *int64  `json:"parent_id"`
	FilePath *string `json:"file_path"`
}

/*
POST /api/v1/book.

Response:
  - 201: Chapter: Created chapter
  - 400: 400: Validation: Invalid input data
  - 404: 404: ErrNotFound: Parent chapter not found
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.CreateChapter(request.Context(), input.Title, input.ParentID, input.FilePath)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, chapter)
}

/*
PATCH /api/v1/book/{id}.

Response:
  - 200: Chapter: Updated chapter
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title    *string `json:"title"`
		FilePath *string `json:"file_path"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateChapter(request.Context(), id, Changes{
		Title:    input.Title,
		FilePath: input.FilePath,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

/*
POST /api/v1/book/{id}/move.

Description: Reparents a chapter. Self-parenting and cycles are rejected.

Response:
  - 204: Success
  - 404: 404: ErrNotFound: Chapter or target parent not found
  - 422: 422: ErrUnprocessable: Move would break the tree
*/
func (handler *Handler) moveChapter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		ParentID int64 `json:"parent_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MoveChapter(request.Context(), id, input.ParentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
DELETE /api/v1/book.

Description: Bulk delete; child chapters go with their parent. The
response lists the ids that were actually removed.

Response:
  - 200: {"deleted": []int64}
*/
func (handler *Handler) deleteChapters(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IDs []int64 `json:"ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteChapters(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}
