// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
)

// Handler exposes the aggregated search endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new search [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the search endpoint mounted.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

/*
GET /api/v1/search.

Description: Searches songs, KTDs, legends and games by approximate title
match in one call. Every collection is always present in the response,
empty when it had no hits.

Request:
  - q: string (Title fragment, required)

Response:
  - 200: Results: Per-collection hits
  - 400: 400: Validation: Missing query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query().Get("q")
	if query == "" {
		respond.Error(writer, request, apperr.ValidationError("query parameter 'q' is required"))
		return
	}

	respond.OK(writer, handler.service.Search(request.Context(), query))
}
