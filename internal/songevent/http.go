// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package songevent provides scheduled song events: festivals and themed
evenings with a program of songs from the catalog.

# Routing Strategy

  - Public (v1): Event browsing, including the "still running" filter.
  - Restricted (v1): Scheduling and cancellation require the Methodist role.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package songevent

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	requestutil "github.com/azhdanov/zarnitsa/internal/platform/request"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for song events.
type Handler struct {
	service *Service
}

// NewHandler constructs a new songevent [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the event endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listEvents)
	router.Get("/{id}", handler.getEvent)

	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleMethodist))

		restricted.Post("/", handler.createEvent)
		restricted.Delete("/", handler.deleteEvents)
	})

	return router
}

/*
GET /api/v1/events.

Request:
  - actual: bool (When "true", only events still running today)

Response:
  - 200: []Event: Events with their program song ids
*/
func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	var events []Event
	var err error
	if request.URL.Query().Get("actual") == "true" {
		events, err = handler.service.ActualEvents(request.Context())
	} else {
		events, err = handler.service.ListEvents(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, events)
}

func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.GetEvent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

/*
POST /api/v1/events.

Description: Schedules an event. The end date is computed from start and
duration; an end_dt field in the payload is ignored.

Response:
  - 201: Event: Created event
  - 400: 400: Validation: Missing title, start or non-positive duration
*/
func (handler *Handler) createEvent(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Title        string    `json:"title"`
		StartAt      time.Time `json:"start_dt"`
		DurationDays int       `json:"duration_days"`
		SongIDs      []int64   `json:"song_ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.CreateEvent(request.Context(), Draft{
		Title:        input.Title,
		StartAt:      input.StartAt,
		DurationDays: input.DurationDays,
		SongIDs:      input.SongIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, event)
}

func (handler *Handler) deleteEvents(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IDs []int64 `json:"ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteEvents(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}
