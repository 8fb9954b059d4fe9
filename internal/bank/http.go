// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package bank provides the counselor's piggy bank: games, legends and KTDs
(collective creative activities) tagged by age group, with games further
classified by game type.

# Routing Strategy

  - Public (v1): Browsing by age group and type (GET).
  - Restricted (v1): Mutative endpoints requiring the Methodist role.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package bank

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	requestutil "github.com/azhdanov/zarnitsa/internal/platform/request"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for the piggy bank.
type Handler struct {
	service *Service
}

// NewHandler constructs a new bank [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the piggy bank endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Browsing Endpoints
	router.Get("/groups", handler.listGroups)
	router.Get("/types", handler.listTypes)

	router.Get("/games", handler.listGames)
	router.Get("/games/available", handler.checkGameAvailable)
	router.Get("/games/{id}", handler.getGame)

	router.Get("/legends", handler.listLegends)
	router.Get("/ktds", handler.listKtds)

	// ## Content Management (Methodist Protected)
	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleMethodist))

		restricted.Post("/groups", handler.createGroup)
		restricted.Delete("/groups", handler.deleteGroups)
		restricted.Post("/types", handler.createType)
		restricted.Delete("/types", handler.deleteTypes)

		restricted.Post("/games", handler.createGames)
		restricted.Delete("/games", handler.deleteGames)
		restricted.Post("/legends", handler.createLegends)
		restricted.Delete("/legends", handler.deleteLegends)
		restricted.Post("/ktds", handler.createKtds)
		restricted.Delete("/ktds", handler.deleteKtds)
	})

	return router
}

// # Request Payloads

type titleRequest struct {
	Title string `json:"title"`
}

type idsRequest struct {
	IDs []int64 `json:"ids"`
}

// itemRequest defines the inbound JSON schema for legends and KTDs.
type itemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	FilePath    *string `json:"file_path"`
	GroupIDs    []int64 `json:"group_ids"`
}

func (input itemRequest) draft() ItemDraft {
	return ItemDraft{
		Title:       input.Title,
		Description: input.Description,
		FilePath:    input.FilePath,
		GroupIDs:    input.GroupIDs,
	}
}

// gameRequest defines the inbound JSON schema for games.
type gameRequest struct {
	itemRequest
	TypeIDs []int64 `json:"type_ids"`
}

// # Dictionary Endpoints

func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	groups, err := handler.service.ListGroups(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, groups)
}

func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.CreateGroup(request.Context(), input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, group)
}

func (handler *Handler) deleteGroups(writer http.ResponseWriter, request *http.Request) {
	handler.bulkDelete(writer, request, handler.service.DeleteGroups)
}

func (handler *Handler) listTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}

func (handler *Handler) createType(writer http.ResponseWriter, request *http.Request) {
	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	gameType, err := handler.service.CreateType(request.Context(), input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, gameType)
}

func (handler *Handler) deleteTypes(writer http.ResponseWriter, request *http.Request) {
	handler.bulkDelete(writer, request, handler.service.DeleteTypes)
}

// # Game Endpoints

/*
GET /api/v1/bank/games.

Description: Lists games. With both group and type query parameters set,
only games tagged with that age group AND that game type are returned.

Request:
  - group: int64 (Age group id, optional)
  - type: int64 (Game type id, optional)

Response:
  - 200: []Game: Games with their group and type ids attached
*/
func (handler *Handler) listGames(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	groupID, hasGroup := parseID(queryParams.Get("group"))
	typeID, hasType := parseID(queryParams.Get("type"))

	var games []Game
	var err error
	if hasGroup && hasType {
		games, err = handler.service.GamesByGroupAndType(request.Context(), groupID, typeID)
	} else {
		games, err = handler.service.ListGames(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, games)
}

func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetGame(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, game)
}

/*
GET /api/v1/bank/games/available.

Description: Pre-flight duplicate check for the bot's game submission
flow. Answers whether a game with this title, any of these groups and any
of these types already exists.

Request:
  - title: string (required)
  - group: []int64 (repeatable)
  - type: []int64 (repeatable)

Response:
  - 200: {"available": bool, "intersection": {"group_ids": [], "type_ids": []}}
*/
func (handler *Handler) checkGameAvailable(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()
	title := queryParams.Get("title")
	if title == "" {
		respond.Error(writer, request, apperr.ValidationError("query parameter 'title' is required"))
		return
	}

	overlap, err := handler.service.CheckGameAvailable(request.Context(), title,
		parseIDs(queryParams["group"]), parseIDs(queryParams["type"]))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{
		"available":    !overlap.Duplicate(),
		"intersection": overlap,
	})
}

/*
POST /api/v1/bank/games.

Description: Creates a batch of games atomically, junction rows included.

Response:
  - 201: []Game: Created games
  - 409: 409: Conflict: A draft collides with an existing game
*/
func (handler *Handler) createGames(writer http.ResponseWriter, request *http.Request) {
	var inputs []gameRequest
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(inputs) == 0 {
		respond.Error(writer, request, apperr.ValidationError("empty payload"))
		return
	}

	drafts := make([]GameDraft, len(inputs))
	for i, input := range inputs {
		drafts[i] = GameDraft{ItemDraft: input.draft(), TypeIDs: input.TypeIDs}
	}

	games, err := handler.service.CreateGames(request.Context(), drafts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, games)
}

func (handler *Handler) deleteGames(writer http.ResponseWriter, request *http.Request) {
	handler.bulkDelete(writer, request, handler.service.DeleteGames)
}

// # Legend and KTD Endpoints

func (handler *Handler) listLegends(writer http.ResponseWriter, request *http.Request) {
	handler.listItems(writer, request, handler.service.ListLegends, handler.service.LegendsByGroup)
}

func (handler *Handler) createLegends(writer http.ResponseWriter, request *http.Request) {
	handler.createItems(writer, request, handler.service.CreateLegends)
}

func (handler *Handler) deleteLegends(writer http.ResponseWriter, request *http.Request) {
	handler.bulkDelete(writer, request, handler.service.DeleteLegends)
}

func (handler *Handler) listKtds(writer http.ResponseWriter, request *http.Request) {
	handler.listItems(writer, request, handler.service.ListKtds, handler.service.KtdsByGroup)
}

func (handler *Handler) createKtds(writer http.ResponseWriter, request *http.Request) {
	handler.createItems(writer, request, handler.service.CreateKtds)
}

func (handler *Handler) deleteKtds(writer http.ResponseWriter, request *http.Request) {
	handler.bulkDelete(writer, request, handler.service.DeleteKtds)
}

// # Shared Endpoint Glue

func (handler *Handler) listItems(
	writer http.ResponseWriter,
	request *http.Request,
	listAll func(context context.Context) ([]Item, error),
	listByGroup func(context context.Context, groupID int64) ([]Item, error),
) {
	var items []Item
	var err error
	if groupID, ok := parseID(request.URL.Query().Get("group")); ok {
		items, err = listByGroup(request.Context(), groupID)
	} else {
		items, err = listAll(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, items)
}

func (handler *Handler) createItems(
	writer http.ResponseWriter,
	request *http.Request,
	create func(context context.Context, drafts []ItemDraft) ([]Item, error),
) {
	var inputs []itemRequest
	if err := requestutil.DecodeJSON(request, &inputs); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if len(inputs) == 0 {
		respond.Error(writer, request, apperr.ValidationError("empty payload"))
		return
	}

	drafts := make([]ItemDraft, len(inputs))
	for i, input := range inputs {
		drafts[i] = input.draft()
	}

	items, err := create(request.Context(), drafts)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, items)
}

func (handler *Handler) bulkDelete(
	writer http.ResponseWriter,
	request *http.Request,
	remove func(context context.Context, ids ...int64) ([]int64, error),
) {
	var input idsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := remove(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseIDs(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, value := range raw {
		if id, ok := parseID(value); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
