// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package member manages the camp community: Telegram bot users and the
feedback reviews they leave.

# Routing Strategy

  - Restricted (v1): All endpoints require at least the Counselor role;
    review moderation and deletion require the Methodist role.
*/
package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/middleware"
	requestutil "github.com/azhdanov/zarnitsa/internal/platform/request"
	"github.com/azhdanov/zarnitsa/internal/platform/respond"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
	"github.com/azhdanov/zarnitsa/pkg/pagination"
)

// Handler implements the HTTP layer for members and reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new member [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the member domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Counselor Endpoints
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleCounselor))

		staff.Get("/", handler.listMembers)
		staff.Post("/", handler.register)
		staff.Get("/{id}", handler.getMember)
		staff.Patch("/{id}", handler.updateMember)
		staff.Get("/{id}/reviews", handler.reviewsByMember)
		staff.Post("/{id}/reviews", handler.leaveReview)
	})

	// ## Moderation (Methodist Protected)
	router.Group(func(restricted chi.Router) {
		restricted.Use(middleware.RequireRole(sec.RoleMethodist))

		restricted.Delete("/", handler.deleteMembers)
		restricted.Get("/reviews", handler.listReviews)
		restricted.Post("/reviews/{id}/looked", handler.markLooked)
		restricted.Delete("/reviews", handler.deleteReviews)
	})

	return router
}

// # Member Endpoints

/*
GET /api/v1/members?page=1&limit=20

Response: the requested page of the member roster with pagination metadata.
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	members, meta, err := handler.service.MembersPage(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, members, meta)
}

/*
POST /api/v1/members.

Response:
  - 201: Member: Registered member
  - 400: 400: Validation: Invalid input data
  - 409: 409: ErrConflict: Telegram id already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		TelegramID int64   `json:"telegram_id"`
		FirstName  string  `json:"first_name"`
		LastName   *string `json:"last_name"`
		Nickname   *string `json:"nickname"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	registered, err := handler.service.Register(request.Context(), Draft{
		TelegramID: input.TelegramID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Nickname:   input.Nickname,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, registered)
}

func (handler *Handler) getMember(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetMember(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) updateMember(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Nickname  *string `json:"nickname"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMember(request.Context(), id, Changes{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Nickname:  input.Nickname,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteMembers(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IDs []int64 `json:"ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteMembers(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}

// # Review Endpoints

/*
GET /api/v1/members/reviews.

Request:
  - pending: bool (optional; when true, only reviews nobody looked at)

Response:
  - 200: []Review
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	var (
		reviews []Review
		err     error
	)
	if request.URL.Query().Get("pending") == "true" {
		reviews, err = handler.service.PendingReviews(request.Context())
	} else {
		reviews, err = handler.service.ListReviews(request.Context())
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) reviewsByMember(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ReviewsByMember(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

/*
POST /api/v1/members/{id}/reviews.

Response:
  - 201: Review: Stored review
  - 400: 400: Validation: Invalid input data
  - 404: 404: ErrNotFound: Member not found
*/
func (handler *Handler) leaveReview(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.LeaveReview(request.Context(), id, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, review)
}

func (handler *Handler) markLooked(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkLooked(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteReviews(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IDs []int64 `json:"ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteReviews(request.Context(), input.IDs...)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]int64{"deleted": deleted})
}
