// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package member

import (
	"context"
	"log/slog"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/validate"
	"github.com/azhdanov/zarnitsa/pkg/pagination"
)

const (
	maxNameLength   = 100
	maxReviewLength = 4000
)

// Service orchestrates member registration and the review workflow.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListMembers(context context.Context) ([]Member, error) {
	return service.repo.ListMembers(context)
}

// MembersPage returns one page of the member roster together with
// pagination metadata. The roster grows with every registration, so the
// page is cut in memory after a full fetch; the generic persistence layer
// only knows equality filters.
func (service *Service) MembersPage(context context.Context, params pagination.Params) ([]Member, pagination.Meta, error) {
	members, err := service.repo.ListMembers(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total := len(members)
	meta := pagination.NewMeta(params.Page, params.Limit, total)

	start := params.Offset()
	if start >= total {
		return []Member{}, meta, nil
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return members[start:end], meta, nil
}

func (service *Service) GetMember(context context.Context, id int64) (Member, error) {
	return service.repo.GetMember(context, id)
}

/*
Register creates a member for a Telegram account.

The Telegram id is checked for an existing registration first, so the
common "pressed /start twice" case answers with a conflict instead of
leaking a database constraint error.

Returns:
  - Member: The registered member
  - error: Conflict when the Telegram id is already registered
*/
func (service *Service) Register(context context.Context, draft Draft) (Member, error) {
	validator := &validate.Validator{}
	validator.
		Required("first_name", draft.FirstName).
		MaxLen("first_name", draft.FirstName, maxNameLength).
		Custom("telegram_id", draft.TelegramID <= 0, "Must be a positive Telegram account id")
	if draft.LastName != nil {
		validator.MaxLen("last_name", *draft.LastName, maxNameLength)
	}
	if draft.Nickname != nil {
		validator.MaxLen("nickname", *draft.Nickname, maxNameLength)
	}
	if err := validator.Err(); err != nil {
		return Member{}, err
	}

	if _, exists, err := service.repo.MemberByTelegramID(context, draft.TelegramID); err != nil {
		return Member{}, err
	} else if exists {
		return Member{}, apperr.Conflict("This Telegram account is already registered")
	}

	registered, err := service.repo.RegisterMember(context, draft)
	if err != nil {
		return Member{}, err
	}

	service.logger.Info("member_registered", slog.Int64("member_id", registered.ID))
	return registered, nil
}

func (service *Service) UpdateMember(context context.Context, id int64, changes Changes) (Member, error) {
	if changes.FirstName != nil {
		validator := &validate.Validator{}
		validator.
			Required("first_name", *changes.FirstName).
			MaxLen("first_name", *changes.FirstName, maxNameLength)
		if err := validator.Err(); err != nil {
			return Member{}, err
		}
	}

	if err := service.repo.UpdateMember(context, id, changes); err != nil {
		return Member{}, err
	}
	return service.repo.GetMember(context, id)
}

func (service *Service) DeleteMembers(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteMembers(context, ids...)
}

// # Reviews

func (service *Service) ListReviews(context context.Context) ([]Review, error) {
	return service.repo.ListReviews(context)
}

// PendingReviews lists reviews no methodist has looked at yet.
func (service *Service) PendingReviews(context context.Context) ([]Review, error) {
	return service.repo.PendingReviews(context)
}

func (service *Service) ReviewsByMember(context context.Context, memberID int64) ([]Review, error) {
	if _, err := service.repo.GetMember(context, memberID); err != nil {
		return nil, err
	}
	return service.repo.ReviewsByMember(context, memberID)
}

/*
LeaveReview records feedback from a member.

Returns:
  - Review: The stored review, not yet looked at
  - error: NotFound when the member does not exist
*/
func (service *Service) LeaveReview(context context.Context, memberID int64, text string) (Review, error) {
	validator := &validate.Validator{}
	validator.
		Required("text", text).
		MaxLen("text", text, maxReviewLength)
	if err := validator.Err(); err != nil {
		return Review{}, err
	}

	if _, err := service.repo.GetMember(context, memberID); err != nil {
		return Review{}, err
	}

	review, err := service.repo.CreateReview(context, memberID, text)
	if err != nil {
		return Review{}, err
	}

	service.logger.Info("review_left",
		slog.Int64("review_id", review.ID),
		slog.Int64("member_id", memberID))
	return review, nil
}

// MarkLooked flags a review as seen by a methodist.
func (service *Service) MarkLooked(context context.Context, id int64) error {
	return service.repo.MarkReviewLooked(context, id)
}

func (service *Service) DeleteReviews(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteReviews(context, ids...)
}
