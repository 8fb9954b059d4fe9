// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package member

import (
	"context"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/pkg/slice"
)

// EngineRepository implements [Repository] on top of the generic CRUD engine.
type EngineRepository struct {
	engine *crud.Engine
}

func NewEngineRepository(engine *crud.Engine) *EngineRepository {
	return &EngineRepository{engine: engine}
}

func (repository *EngineRepository) ListMembers(context context.Context) ([]Member, error) {
	rows, err := repository.engine.Get(context, schema.Member, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_members")
	}
	return membersFromRows(rows), nil
}

func (repository *EngineRepository) GetMember(context context.Context, id int64) (Member, error) {
	rows, err := repository.engine.Get(context, schema.Member, crud.ByID(id))
	if err != nil {
		return Member{}, dberr.Wrap(err, "get_member")
	}
	if len(rows) == 0 {
		return Member{}, dberr.ErrNotFound
	}
	return memberFromRow(rows[0]), nil
}

/*
MemberByTelegramID looks a member up by the Telegram account id.

Returns:
  - Member, true when the member is registered
  - zero Member, false when nobody holds the Telegram id
*/
func (repository *EngineRepository) MemberByTelegramID(context context.Context, telegramID int64) (Member, bool, error) {
	rows, err := repository.engine.Get(context, schema.Member, crud.ByFilter(crud.Row{
		schema.Member.TelegramID: telegramID,
	}))
	if err != nil {
		return Member{}, false, dberr.Wrap(err, "member_by_telegram_id")
	}
	if len(rows) == 0 {
		return Member{}, false, nil
	}
	return memberFromRow(rows[0]), true, nil
}

func (repository *EngineRepository) RegisterMember(context context.Context, draft Draft) (Member, error) {
	rows, err := repository.engine.Insert(context, schema.Member, draft.row())
	if err != nil {
		return Member{}, dberr.Wrap(err, "register_member")
	}
	return memberFromRow(rows[0]), nil
}

func (repository *EngineRepository) UpdateMember(context context.Context, id int64, changes Changes) error {
	body := crud.Row{}
	if changes.FirstName != nil {
		body[schema.Member.FirstName] = *changes.FirstName
	}
	if changes.LastName != nil {
		body[schema.Member.LastName] = *changes.LastName
	}
	if changes.Nickname != nil {
		body[schema.Member.Nickname] = *changes.Nickname
	}

	affected, err := repository.engine.Update(context, schema.Member, id, body)
	if err != nil {
		return dberr.Wrap(err, "update_member")
	}
	if affected == 0 && len(body) > 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) DeleteMembers(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Member, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_members")
	}
	return deleted, nil
}

func (repository *EngineRepository) ListReviews(context context.Context) ([]Review, error) {
	rows, err := repository.engine.Get(context, schema.Review, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews")
	}
	return reviewsFromRows(rows), nil
}

func (repository *EngineRepository) PendingReviews(context context.Context) ([]Review, error) {
	rows, err := repository.engine.Get(context, schema.Review, crud.ByFilter(crud.Row{
		schema.Review.Looked: false,
	}))
	if err != nil {
		return nil, dberr.Wrap(err, "pending_reviews")
	}
	return reviewsFromRows(rows), nil
}

func (repository *EngineRepository) ReviewsByMember(context context.Context, memberID int64) ([]Review, error) {
	rows, err := repository.engine.Get(context, schema.Review, crud.ByFilter(crud.Row{
		schema.Review.MemberID: memberID,
	}))
	if err != nil {
		return nil, dberr.Wrap(err, "reviews_by_member")
	}
	return reviewsFromRows(rows), nil
}

func (repository *EngineRepository) CreateReview(context context.Context, memberID int64, text string) (Review, error) {
	rows, err := repository.engine.Insert(context, schema.Review, crud.Row{
		schema.Review.MemberID: memberID,
		schema.Review.Text:     text,
		schema.Review.Looked:   false,
	})
	if err != nil {
		return Review{}, dberr.Wrap(err, "create_review")
	}
	return reviewFromRow(rows[0]), nil
}

func (repository *EngineRepository) MarkReviewLooked(context context.Context, id int64) error {
	affected, err := repository.engine.Update(context, schema.Review, id, crud.Row{
		schema.Review.Looked: true,
	})
	if err != nil {
		return dberr.Wrap(err, "mark_review_looked")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) DeleteReviews(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Review, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_reviews")
	}
	return deleted, nil
}

func membersFromRows(rows []crud.Row) []Member {
	return slice.Map(rows, memberFromRow)
}

func reviewsFromRows(rows []crud.Row) []Review {
	return slice.Map(rows, reviewFromRow)
}
