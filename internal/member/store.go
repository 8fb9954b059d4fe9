// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package member

import "context"

type Repository interface {
	ListMembers(context context.Context) ([]Member, error)
	GetMember(context context.Context, id int64) (Member, error)
	MemberByTelegramID(context context.Context, telegramID int64) (Member, bool, error)
	RegisterMember(context context.Context, draft Draft) (Member, error)
	UpdateMember(context context.Context, id int64, changes Changes) error
	DeleteMembers(context context.Context, ids ...int64) ([]int64, error)

	ListReviews(context context.Context) ([]Review, error)
	PendingReviews(context context.Context) ([]Review, error)
	ReviewsByMember(context context.Context, memberID int64) ([]Review, error)
	CreateReview(context context.Context, memberID int64, text string) (Review, error)
	MarkReviewLooked(context context.Context, id int64) error
	DeleteReviews(context context.Context, ids ...int64) ([]int64, error)
}

// Changes carries a partial member update; nil fields are left untouched.
type Changes struct {
	FirstName *string
	LastName  *string
	Nickname  *string
}
