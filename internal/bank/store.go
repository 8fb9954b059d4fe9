// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package bank

import "context"

type Repository interface {
	ListGroups(context context.Context) ([]AgeGroup, error)
	CreateGroup(context context.Context, title string) (AgeGroup, error)
	DeleteGroups(context context.Context, ids ...int64) ([]int64, error)

	ListTypes(context context.Context) ([]GameType, error)
	CreateType(context context.Context, title string) (GameType, error)
	DeleteTypes(context context.Context, ids ...int64) ([]int64, error)

	ListGames(context context.Context) ([]Game, error)
	GetGame(context context.Context, id int64) (Game, error)
	GamesByTitle(context context.Context, title string) ([]Game, error)
	GamesByGroupAndType(context context.Context, groupID, typeID int64) ([]Game, error)
	CreateGames(context context.Context, drafts []GameDraft) ([]Game, error)
	DeleteGames(context context.Context, ids ...int64) ([]int64, error)

	ListLegends(context context.Context) ([]Item, error)
	LegendsByGroup(context context.Context, groupID int64) ([]Item, error)
	CreateLegends(context context.Context, drafts []ItemDraft) ([]Item, error)
	DeleteLegends(context context.Context, ids ...int64) ([]int64, error)

	ListKtds(context context.Context) ([]Item, error)
	KtdsByGroup(context context.Context, groupID int64) ([]Item, error)
	CreateKtds(context context.Context, drafts []ItemDraft) ([]Item, error)
	DeleteKtds(context context.Context, ids ...int64) ([]int64, error)
}
