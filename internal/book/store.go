// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package book

import "context"

type Repository interface {
	ListChapters(context context.Context) ([]Chapter, error)
	GetChapter(context context.Context, id int64) (Chapter, error)
	ChildrenOf(context context.Context, parentID int64) ([]Chapter, error)
	CreateChapter(context context.Context, title string, parentID *int64, filePath *string) (Chapter, error)
	UpdateChapter(context context.Context, id int64, changes Changes) error
	DeleteChapters(context context.Context, ids ...int64) ([]int64, error)
}
