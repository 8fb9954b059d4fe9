// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package song

import "context"

type Repository interface {
	ListSongs(context context.Context) ([]Song, error)
	GetSong(context context.Context, id int64) (Song, error)
	SongsByCategory(context context.Context, categoryID int64) ([]Song, error)
	CreateSongs(context context.Context, drafts []Draft) ([]Song, error)
	UpdateSong(context context.Context, id int64, changes Changes) error
	DeleteSongs(context context.Context, ids ...int64) ([]int64, error)

	ListCategories(context context.Context) ([]Category, error)
	GetCategory(context context.Context, id int64) (Category, error)
	CreateCategory(context context.Context, name string, parentID *int64) (Category, error)
	RenameCategory(context context.Context, id int64, name string) error
	DeleteCategories(context context.Context, ids ...int64) ([]int64, error)

	ListBooks(context context.Context) ([]Book, error)
	CreateBook(context context.Context, name string, filePath *string) (Book, error)
	DeleteBooks(context context.Context, ids ...int64) ([]int64, error)
}
