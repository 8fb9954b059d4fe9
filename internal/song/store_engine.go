// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package song

import (
	"context"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/pkg/slice"
)

// EngineRepository implements [Repository] on top of the generic CRUD
// engine. All row/struct conversion happens here; nothing above this
// layer sees a field mapping.
type EngineRepository struct {
	engine *crud.Engine
}

func NewEngineRepository(engine *crud.Engine) *EngineRepository {
	return &EngineRepository{engine: engine}
}

// # Songs

func (repository *EngineRepository) ListSongs(context context.Context) ([]Song, error) {
	rows, err := repository.engine.Get(context, schema.Song, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_songs")
	}
	return songsFromRows(rows), nil
}

func (repository *EngineRepository) GetSong(context context.Context, id int64) (Song, error) {
	rows, err := repository.engine.Get(context, schema.Song, crud.ByID(id))
	if err != nil {
		return Song{}, dberr.Wrap(err, "get_song")
	}
	if len(rows) == 0 {
		return Song{}, dberr.ErrNotFound
	}
	return songFromRow(rows[0]), nil
}

func (repository *EngineRepository) SongsByCategory(context context.Context, categoryID int64) ([]Song, error) {
	rows, err := repository.engine.Get(context, schema.Song, crud.ByFilter(crud.Row{
		schema.Song.CategoryID: categoryID,
	}))
	if err != nil {
		return nil, dberr.Wrap(err, "songs_by_category")
	}
	return songsFromRows(rows), nil
}

func (repository *EngineRepository) CreateSongs(context context.Context, drafts []Draft) ([]Song, error) {
	bodies := make([]crud.Row, len(drafts))
	for i, draft := range drafts {
		bodies[i] = draft.row()
	}

	rows, err := repository.engine.Insert(context, schema.Song, bodies...)
	if err != nil {
		return nil, dberr.Wrap(err, "create_songs")
	}
	return songsFromRows(rows), nil
}

func (repository *EngineRepository) UpdateSong(context context.Context, id int64, changes Changes) error {
	affected, err := repository.engine.Update(context, schema.Song, id, changes.row())
	if err != nil {
		return dberr.Wrap(err, "update_song")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) DeleteSongs(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Song, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_songs")
	}
	return deleted, nil
}

// # Categories

func (repository *EngineRepository) ListCategories(context context.Context) ([]Category, error) {
	rows, err := repository.engine.Get(context, schema.SongCategory, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_song_categories")
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromRow(row)
	}
	return categories, nil
}

func (repository *EngineRepository) GetCategory(context context.Context, id int64) (Category, error) {
	rows, err := repository.engine.Get(context, schema.SongCategory, crud.ByID(id))
	if err != nil {
		return Category{}, dberr.Wrap(err, "get_song_category")
	}
	if len(rows) == 0 {
		return Category{}, dberr.ErrNotFound
	}
	return categoryFromRow(rows[0]), nil
}

func (repository *EngineRepository) CreateCategory(context context.Context, name string, parentID *int64) (Category, error) {
	body := crud.Row{schema.SongCategory.Name: name}
	if parentID != nil {
		body[schema.SongCategory.ParentID] = *parentID
	}

	rows, err := repository.engine.Insert(context, schema.SongCategory, body)
	if err != nil {
		return Category{}, dberr.Wrap(err, "create_song_category")
	}
	return categoryFromRow(rows[0]), nil
}

func (repository *EngineRepository) RenameCategory(context context.Context, id int64, name string) error {
	affected, err := repository.engine.Update(context, schema.SongCategory, id, crud.Row{
		schema.SongCategory.Name: name,
	})
	if err != nil {
		return dberr.Wrap(err, "rename_song_category")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) DeleteCategories(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.SongCategory, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_song_categories")
	}
	return deleted, nil
}

// # Songbooks

func (repository *EngineRepository) ListBooks(context context.Context) ([]Book, error) {
	rows, err := repository.engine.Get(context, schema.SongBook, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_songbooks")
	}

	books := make([]Book, len(rows))
	for i, row := range rows {
		books[i] = bookFromRow(row)
	}
	return books, nil
}

func (repository *EngineRepository) CreateBook(context context.Context, name string, filePath *string) (Book, error) {
	body := crud.Row{schema.SongBook.Name: name}
	if filePath != nil {
		body[schema.SongBook.FilePath] = *filePath
	}

	rows, err := repository.engine.Insert(context, schema.SongBook, body)
	if err != nil {
		return Book{}, dberr.Wrap(err, "create_songbook")
	}
	return bookFromRow(rows[0]), nil
}

func (repository *EngineRepository) DeleteBooks(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.SongBook, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_songbooks")
	}
	return deleted, nil
}

func songsFromRows(rows []crud.Row) []Song {
	return slice.Map(rows, songFromRow)
}
