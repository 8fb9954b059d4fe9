// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package book

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

func (repository *EngineRepository) ListChapters(context context.Context) ([]Chapter, error) {
	rows, err := repository.engine.Get(context, schema.Chapter, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_chapters")
	}
	return chaptersFromRows(rows), nil
}

func (repository *EngineRepository) GetChapter(context context.Context, id int64) (Chapter, error) {
	rows, err := repository.engine.Get(context, schema.Chapter, crud.ByID(id))
	if err != nil {
		return Chapter{}, dberr.Wrap(err, "get_chapter")
	}
	if len(rows) == 0 {
		return Chapter{}, dberr.ErrNotFound
	}
	return chapterFromRow(rows[0]), nil
}

func (repository *EngineRepository) ChildrenOf(context context.Context, parentID int64) ([]Chapter, error) {
	rows, err := repository.engine.Get(context, schema.Chapter, crud.ByFilter(crud.Row{
		schema.Chapter.ParentID: parentID,
	}))
	if err != nil {
		return nil, dberr.Wrap(err, "chapter_children")
	}
	return chaptersFromRows(rows), nil
}

func (repository *EngineRepository) CreateChapter(context context.Context, title string, parentID *int64, filePath *string) (Chapter, error) {
	body := crud.Row{schema.Chapter.Title: title}
	if parentID != nil {
		body[schema.Chapter.ParentID] = *parentID
	}
	if filePath != nil {
		body[schema.Chapter.FilePath] = *filePath
	}

	rows, err := repository.engine.Insert(context, schema.Chapter, body)
	if err != nil {
		return Chapter{}, dberr.Wrap(err, "create_chapter")
	}
	return chapterFromRow(rows[0]), nil
}

func (repository *EngineRepository) UpdateChapter(context context.Context, id int64, changes Changes) error {
	body := crud.Row{}
	if changes.Title != nil {
		body[schema.Chapter.Title] = *changes.Title
	}
	if changes.ParentID != nil {
		body[schema.Chapter.ParentID] = *changes.ParentID
	}
	if changes.FilePath != nil {
		body[schema.Chapter.FilePath] = *changes.FilePath
	}

	affected, err := repository.engine.Update(context, schema.Chapter, id, body)
	if err != nil {
		return dberr.Wrap(err, "update_chapter")
	}
	if affected == 0 && len(body) > 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) DeleteChapters(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Chapter, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_chapters")
	}
	return deleted, nil
}

func chaptersFromRows(rows []crud.Row) []Chapter {
	return slice.Map(rows, chapterFromRow)
}
