// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package book

import (
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// Chapter is a node of the methodical book: a titled section with an
// optional attached document. A nil ParentID marks a top-level chapter.
type Chapter struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id"`
	Title     string    `json:"title"`
	FilePath  *string   `json:"file_path"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Node is a chapter with its nested children, as served to the browser.
type Node struct {
	Chapter
	Children []*Node `json:"children"`
}

// Changes carries a partial chapter update; nil fields are left untouched.
type Changes struct {
	Title    *string
	ParentID *int64
	FilePath *string
}

func chapterFromRow(row crud.Row) Chapter {
	return Chapter{
		ID:        crud.ID(row, schema.Chapter.ID),
		ParentID:  crud.Int64Ptr(row, schema.Chapter.ParentID),
		Title:     crud.String(row, schema.Chapter.Title),
		FilePath:  crud.StringPtr(row, schema.Chapter.FilePath),
		CreatedAt: crud.Time(row, schema.Chapter.CreatedAt),
		UpdatedAt: crud.Time(row, schema.Chapter.UpdatedAt),
	}
}
