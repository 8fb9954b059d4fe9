// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package song

import (
	"strings"
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/pkg/slug"
)

// Song is one entry of the campfire songbook catalog.
type Song struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// TitleSearch is the normalized form of Title used for fuzzy lookup.
	// It is derived server-side and never accepted from clients.
	TitleSearch string `json:"-"`

	Text       string    `json:"text"`
	FilePath   *string   `json:"file_path"`
	CategoryID *int64    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Category is a node of the hierarchical song catalog. A nil ParentID
// marks a root category.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Book is a scanned songbook file available for download.
type Book struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	FilePath  *string   `json:"file_path"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Draft carries the client-settable fields of a new song.
type Draft struct {
	Title      string
	Text       string
	FilePath   *string
	CategoryID *int64
}

// Changes carries a partial update; nil fields are left untouched.
type Changes struct {
	Title      *string
	Text       *string
	FilePath   *string
	CategoryID *int64
}

// NormalizeTitle reduces a title to the lowercase ASCII form stored in
// title_search: accents stripped, punctuation collapsed to single spaces.
func NormalizeTitle(title string) string {
	return strings.ReplaceAll(slug.From(title), "-", " ")
}

// # Row Conversion

func songFromRow(row crud.Row) Song {
	return Song{
		ID:          crud.ID(row, schema.Song.ID),
		Title:       crud.String(row, schema.Song.Title),
		TitleSearch: crud.String(row, schema.Song.TitleSearch),
		Text:        crud.String(row, schema.Song.Text),
		FilePath:    crud.StringPtr(row, schema.Song.FilePath),
		CategoryID:  crud.Int64Ptr(row, schema.Song.CategoryID),
		CreatedAt:   crud.Time(row, schema.Song.CreatedAt),
		UpdatedAt:   crud.Time(row, schema.Song.UpdatedAt),
	}
}

func categoryFromRow(row crud.Row) Category {
	return Category{
		ID:        crud.ID(row, schema.SongCategory.ID),
		Name:      crud.String(row, schema.SongCategory.Name),
		ParentID:  crud.Int64Ptr(row, schema.SongCategory.ParentID),
		CreatedAt: crud.Time(row, schema.SongCategory.CreatedAt),
		UpdatedAt: crud.Time(row, schema.SongCategory.UpdatedAt),
	}
}

func bookFromRow(row crud.Row) Book {
	return Book{
		ID:        crud.ID(row, schema.SongBook.ID),
		Name:      crud.String(row, schema.SongBook.Name),
		FilePath:  crud.StringPtr(row, schema.SongBook.FilePath),
		CreatedAt: crud.Time(row, schema.SongBook.CreatedAt),
		UpdatedAt: crud.Time(row, schema.SongBook.UpdatedAt),
	}
}

func (draft Draft) row() crud.Row {
	row := crud.Row{
		schema.Song.Title:       draft.Title,
		schema.Song.TitleSearch: NormalizeTitle(draft.Title),
		schema.Song.Text:        draft.Text,
	}
	if draft.FilePath != nil {
		row[schema.Song.FilePath] = *draft.FilePath
	}
	if draft.CategoryID != nil {
		row[schema.Song.CategoryID] = *draft.CategoryID
	}
	return row
}

func (changes Changes) row() crud.Row {
	row := crud.Row{}
	if changes.Title != nil {
		row[schema.Song.Title] = *changes.Title
		row[schema.Song.TitleSearch] = NormalizeTitle(*changes.Title)
	}
	if changes.Text != nil {
		row[schema.Song.Text] = *changes.Text
	}
	if changes.FilePath != nil {
		row[schema.Song.FilePath] = *changes.FilePath
	}
	if changes.CategoryID != nil {
		row[schema.Song.CategoryID] = *changes.CategoryID
	}
	return row
}
