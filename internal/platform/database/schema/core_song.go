// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// SongTable represents the 'core.song' table
type SongTable struct {
	Table       string
	ID          string
	Title       string
	TitleSearch string
	Text        string
	FilePath    string
	CategoryID  string
	CreatedAt   string
	UpdatedAt   string
}

// Song is the schema definition for core.song
var Song = SongTable{
	Table:       "core.song",
	ID:          "id",
	Title:       "title",
	TitleSearch: "title_search",
	Text:        "text",
	FilePath:    "file_path",
	CategoryID:  "category_id",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t SongTable) TableName() string     { return t.Table }
func (t SongTable) PrimaryKeys() []string { return []string{t.ID} }

func (t SongTable) Columns() []string {
	return []string{t.ID, t.Title, t.TitleSearch, t.Text, t.FilePath, t.CategoryID, t.CreatedAt, t.UpdatedAt}
}

func (t SongTable) Writable() []string {
	return []string{t.Title, t.TitleSearch, t.Text, t.FilePath, t.CategoryID}
}
