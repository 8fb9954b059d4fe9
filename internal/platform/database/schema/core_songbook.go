// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// SongBookTable represents the 'core.songbook' table
type SongBookTable struct {
	Table     string
	ID        string
	Name      string
	FilePath  string
	CreatedAt string
	UpdatedAt string
}

// SongBook is the schema definition for core.songbook
var SongBook = SongBookTable{
	Table:     "core.songbook",
	ID:        "id",
	Name:      "name",
	FilePath:  "file_path",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SongBookTable) TableName() string     { return t.Table }
func (t SongBookTable) PrimaryKeys() []string { return []string{t.ID} }

func (t SongBookTable) Columns() []string {
	return []string{t.ID, t.Name, t.FilePath, t.CreatedAt, t.UpdatedAt}
}

func (t SongBookTable) Writable() []string { return []string{t.Name, t.FilePath} }
