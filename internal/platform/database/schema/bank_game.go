// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// GameTable represents the 'bank.game' table
type GameTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	FilePath    string
	CreatedAt   string
	UpdatedAt   string
}

// Game is the schema definition for bank.game
var Game = GameTable{
	Table:       "bank.game",
	ID:          "id",
	Title:       "title",
	Description: "description",
	FilePath:    "file_path",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t GameTable) TableName() string     { return t.Table }
func (t GameTable) PrimaryKeys() []string { return []string{t.ID} }

func (t GameTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.FilePath, t.CreatedAt, t.UpdatedAt}
}

func (t GameTable) Writable() []string { return []string{t.Title, t.Description, t.FilePath} }
