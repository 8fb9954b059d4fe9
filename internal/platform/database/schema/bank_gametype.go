// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// GameTypeTable represents the 'bank.gametype' table
type GameTypeTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// GameType is the schema definition for bank.gametype
var GameType = GameTypeTable{
	Table:     "bank.gametype",
	ID:        "id",
	Title:     "title",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t GameTypeTable) TableName() string     { return t.Table }
func (t GameTypeTable) PrimaryKeys() []string { return []string{t.ID} }

func (t GameTypeTable) Columns() []string {
	return []string{t.ID, t.Title, t.CreatedAt, t.UpdatedAt}
}

func (t GameTypeTable) Writable() []string { return []string{t.Title} }
