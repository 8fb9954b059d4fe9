// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// GameGroupTable represents the 'bank.gamegroup' junction table (game ↔ age group)
type GameGroupTable struct {
	Table   string
	ID      string
	GameID  string
	GroupID string
}

// GameGroup is the schema definition for bank.gamegroup
var GameGroup = GameGroupTable{
	Table:   "bank.gamegroup",
	ID:      "id",
	GameID:  "game_id",
	GroupID: "group_id",
}

func (t GameGroupTable) TableName() string     { return t.Table }
func (t GameGroupTable) PrimaryKeys() []string { return []string{t.ID} }
func (t GameGroupTable) Columns() []string     { return []string{t.ID, t.GameID, t.GroupID} }
func (t GameGroupTable) Writable() []string    { return []string{t.GameID, t.GroupID} }
