// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// GameTypeLinkTable represents the 'bank.gametypelink' junction table (game ↔ game type)
type GameTypeLinkTable struct {
	Table  string
	ID     string
	GameID string
	TypeID string
}

// GameTypeLink is the schema definition for bank.gametypelink
var GameTypeLink = GameTypeLinkTable{
	Table:  "bank.gametypelink",
	ID:     "id",
	GameID: "game_id",
	TypeID: "type_id",
}

func (t GameTypeLinkTable) TableName() string     { return t.Table }
func (t GameTypeLinkTable) PrimaryKeys() []string { return []string{t.ID} }
func (t GameTypeLinkTable) Columns() []string     { return []string{t.ID, t.GameID, t.TypeID} }
func (t GameTypeLinkTable) Writable() []string    { return []string{t.GameID, t.TypeID} }
