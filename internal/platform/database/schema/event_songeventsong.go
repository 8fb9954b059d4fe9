// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// SongEventSongTable represents the 'event.songeventsong' junction table (song event ↔ song)
type SongEventSongTable struct {
	Table   string
	ID      string
	EventID string
	SongID  string
}

// SongEventSong is the schema definition for event.songeventsong
var SongEventSong = SongEventSongTable{
	Table:   "event.songeventsong",
	ID:      "id",
	EventID: "event_id",
	SongID:  "song_id",
}

func (t SongEventSongTable) TableName() string     { return t.Table }
func (t SongEventSongTable) PrimaryKeys() []string { return []string{t.ID} }
func (t SongEventSongTable) Columns() []string     { return []string{t.ID, t.EventID, t.SongID} }
func (t SongEventSongTable) Writable() []string    { return []string{t.EventID, t.SongID} }
