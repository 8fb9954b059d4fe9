// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// SongEventTable represents the 'event.songevent' table
type SongEventTable struct {
	Table        string
	ID           string
	Title        string
	StartDate    string
	DurationDays string
	EndDate      string
	CreatedAt    string
	UpdatedAt    string
}

// SongEvent is the schema definition for event.songevent
var SongEvent = SongEventTable{
	Table:        "event.songevent",
	ID:           "id",
	Title:        "title",
	StartDate:    "start_dt",
	DurationDays: "duration_days",
	EndDate:      "end_dt",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t SongEventTable) TableName() string     { return t.Table }
func (t SongEventTable) PrimaryKeys() []string { return []string{t.ID} }

func (t SongEventTable) Columns() []string {
	return []string{t.ID, t.Title, t.StartDate, t.DurationDays, t.EndDate, t.CreatedAt, t.UpdatedAt}
}

// Writable includes end_dt even though the service always derives it from
// start_dt + duration_days; the column itself is a plain storable field.
func (t SongEventTable) Writable() []string {
	return []string{t.Title, t.StartDate, t.DurationDays, t.EndDate}
}
