// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// Event is a scheduled song event (a festival or themed evening) with the
// songs on its program.
type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	StartAt      time.Time `json:"start_dt"`
	DurationDays int       `json:"duration_days"`

	// EndAt is always derived as StartAt plus DurationDays. Client input
	// for it is ignored.
	EndAt time.Time `json:"end_dt"`

	SongIDs   []int64   `json:"song_ids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft carries the client-settable fields of a new event.
type Draft struct {
	Title        string
	StartAt      time.Time
	DurationDays int
	SongIDs      []int64
}

// EndOf computes the event end from its start and duration.
func EndOf(startAt time.Time, durationDays int) time.Time {
	return startAt.AddDate(0, 0, durationDays)
}

func eventFromRow(row crud.Row) Event {
	return Event{
		ID:           crud.ID(row, schema.SongEvent.ID),
		Title:        crud.String(row, schema.SongEvent.Title),
		StartAt:      crud.Time(row, schema.SongEvent.StartDate),
		DurationDays: int(crud.ID(row, schema.SongEvent.DurationDays)),
		EndAt:        crud.Time(row, schema.SongEvent.EndDate),
		SongIDs:      make([]int64, 0),
		CreatedAt:    crud.Time(row, schema.SongEvent.CreatedAt),
		UpdatedAt:    crud.Time(row, schema.SongEvent.UpdatedAt),
	}
}
