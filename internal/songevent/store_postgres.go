// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"context"
	"fmt"
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
)

// PostgresRepository implements [Repository]. Event creation writes the
// event and its song links in one transaction; reads go through the
// generic engine where the shape allows it.
type PostgresRepository struct {
	db     crud.DB
	engine *crud.Engine
}

func NewPostgresRepository(db crud.DB, engine *crud.Engine) *PostgresRepository {
	return &PostgresRepository{db: db, engine: engine}
}

func (repository *PostgresRepository) ListEvents(context context.Context) ([]Event, error) {
	rows, err := repository.engine.Get(context, schema.SongEvent, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_song_events")
	}
	return repository.hydrate(context, rows)
}

func (repository *PostgresRepository) GetEvent(context context.Context, id int64) (Event, error) {
	rows, err := repository.engine.Get(context, schema.SongEvent, crud.ByID(id))
	if err != nil {
		return Event{}, dberr.Wrap(err, "get_song_event")
	}
	if len(rows) == 0 {
		return Event{}, dberr.ErrNotFound
	}

	events, err := repository.hydrate(context, rows)
	if err != nil {
		return Event{}, err
	}
	return events[0], nil
}

func (repository *PostgresRepository) ActualEvents(context context.Context, now time.Time) ([]Event, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s >= $1 ORDER BY %s`,
		schema.SongEvent.ID, schema.SongEvent.Title, schema.SongEvent.StartDate,
		schema.SongEvent.DurationDays, schema.SongEvent.EndDate,
		schema.SongEvent.CreatedAt, schema.SongEvent.UpdatedAt,
		schema.SongEvent.Table, schema.SongEvent.EndDate, schema.SongEvent.StartDate)

	pgxRows, err := repository.db.Query(context, query, now)
	if err != nil {
		return nil, dberr.Wrap(err, "actual_song_events")
	}
	defer pgxRows.Close()

	rows, err := crud.CollectRows(pgxRows)
	if err != nil {
		return nil, dberr.Wrap(err, "actual_song_events")
	}
	return repository.hydrate(context, rows)
}

func (repository *PostgresRepository) CreateEvent(context context.Context, draft Draft, endAt time.Time) (Event, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return Event{}, dberr.Wrap(err, "create_song_event_begin")
	}
	defer transaction.Rollback(context)

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s, %s, %s`,
		schema.SongEvent.Table,
		schema.SongEvent.Title, schema.SongEvent.StartDate, schema.SongEvent.DurationDays, schema.SongEvent.EndDate,
		schema.SongEvent.ID, schema.SongEvent.CreatedAt, schema.SongEvent.UpdatedAt)

	pgxRows, err := transaction.Query(context, insert, draft.Title, draft.StartAt, draft.DurationDays, endAt)
	if err != nil {
		return Event{}, dberr.Wrap(err, "create_song_event")
	}

	// Closed before the link inserts run on the same transaction.
	rows, err := crud.CollectRows(pgxRows)
	pgxRows.Close()
	if err != nil {
		return Event{}, dberr.Wrap(err, "create_song_event")
	}
	if len(rows) != 1 {
		return Event{}, dberr.Wrap(fmt.Errorf("insert returned %d rows, expected 1", len(rows)), "create_song_event")
	}

	event := Event{
		ID:           crud.ID(rows[0], schema.SongEvent.ID),
		Title:        draft.Title,
		StartAt:      draft.StartAt,
		DurationDays: draft.DurationDays,
		EndAt:        endAt,
		SongIDs:      append([]int64{}, draft.SongIDs...),
		CreatedAt:    crud.Time(rows[0], schema.SongEvent.CreatedAt),
		UpdatedAt:    crud.Time(rows[0], schema.SongEvent.UpdatedAt),
	}

	link := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.SongEventSong.Table, schema.SongEventSong.EventID, schema.SongEventSong.SongID)
	for _, songID := range draft.SongIDs {
		if _, err := transaction.Exec(context, link, event.ID, songID); err != nil {
			return Event{}, dberr.Wrap(err, "create_song_event_songs")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return Event{}, dberr.Wrap(err, "create_song_event_commit")
	}
	return event, nil
}

func (repository *PostgresRepository) DeleteEvents(context context.Context, ids ...int64) ([]int64, error) {
	// Program links go with the event via ON DELETE CASCADE.
	deleted, err := repository.engine.Delete(context, schema.SongEvent, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_song_events")
	}
	return deleted, nil
}

// hydrate attaches program song ids to raw event rows.
func (repository *PostgresRepository) hydrate(context context.Context, rows []crud.Row) ([]Event, error) {
	events := make([]Event, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		events[i] = eventFromRow(row)
		ids[i] = events[i].ID
	}
	if len(events) == 0 {
		return events, nil
	}

	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s`,
		schema.SongEventSong.EventID, schema.SongEventSong.SongID,
		schema.SongEventSong.Table, schema.SongEventSong.EventID, schema.SongEventSong.ID)

	pgxRows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "load_song_event_songs")
	}
	defer pgxRows.Close()

	links, err := crud.CollectRows(pgxRows)
	if err != nil {
		return nil, dberr.Wrap(err, "load_song_event_songs")
	}

	byEvent := make(map[int64][]int64, len(ids))
	for _, link := range links {
		eventID := crud.ID(link, schema.SongEventSong.EventID)
		byEvent[eventID] = append(byEvent[eventID], crud.ID(link, schema.SongEventSong.SongID))
	}
	for i := range events {
		if songIDs, ok := byEvent[events[i].ID]; ok {
			events[i].SongIDs = songIDs
		}
	}
	return events, nil
}
