// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/dbtest"
)

func newRepository(db *dbtest.FakeDB) *PostgresRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresRepository(db, crud.NewEngine(db, logger))
}

func TestCreateEvent_PersistsDerivedEndAndProgramAtomically(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{{int64(3), nil, nil}},
		}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	event, err := repository.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      start,
		DurationDays: 5,
		SongIDs:      []int64{11, 12},
	}, end)

	require.NoError(t, err)
	assert.Equal(t, int64(3), event.ID)
	assert.Equal(t, end, event.EndAt)

	require.Len(t, transaction.QueryCalls, 1)
	assert.Equal(t, []any{"Festival", start, 5, end}, transaction.QueryCalls[0].Args)

	require.Len(t, transaction.ExecCalls, 2, "one link per program song")
	assert.Contains(t, transaction.ExecCalls[0].SQL, "INSERT INTO event.songeventsong")
	assert.Equal(t, []any{int64(3), int64(11)}, transaction.ExecCalls[0].Args)
	assert.True(t, transaction.Committed)
}

func TestCreateEvent_LinkFailureRollsBack(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{{int64(3), nil, nil}},
		}},
		ExecQueue: []dbtest.ExecResult{{Err: errors.New("foreign key violation")}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	_, err := repository.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      time.Now(),
		DurationDays: 1,
		SongIDs:      []int64{404},
	}, time.Now())

	require.Error(t, err)
	assert.False(t, transaction.Committed)
	assert.True(t, transaction.RolledBack)
}

func TestActualEvents_FiltersOnEndDate(t *testing.T) {
	db := &dbtest.FakeDB{}
	repository := newRepository(db)

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := repository.ActualEvents(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, db.QueryCalls, 1)
	assert.Contains(t, db.QueryCalls[0].SQL, "WHERE end_dt >= $1")
	assert.Equal(t, []any{now}, db.QueryCalls[0].Args)
}

func TestCreateEvent_ClosesInsertResultSet(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{{int64(3), nil, nil}},
		}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	_, err := repository.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      time.Now(),
		DurationDays: 1,
	}, time.Now())

	require.NoError(t, err)
	require.Len(t, transaction.Issued, 1)
	assert.True(t, transaction.Issued[0].Closed())
}

func TestCreateEvent_EmptyReturningIsErrorNotPanic(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{},
		}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	_, err := repository.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      time.Now(),
		DurationDays: 1,
	}, time.Now())

	require.Error(t, err)
	assert.False(t, transaction.Committed)
	assert.True(t, transaction.RolledBack)
}
