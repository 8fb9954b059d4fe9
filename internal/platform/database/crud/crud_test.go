// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package crud_test

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
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

func newEngine(db *dbtest.FakeDB) *crud.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return crud.NewEngine(db, logger)
}

func TestGet_UnknownFilterFieldPerformsNoIO(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	_, err := engine.Get(context.Background(), schema.AgeGroup, crud.ByFilter(crud.Row{
		"title":  "juniors",
		"colour": "red",
	}))

	var validation *crud.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "bank.agegroup", validation.Entity)
	assert.Equal(t, []string{"colour"}, validation.Fields)
	assert.Zero(t, db.StatementCount())
}

func TestGet_EmptyMatchIsNotAnError(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	rows, err := engine.Get(context.Background(), schema.AgeGroup, crud.ByID(404))

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestGet_BuildsPredicates(t *testing.T) {
	tests := []struct {
		name      string
		selection crud.Selection
		wantSQL   string
		wantArgs  []any
	}{
		{
			name:      "whole table",
			selection: crud.Selection{},
			wantSQL:   "SELECT id, title, created_at, updated_at FROM bank.agegroup ORDER BY id",
			wantArgs:  nil,
		},
		{
			name:      "single id",
			selection: crud.ByID(7),
			wantSQL:   "SELECT id, title, created_at, updated_at FROM bank.agegroup WHERE id = $1 ORDER BY id",
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "id set",
			selection: crud.ByIDs(7, 8),
			wantSQL:   "SELECT id, title, created_at, updated_at FROM bank.agegroup WHERE id = ANY($1) ORDER BY id",
			wantArgs:  []any{[]int64{7, 8}},
		},
		{
			name:      "ids and filter combine conjunctively",
			selection: crud.Selection{IDs: []int64{7}, Filter: crud.Row{"title": "juniors"}},
			wantSQL:   "SELECT id, title, created_at, updated_at FROM bank.agegroup WHERE id = $1 AND title = $2 ORDER BY id",
			wantArgs:  []any{int64(7), "juniors"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			db := &dbtest.FakeDB{}
			engine := newEngine(db)

			_, err := engine.Get(context.Background(), schema.AgeGroup, test.selection)

			require.NoError(t, err)
			require.Len(t, db.QueryCalls, 1)
			assert.Equal(t, test.wantSQL, db.QueryCalls[0].SQL)
			assert.Equal(t, test.wantArgs, db.QueryCalls[0].Args)
		})
	}
}

func TestGet_MaterializesRowsByColumnName(t *testing.T) {
	db := &dbtest.FakeDB{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "title"},
			Rows:   [][]any{{int64(1), "juniors"}, {int64(2), "seniors"}},
		}},
	}
	engine := newEngine(db)

	rows, err := engine.Get(context.Background(), schema.AgeGroup, crud.Selection{})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, crud.Row{"id": int64(1), "title": "juniors"}, rows[0])
	assert.Equal(t, crud.Row{"id": int64(2), "title": "seniors"}, rows[1])
}

func TestGet_QueryFailureIsPersistenceError(t *testing.T) {
	db := &dbtest.FakeDB{
		QueryQueue: []dbtest.Result{{Err: errors.New("connection reset")}},
	}
	engine := newEngine(db)

	_, err := engine.Get(context.Background(), schema.AgeGroup, crud.ByID(1))

	var persistence *crud.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "get", persistence.Op)
	assert.Equal(t, "bank.agegroup", persistence.Entity)
}

func TestInsert_UnknownFieldPerformsNoIO(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	_, err := engine.Insert(context.Background(), schema.AgeGroup,
		crud.Row{"title": "juniors", "size": 20},
		crud.Row{"title": "seniors", "badge": "green"},
	)

	var validation *crud.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"badge", "size"}, validation.Fields)
	assert.Zero(t, db.StatementCount())
}

func TestInsert_ServerStampedFieldsRejected(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	_, err := engine.Insert(context.Background(), schema.AgeGroup,
		crud.Row{"title": "juniors", "created_at": "2024-01-01"})

	var validation *crud.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"created_at"}, validation.Fields)
	assert.Zero(t, db.StatementCount())
}

func TestInsert_EmptyBatchPerformsNoIO(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	rows, err := engine.Insert(context.Background(), schema.AgeGroup)

	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, db.StatementCount())
}

func TestInsert_BatchCommitsOnceAndMaterializes(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{
			{Fields: []string{"id", "title"}, Rows: [][]any{{int64(1), "juniors"}}},
			{Fields: []string{"id", "title"}, Rows: [][]any{{int64(2), "seniors"}}},
		},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	engine := newEngine(db)

	rows, err := engine.Insert(context.Background(), schema.AgeGroup,
		crud.Row{"title": "juniors"},
		crud.Row{"title": "seniors"},
	)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, int64(2), rows[1]["id"])

	assert.Equal(t, 1, db.BeginCount)
	assert.True(t, transaction.Committed)
	require.Len(t, transaction.QueryCalls, 2)
	assert.Equal(t,
		"INSERT INTO bank.agegroup (title) VALUES ($1) RETURNING id, title, created_at, updated_at",
		transaction.QueryCalls[0].SQL)
}

func TestInsert_FailedRowRollsBackWholeBatch(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{
			{Fields: []string{"id", "title"}, Rows: [][]any{{int64(1), "juniors"}}},
			{Err: errors.New("value too long")},
		},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	engine := newEngine(db)

	rows, err := engine.Insert(context.Background(), schema.AgeGroup,
		crud.Row{"title": "juniors"},
		crud.Row{"title": "seniors"},
	)

	var persistence *crud.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "insert", persistence.Op)
	assert.Nil(t, rows)
	assert.False(t, transaction.Committed)
	assert.True(t, transaction.RolledBack)
}

func TestUpdate_BuildsAssignmentsInColumnOrder(t *testing.T) {
	db := &dbtest.FakeDB{
		ExecQueue: []dbtest.ExecResult{{Tag: dbtest.Tag("UPDATE 1")}},
	}
	engine := newEngine(db)

	affected, err := engine.Update(context.Background(), schema.Song, 9, crud.Row{
		"title": "Koster",
		"text":  "verse one",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.Len(t, db.ExecCalls, 1)
	assert.Equal(t,
		"UPDATE core.song SET text = $1, title = $2 WHERE id = $3",
		db.ExecCalls[0].SQL)
	assert.Equal(t, []any{"verse one", "Koster", int64(9)}, db.ExecCalls[0].Args)
}

func TestUpdate_MissingRowReportsZeroAffected(t *testing.T) {
	db := &dbtest.FakeDB{
		ExecQueue: []dbtest.ExecResult{{Tag: dbtest.Tag("UPDATE 0")}},
	}
	engine := newEngine(db)

	affected, err := engine.Update(context.Background(), schema.AgeGroup, 404, crud.Row{"title": "x"})

	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestUpdate_EmptyBodyIsANoOp(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	affected, err := engine.Update(context.Background(), schema.AgeGroup, 1, crud.Row{})

	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Zero(t, db.StatementCount())
}

func TestUpdate_PrimaryKeyNotAssignable(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	_, err := engine.Update(context.Background(), schema.AgeGroup, 1, crud.Row{"id": 5})

	var validation *crud.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"id"}, validation.Fields)
	assert.Zero(t, db.StatementCount())
}

func TestDelete_ReportsOnlyTheIDsThatExisted(t *testing.T) {
	transaction := &dbtest.FakeTx{
		ExecQueue: []dbtest.ExecResult{{Tag: dbtest.Tag("DELETE 1")}},
	}
	db := &dbtest.FakeDB{
		Tx: transaction,
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "title"},
			Rows:   [][]any{{int64(2), "seniors"}},
		}},
	}
	engine := newEngine(db)

	deleted, err := engine.Delete(context.Background(), schema.AgeGroup, crud.ByIDs(1, 2, 3))

	require.NoError(t, err)
	assert.Equal(t, []int64{2}, deleted)
	assert.True(t, transaction.Committed)

	require.Len(t, transaction.ExecCalls, 1)
	assert.Equal(t, "DELETE FROM bank.agegroup WHERE id = ANY($1)", transaction.ExecCalls[0].SQL)
	assert.Equal(t, []any{[]int64{2}}, transaction.ExecCalls[0].Args)
}

func TestDelete_NothingMatchedMeansEmptyResult(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	deleted, err := engine.Delete(context.Background(), schema.AgeGroup, crud.ByID(404))

	require.NoError(t, err)
	assert.NotNil(t, deleted)
	assert.Empty(t, deleted)
	assert.Zero(t, db.BeginCount, "no transaction for an empty selection")
}

func TestDelete_CommitFailureIsPersistenceError(t *testing.T) {
	transaction := &dbtest.FakeTx{
		CommitErr: errors.New("deadlock detected"),
	}
	db := &dbtest.FakeDB{
		Tx: transaction,
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id"},
			Rows:   [][]any{{int64(1)}},
		}},
	}
	engine := newEngine(db)

	deleted, err := engine.Delete(context.Background(), schema.AgeGroup, crud.ByID(1))

	var persistence *crud.PersistenceError
	require.ErrorAs(t, err, &persistence)
	assert.Equal(t, "delete", persistence.Op)
	assert.Nil(t, deleted)
	assert.True(t, transaction.RolledBack)
}

func TestDelete_InvalidFilterPerformsNoIO(t *testing.T) {
	db := &dbtest.FakeDB{}
	engine := newEngine(db)

	_, err := engine.Delete(context.Background(), schema.AgeGroup, crud.ByFilter(crud.Row{"colour": "red"}))

	var validation *crud.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Zero(t, db.StatementCount())
}

func TestInsertThenGetByID_RoundTripsCallerFields(t *testing.T) {
	stamped := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	materialized := dbtest.Result{
		Fields: []string{"id", "title", "created_at", "updated_at"},
		Rows:   [][]any{{int64(5), "juniors", stamped, stamped}},
	}
	db := &dbtest.FakeDB{
		Tx:         &dbtest.FakeTx{QueryQueue: []dbtest.Result{materialized}},
		QueryQueue: []dbtest.Result{materialized},
	}
	engine := newEngine(db)

	inserted, err := engine.Insert(context.Background(), schema.AgeGroup, crud.Row{"title": "juniors"})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	fetched, err := engine.Get(context.Background(), schema.AgeGroup, crud.ByID(crud.ID(inserted[0], "id")))
	require.NoError(t, err)
	require.Len(t, fetched, 1)

	assert.Equal(t, "juniors", crud.String(fetched[0], "title"))
	assert.Equal(t, inserted[0], fetched[0])
	assert.NotZero(t, crud.ID(fetched[0], "id"))
	assert.False(t, crud.Time(fetched[0], "created_at").IsZero())
	assert.False(t, crud.Time(fetched[0], "updated_at").IsZero())
}
