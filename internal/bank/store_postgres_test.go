// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package bank

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/dbtest"
)

func newRepository(db *dbtest.FakeDB) *PostgresRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresRepository(db, crud.NewEngine(db, logger))
}

func TestCreateGames_WritesGameAndJunctionsInOneTransaction(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{{int64(7), nil, nil}},
		}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	games, err := repository.CreateGames(context.Background(), []GameDraft{{
		ItemDraft: ItemDraft{Title: "Morskoy boy", Description: "desc", GroupIDs: []int64{1, 2}},
		TypeIDs:   []int64{10},
	}})

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(7), games[0].ID)
	assert.Equal(t, []int64{1, 2}, games[0].GroupIDs)

	assert.Equal(t, 1, db.BeginCount)
	assert.True(t, transaction.Committed)
	require.Len(t, transaction.ExecCalls, 3, "two group links plus one type link")
	assert.Contains(t, transaction.ExecCalls[0].SQL, "INSERT INTO bank.gamegroup")
	assert.Equal(t, []any{int64(7), int64(1)}, transaction.ExecCalls[0].Args)
	assert.Contains(t, transaction.ExecCalls[2].SQL, "INSERT INTO bank.gametypelink")
}

func TestCreateGames_LinkFailureRollsBackEverything(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{{int64(7), nil, nil}},
		}},
		ExecQueue: []dbtest.ExecResult{
			{Err: errors.New("foreign key violation")},
		},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	games, err := repository.CreateGames(context.Background(), []GameDraft{{
		ItemDraft: ItemDraft{Title: "Morskoy boy", GroupIDs: []int64{99}},
		TypeIDs:   []int64{10},
	}})

	require.Error(t, err)
	assert.Nil(t, games)
	assert.False(t, transaction.Committed)
	assert.True(t, transaction.RolledBack)
}

func TestGamesByGroupAndType_RequiresBothTags(t *testing.T) {
	db := &dbtest.FakeDB{}
	repository := newRepository(db)

	_, err := repository.GamesByGroupAndType(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, db.QueryCalls, 1)
	query := db.QueryCalls[0].SQL
	assert.Contains(t, query, "EXISTS (SELECT 1 FROM bank.gamegroup")
	assert.Contains(t, query, "EXISTS (SELECT 1 FROM bank.gametypelink")
	assert.Equal(t, []any{int64(1), int64(10)}, db.QueryCalls[0].Args)
}

func TestListLegends_AttachesGroupIDs(t *testing.T) {
	db := &dbtest.FakeDB{
		QueryQueue: []dbtest.Result{
			{
				Fields: []string{"id", "title", "description", "file_path", "created_at", "updated_at"},
				Rows:   [][]any{{int64(1), "Legenda o kostre", "text", nil, nil, nil}},
			},
			{
				Fields: []string{"legend_id", "group_id"},
				Rows:   [][]any{{int64(1), int64(3)}, {int64(1), int64(4)}},
			},
		},
	}
	repository := newRepository(db)

	legends, err := repository.ListLegends(context.Background())

	require.NoError(t, err)
	require.Len(t, legends, 1)
	assert.Equal(t, []int64{3, 4}, legends[0].GroupIDs)
}

func TestListLegends_EmptyCollectionSkipsLinkQuery(t *testing.T) {
	db := &dbtest.FakeDB{}
	repository := newRepository(db)

	legends, err := repository.ListLegends(context.Background())

	require.NoError(t, err)
	assert.Empty(t, legends)
	assert.Len(t, db.QueryCalls, 1, "no junction lookup for an empty list")
}

func TestCreateGames_ClosesEachInsertResultSet(t *testing.T) {
	returning := dbtest.Result{
		Fields: []string{"id", "created_at", "updated_at"},
		Rows:   [][]any{{int64(7), nil, nil}},
	}
	transaction := &dbtest.FakeTx{QueryQueue: []dbtest.Result{
		returning,
		{Fields: returning.Fields, Rows: [][]any{{int64(8), nil, nil}}},
	}}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	_, err := repository.CreateGames(context.Background(), []GameDraft{
		{ItemDraft: ItemDraft{Title: "Morskoy boy"}},
		{ItemDraft: ItemDraft{Title: "Tikhie igry"}},
	})

	require.NoError(t, err)
	require.Len(t, transaction.Issued, 2)
	for _, rows := range transaction.Issued {
		assert.True(t, rows.Closed(), "result set left open inside the transaction")
	}
}

func TestCreateGames_EmptyReturningIsErrorNotPanic(t *testing.T) {
	transaction := &dbtest.FakeTx{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "created_at", "updated_at"},
			Rows:   [][]any{},
		}},
	}
	db := &dbtest.FakeDB{Tx: transaction}
	repository := newRepository(db)

	games, err := repository.CreateGames(context.Background(), []GameDraft{{
		ItemDraft: ItemDraft{Title: "Morskoy boy"},
	}})

	require.Error(t, err)
	assert.Nil(t, games)
	assert.False(t, transaction.Committed)
	assert.True(t, transaction.RolledBack)
}
