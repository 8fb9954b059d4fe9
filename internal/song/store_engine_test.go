// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package song

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/dbtest"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
)

func newEngineRepository(db *dbtest.FakeDB) *EngineRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngineRepository(crud.NewEngine(db, logger))
}

func TestGetSong_ConvertsRowToStruct(t *testing.T) {
	created := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	db := &dbtest.FakeDB{
		QueryQueue: []dbtest.Result{{
			Fields: []string{"id", "title", "title_search", "text", "file_path", "category_id", "created_at", "updated_at"},
			Rows: [][]any{
				{int64(5), "Koster", "koster", "verse", nil, int64(2), created, created},
			},
		}},
	}
	repository := newEngineRepository(db)

	found, err := repository.GetSong(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(5), found.ID)
	assert.Equal(t, "Koster", found.Title)
	assert.Nil(t, found.FilePath, "NULL file_path maps to nil")
	require.NotNil(t, found.CategoryID)
	assert.Equal(t, int64(2), *found.CategoryID)
	assert.Equal(t, created, found.CreatedAt)
}

func TestGetSong_MissingRowIsNotFound(t *testing.T) {
	repository := newEngineRepository(&dbtest.FakeDB{})

	_, err := repository.GetSong(context.Background(), 404)

	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestSongsByCategory_FiltersOnCategoryColumn(t *testing.T) {
	db := &dbtest.FakeDB{}
	repository := newEngineRepository(db)

	_, err := repository.SongsByCategory(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, db.QueryCalls, 1)
	assert.Contains(t, db.QueryCalls[0].SQL, "FROM core.song WHERE category_id = $1")
	assert.Equal(t, []any{int64(3)}, db.QueryCalls[0].Args)
}

func TestUpdateSong_ZeroAffectedIsNotFound(t *testing.T) {
	db := &dbtest.FakeDB{
		ExecQueue: []dbtest.ExecResult{{Tag: dbtest.Tag("UPDATE 0")}},
	}
	repository := newEngineRepository(db)

	err := repository.UpdateSong(context.Background(), 404, Changes{Text: strPtr("x")})

	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func strPtr(s string) *string { return &s }
