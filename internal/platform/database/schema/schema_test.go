// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// brokenTable is a deliberately misconfigured descriptor for the defensive
// SchemaError paths.
type brokenTable struct {
	keys []string
}

func (t brokenTable) TableName() string     { return "test.broken" }
func (t brokenTable) PrimaryKeys() []string { return t.keys }
func (t brokenTable) Columns() []string     { return []string{"id", "name"} }
func (t brokenTable) Writable() []string    { return []string{"name"} }

func TestPrimaryKeyOf(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		want    string
		wantErr bool
	}{
		{"single_key", []string{"id"}, "id", false},
		{"no_keys", nil, "", true},
		{"composite_keys", []string{"a_id", "b_id"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := schema.PrimaryKeyOf(brokenTable{keys: tt.keys})

			if tt.wantErr {
				var schemaErr *schema.SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Equal(t, "test.broken", schemaErr.Table)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestPrimaryKeyOf_RealDescriptors(t *testing.T) {
	descriptors := []schema.Descriptor{
		schema.Song, schema.SongCategory, schema.SongBook,
		schema.AgeGroup, schema.GameType, schema.Game, schema.GameGroup, schema.GameTypeLink,
		schema.Legend, schema.LegendGroup, schema.Ktd, schema.KtdGroup,
		schema.SongEvent, schema.SongEventSong,
		schema.Member, schema.Review, schema.Account, schema.Chapter,
	}

	for _, d := range descriptors {
		key, err := schema.PrimaryKeyOf(d)
		require.NoError(t, err, d.TableName())
		assert.Equal(t, "id", key, d.TableName())
	}
}

func TestInvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		body    map[string]any
		want    []string
	}{
		{
			"all_valid",
			schema.Game.Writable(),
			map[string]any{"title": "Tag", "description": "outdoor"},
			nil,
		},
		{
			"unknown_key",
			schema.Game.Writable(),
			map[string]any{"title": "Tag", "titel": "typo"},
			[]string{"titel"},
		},
		{
			"server_stamped_rejected",
			schema.Game.Writable(),
			map[string]any{"created_at": "2024-01-01", "updated_at": "2024-01-01"},
			[]string{"created_at", "updated_at"},
		},
		{
			"primary_key_not_writable",
			schema.Song.Writable(),
			map[string]any{"id": 7, "title": "Koster"},
			[]string{"id"},
		},
		{
			"empty_body",
			schema.Song.Writable(),
			nil,
			nil,
		},
		{
			"filterable_includes_pk_and_timestamps",
			schema.Song.Columns(),
			map[string]any{"id": 7, "created_at": "x"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schema.InvalidFields(tt.allowed, tt.body)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Writable must never leak the primary key or the server-stamped timestamps,
// and every writable column must be selectable.
func TestWritableSubsetOfColumns(t *testing.T) {
	descriptors := []schema.Descriptor{
		schema.Song, schema.SongCategory, schema.SongBook,
		schema.AgeGroup, schema.GameType, schema.Game, schema.GameGroup, schema.GameTypeLink,
		schema.Legend, schema.LegendGroup, schema.Ktd, schema.KtdGroup,
		schema.SongEvent, schema.SongEventSong,
		schema.Member, schema.Review, schema.Account, schema.Chapter,
	}

	for _, d := range descriptors {
		all := make(map[string]struct{})
		for _, column := range d.Columns() {
			all[column] = struct{}{}
		}

		for _, column := range d.Writable() {
			_, ok := all[column]
			assert.True(t, ok, "%s: writable column %q missing from Columns()", d.TableName(), column)
			assert.NotEqual(t, "id", column, d.TableName())
			assert.NotEqual(t, "created_at", column, d.TableName())
			assert.NotEqual(t, "updated_at", column, d.TableName())
		}
	}
}
