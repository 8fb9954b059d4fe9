// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package bank

import (
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// AgeGroup is the camp-shift audience bucket piggy-bank content is tagged
// with (e.g. "juniors", "seniors").
type AgeGroup struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// GameType classifies games (e.g. "indoor", "running", "quiet").
type GameType struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Game is a piggy-bank game tagged with age groups and game types.
type Game struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	GroupIDs    []int64   `json:"group_ids"`
	TypeIDs     []int64   `json:"type_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Item is a piggy-bank entry tagged with age groups only. Legends and
// KTDs share this shape.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	GroupIDs    []int64   `json:"group_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDraft carries the client-settable fields of a new legend or KTD.
type ItemDraft struct {
	Title       string
	Description string
	FilePath    *string
	GroupIDs    []int64
}

// GameDraft carries the client-settable fields of a new game.
type GameDraft struct {
	ItemDraft
	TypeIDs []int64
}

// # Row Conversion

func ageGroupFromRow(row crud.Row) AgeGroup {
	return AgeGroup{
		ID:        crud.ID(row, schema.AgeGroup.ID),
		Title:     crud.String(row, schema.AgeGroup.Title),
		CreatedAt: crud.Time(row, schema.AgeGroup.CreatedAt),
		UpdatedAt: crud.Time(row, schema.AgeGroup.UpdatedAt),
	}
}

func gameTypeFromRow(row crud.Row) GameType {
	return GameType{
		ID:        crud.ID(row, schema.GameType.ID),
		Title:     crud.String(row, schema.GameType.Title),
		CreatedAt: crud.Time(row, schema.GameType.CreatedAt),
		UpdatedAt: crud.Time(row, schema.GameType.UpdatedAt),
	}
}

func gameFromRow(row crud.Row) Game {
	return Game{
		ID:          crud.ID(row, schema.Game.ID),
		Title:       crud.String(row, schema.Game.Title),
		Description: crud.String(row, schema.Game.Description),
		FilePath:    crud.StringPtr(row, schema.Game.FilePath),
		GroupIDs:    make([]int64, 0),
		TypeIDs:     make([]int64, 0),
		CreatedAt:   crud.Time(row, schema.Game.CreatedAt),
		UpdatedAt:   crud.Time(row, schema.Game.UpdatedAt),
	}
}

// itemFromRow works for both legends and KTDs; the two tables share
// their column layout.
func itemFromRow(row crud.Row) Item {
	return Item{
		ID:          crud.ID(row, "id"),
		Title:       crud.String(row, "title"),
		Description: crud.String(row, "description"),
		FilePath:    crud.StringPtr(row, "file_path"),
		GroupIDs:    make([]int64, 0),
		CreatedAt:   crud.Time(row, "created_at"),
		UpdatedAt:   crud.Time(row, "updated_at"),
	}
}
