// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package bank

import (
	"context"
	"log/slog"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/validate"
)

const maxTitleLength = 200

// Service orchestrates the piggy bank: games, legends and KTDs tagged by
// age group, plus the tag dictionaries themselves.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Dictionaries

func (service *Service) ListGroups(context context.Context) ([]AgeGroup, error) {
	return service.repo.ListGroups(context)
}

func (service *Service) CreateGroup(context context.Context, title string) (AgeGroup, error) {
	if err := validateTitle(title); err != nil {
		return AgeGroup{}, err
	}
	return service.repo.CreateGroup(context, title)
}

func (service *Service) DeleteGroups(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteGroups(context, ids...)
}

func (service *Service) ListTypes(context context.Context) ([]GameType, error) {
	return service.repo.ListTypes(context)
}

func (service *Service) CreateType(context context.Context, title string) (GameType, error) {
	if err := validateTitle(title); err != nil {
		return GameType{}, err
	}
	return service.repo.CreateType(context, title)
}

func (service *Service) DeleteTypes(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteTypes(context, ids...)
}

// # Games

func (service *Service) ListGames(context context.Context) ([]Game, error) {
	return service.repo.ListGames(context)
}

func (service *Service) GetGame(context context.Context, id int64) (Game, error) {
	return service.repo.GetGame(context, id)
}

func (service *Service) GamesByGroupAndType(context context.Context, groupID, typeID int64) ([]Game, error) {
	return service.repo.GamesByGroupAndType(context, groupID, typeID)
}

// Intersection is the overlap between a game draft and the already stored
// games carrying the same title.
type Intersection struct {
	GroupIDs []int64 `json:"group_ids"`
	TypeIDs  []int64 `json:"type_ids"`
}

// Duplicate applies the collision rule: a draft is a duplicate only when
// both the age-group set and the game-type set overlap an existing game.
func (overlap Intersection) Duplicate() bool {
	return len(overlap.GroupIDs) > 0 && len(overlap.TypeIDs) > 0
}

/*
CheckGameAvailable computes the overlap between a draft and the existing
same-titled games.

Description: Only games colliding on both axes contribute to the result.
A same-titled game for a disjoint audience or of a disjoint type is a
legitimate separate entry and adds nothing, so an empty Intersection means
the slot is free. Callers decide with [Intersection.Duplicate].

Parameters:
  - context: context.Context
  - title: string (Exact game title)
  - groupIDs: []int64 (Age groups of the draft)
  - typeIDs: []int64 (Game types of the draft)

Returns:
  - Intersection: shared group and type ids of the colliding games
  - error: Repository errors only
*/
func (service *Service) CheckGameAvailable(context context.Context, title string, groupIDs, typeIDs []int64) (Intersection, error) {
	existing, err := service.repo.GamesByTitle(context, title)
	if err != nil {
		return Intersection{}, err
	}

	var overlap Intersection
	for _, game := range existing {
		sharedGroups := shared(game.GroupIDs, groupIDs)
		sharedTypes := shared(game.TypeIDs, typeIDs)
		if len(sharedGroups) > 0 && len(sharedTypes) > 0 {
			overlap.GroupIDs = appendMissing(overlap.GroupIDs, sharedGroups)
			overlap.TypeIDs = appendMissing(overlap.TypeIDs, sharedTypes)
		}
	}
	return overlap, nil
}

// CreateGames persists the drafts as one atomic batch after checking each
// against the duplicate rule of [Service.CheckGameAvailable].
func (service *Service) CreateGames(context context.Context, drafts []GameDraft) ([]Game, error) {
	for _, draft := range drafts {
		if err := validateTitle(draft.Title); err != nil {
			return nil, err
		}
	}

	for _, draft := range drafts {
		overlap, err := service.CheckGameAvailable(context, draft.Title, draft.GroupIDs, draft.TypeIDs)
		if err != nil {
			return nil, err
		}
		if overlap.Duplicate() {
			return nil, apperr.Conflict("A game with this title already exists for the chosen groups and types")
		}
	}

	games, err := service.repo.CreateGames(context, drafts)
	if err != nil {
		return nil, err
	}

	service.logger.Info("games_created", slog.Int("count", len(games)))
	return games, nil
}

func (service *Service) DeleteGames(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteGames(context, ids...)
}

// # Legends

func (service *Service) ListLegends(context context.Context) ([]Item, error) {
	return service.repo.ListLegends(context)
}

func (service *Service) LegendsByGroup(context context.Context, groupID int64) ([]Item, error) {
	return service.repo.LegendsByGroup(context, groupID)
}

func (service *Service) CreateLegends(context context.Context, drafts []ItemDraft) ([]Item, error) {
	for _, draft := range drafts {
		if err := validateTitle(draft.Title); err != nil {
			return nil, err
		}
	}
	return service.repo.CreateLegends(context, drafts)
}

func (service *Service) DeleteLegends(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteLegends(context, ids...)
}

// # KTDs

func (service *Service) ListKtds(context context.Context) ([]Item, error) {
	return service.repo.ListKtds(context)
}

func (service *Service) KtdsByGroup(context context.Context, groupID int64) ([]Item, error) {
	return service.repo.KtdsByGroup(context, groupID)
}

func (service *Service) CreateKtds(context context.Context, drafts []ItemDraft) ([]Item, error) {
	for _, draft := range drafts {
		if err := validateTitle(draft.Title); err != nil {
			return nil, err
		}
	}
	return service.repo.CreateKtds(context, drafts)
}

func (service *Service) DeleteKtds(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteKtds(context, ids...)
}

func validateTitle(title string) error {
	validator := &validate.Validator{}
	validator.
		Required("title", title).
		MaxLen("title", title, maxTitleLength)
	return validator.Err()
}

func intersects(a, b []int64) bool {
	return len(shared(a, b)) > 0
}

// shared returns the ids present in both sets, in the order of a.
func shared(a, b []int64) []int64 {
	var common []int64
	for _, x := range a {
		for _, y := range b {
			if x == y {
				common = append(common, x)
				break
			}
		}
	}
	return common
}

func appendMissing(ids, extra []int64) []int64 {
	for _, candidate := range extra {
		seen := false
		for _, id := range ids {
			if id == candidate {
				seen = true
				break
			}
		}
		if !seen {
			ids = append(ids, candidate)
		}
	}
	return ids
}
