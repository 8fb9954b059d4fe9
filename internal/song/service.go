// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package song

import (
	"context"
	"log/slog"
	"sort"

	"github.com/azhdanov/zarnitsa/internal/platform/validate"
	"github.com/azhdanov/zarnitsa/pkg/fuzzy"
)

// searchThreshold is the minimum 0..100 similarity for a song title to
// count as a direct lookup hit. Stricter than the cross-catalog search:
// this endpoint answers "find THE song", not "find anything similar".
const searchThreshold = 75

// maxTitleLength bounds song and category titles.
const maxTitleLength = 200

// Service orchestrates the song catalog: songs, their hierarchical
// categories and downloadable songbooks.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Song Lookups

func (service *Service) ListSongs(context context.Context) ([]Song, error) {
	return service.repo.ListSongs(context)
}

func (service *Service) GetSong(context context.Context, id int64) (Song, error) {
	return service.repo.GetSong(context, id)
}

func (service *Service) SongsByCategory(context context.Context, categoryID int64) ([]Song, error) {
	if _, err := service.repo.GetCategory(context, categoryID); err != nil {
		return nil, err
	}
	return service.repo.SongsByCategory(context, categoryID)
}

/*
SearchByTitle finds songs whose title approximately matches query.

Description: The query is normalized the same way stored titles are
(lowercase ASCII, punctuation collapsed), then scored with Jaro-Winkler
similarity. Hits are ordered best match first; ties break by id.

Parameters:
  - context: context.Context
  - query: string (Free-form title as typed by a camper)

Returns:
  - []Song: Matching songs, best first; empty when nothing clears the threshold
  - error: Repository errors only; an empty result is not an error
*/
func (service *Service) SearchByTitle(context context.Context, query string) ([]Song, error) {
	songs, err := service.repo.ListSongs(context)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeTitle(query)

	type scored struct {
		song  Song
		score int
	}
	hits := make([]scored, 0)

	for _, candidate := range songs {
		score := fuzzy.Score(normalized, candidate.TitleSearch)
		if score >= searchThreshold {
			hits = append(hits, scored{song: candidate, score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].song.ID < hits[j].song.ID
	})

	result := make([]Song, len(hits))
	for i, hit := range hits {
		result[i] = hit.song
	}
	return result, nil
}

// # Song Mutations

// CreateSongs persists the given drafts as one atomic batch. The
// normalized search title is derived here; clients never supply it.
func (service *Service) CreateSongs(context context.Context, drafts []Draft) ([]Song, error) {
	validator := &validate.Validator{}
	for _, draft := range drafts {
		validator.
			Required("title", draft.Title).
			MaxLen("title", draft.Title, maxTitleLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	songs, err := service.repo.CreateSongs(context, drafts)
	if err != nil {
		return nil, err
	}

	service.logger.Info("songs_created", slog.Int("count", len(songs)))
	return songs, nil
}

func (service *Service) UpdateSong(context context.Context, id int64, changes Changes) (Song, error) {
	validator := &validate.Validator{}
	if changes.Title != nil {
		validator.
			Required("title", *changes.Title).
			MaxLen("title", *changes.Title, maxTitleLength)
	}
	if err := validator.Err(); err != nil {
		return Song{}, err
	}

	if err := service.repo.UpdateSong(context, id, changes); err != nil {
		return Song{}, err
	}
	return service.repo.GetSong(context, id)
}

// DeleteSongs removes the given songs and reports the ids that actually
// existed. Requesting unknown ids is not an error.
func (service *Service) DeleteSongs(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := service.repo.DeleteSongs(context, ids...)
	if err != nil {
		return nil, err
	}

	service.logger.Info("songs_deleted", slog.Int("count", len(deleted)))
	return deleted, nil
}

// # Categories

// ListCategoryTree returns every category with children nested under
// their parents. Categories whose parent is missing are treated as roots.
func (service *Service) ListCategoryTree(context context.Context) ([]*CategoryNode, error) {
	categories, err := service.repo.ListCategories(context)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

func (service *Service) CreateCategory(context context.Context, name string, parentID *int64) (Category, error) {
	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxTitleLength)
	if err := validator.Err(); err != nil {
		return Category{}, err
	}

	if parentID != nil {
		if _, err := service.repo.GetCategory(context, *parentID); err != nil {
			return Category{}, err
		}
	}

	return service.repo.CreateCategory(context, name, parentID)
}

func (service *Service) RenameCategory(context context.Context, id int64, name string) error {
	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxTitleLength)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.repo.RenameCategory(context, id, name)
}

func (service *Service) DeleteCategories(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteCategories(context, ids...)
}

// # Songbooks

func (service *Service) ListBooks(context context.Context) ([]Book, error) {
	return service.repo.ListBooks(context)
}

func (service *Service) CreateBook(context context.Context, name string, filePath *string) (Book, error) {
	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxTitleLength)
	if err := validator.Err(); err != nil {
		return Book{}, err
	}

	return service.repo.CreateBook(context, name, filePath)
}

func (service *Service) DeleteBooks(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteBooks(context, ids...)
}

// CategoryNode is a category with its nested children, as served to the
// catalog browser.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

func buildCategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(categories))
	for _, category := range categories {
		nodes[category.ID] = &CategoryNode{Category: category, Children: make([]*CategoryNode, 0)}
	}

	roots := make([]*CategoryNode, 0)
	for _, category := range categories {
		node := nodes[category.ID]
		if category.ParentID != nil {
			if parent, ok := nodes[*category.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
