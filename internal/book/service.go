// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/validate"
)

const maxTitleLength = 200

// Service orchestrates the methodical book chapter tree.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Tree returns every chapter with children nested under their parents.
// Chapters whose parent is missing are treated as top-level.
func (service *Service) Tree(context context.Context) ([]*Node, error) {
	chapters, err := service.repo.ListChapters(context)
	if err != nil {
		return nil, err
	}

	nodes := make(map[int64]*Node, len(chapters))
	for _, chapter := range chapters {
		nodes[chapter.ID] = &Node{Chapter: chapter, Children: make([]*Node, 0)}
	}

	roots := make([]*Node, 0)
	for _, chapter := range chapters {
		node := nodes[chapter.ID]
		if chapter.ParentID != nil {
			if parent, ok := nodes[*chapter.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}

func (service *Service) GetChapter(context context.Context, id int64) (Chapter, error) {
	return service.repo.GetChapter(context, id)
}

func (service *Service) ChildrenOf(context context.Context, parentID int64) ([]Chapter, error) {
	if _, err := service.repo.GetChapter(context, parentID); err != nil {
		return nil, err
	}
	return service.repo.ChildrenOf(context, parentID)
}

func (service *Service) CreateChapter(context context.Context, title string, parentID *int64, filePath *string) (Chapter, error) {
	validator := &validate.Validator{}
	validator.
		Required("title", title).
		MaxLen("title", title, maxTitleLength)
	if err := validator.Err(); err != nil {
		return Chapter{}, err
	}

	if parentID != nil {
		if _, err := service.repo.GetChapter(context, *parentID); err != nil {
			return Chapter{}, err
		}
	}

	return service.repo.CreateChapter(context, title, parentID, filePath)
}

// MoveChapter reparents a chapter. Moving a chapter under itself is
// rejected; deeper cycles are caught by walking the new ancestry.
func (service *Service) MoveChapter(context context.Context, id, newParentID int64) error {
	if id == newParentID {
		return apperr.Unprocessable("A chapter cannot be its own parent")
	}

	// Walk up from the new parent; hitting id would close a cycle.
	current := newParentID
	for {
		chapter, err := service.repo.GetChapter(context, current)
		if err != nil {
			return err
		}
		if chapter.ParentID == nil {
			break
		}
		if *chapter.ParentID == id {
			return apperr.Unprocessable("Moving the chapter here would create a cycle")
		}
		current = *chapter.ParentID
	}

	return service.repo.UpdateChapter(context, id, Changes{ParentID: &newParentID})
}

func (service *Service) UpdateChapter(context context.Context, id int64, changes Changes) (Chapter, error) {
	if changes.Title != nil {
		validator := &validate.Validator{}
		validator.
			Required("title", *changes.Title).
			MaxLen("title", *changes.Title, maxTitleLength)
		if err := validator.Err(); err != nil {
			return Chapter{}, err
		}
	}

	if err := service.repo.UpdateChapter(context, id, changes); err != nil {
		return Chapter{}, err
	}
	return service.repo.GetChapter(context, id)
}

func (service *Service) DeleteChapters(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := service.repo.DeleteChapters(context, ids...)
	if err != nil {
		return nil, err
	}

	service.logger.Info("chapters_deleted", slog.Int("count", len(deleted)))
	return deleted, nil
}
