// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package book

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/pkg/pointer"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	chapters []Chapter
	nextID   int64
}

func (f *fakeRepository) ListChapters(context.Context) ([]Chapter, error) { return f.chapters, nil }

func (f *fakeRepository) GetChapter(_ context.Context, id int64) (Chapter, error) {
	for _, c := range f.chapters {
		if c.ID == id {
			return c, nil
		}
	}
	return Chapter{}, dberr.ErrNotFound
}

func (f *fakeRepository) ChildrenOf(_ context.Context, parentID int64) ([]Chapter, error) {
	matched := make([]Chapter, 0)
	for _, c := range f.chapters {
		if c.ParentID != nil && *c.ParentID == parentID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (f *fakeRepository) CreateChapter(_ context.Context, title string, parentID *int64, filePath *string) (Chapter, error) {
	f.nextID++
	chapter := Chapter{ID: f.nextID, Title: title, ParentID: parentID, FilePath: filePath}
	f.chapters = append(f.chapters, chapter)
	return chapter, nil
}

func (f *fakeRepository) UpdateChapter(_ context.Context, id int64, changes Changes) error {
	for i := range f.chapters {
		if f.chapters[i].ID != id {
			continue
		}
		if changes.Title != nil {
			f.chapters[i].Title = *changes.Title
		}
		if changes.ParentID != nil {
			f.chapters[i].ParentID = changes.ParentID
		}
		if changes.FilePath != nil {
			f.chapters[i].FilePath = changes.FilePath
		}
		return nil
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) DeleteChapters(_ context.Context, ids ...int64) ([]int64, error) {
	deleted := make([]int64, 0)
	kept := f.chapters[:0]
	for _, c := range f.chapters {
		removed := false
		for _, id := range ids {
			if c.ID == id {
				removed = true
				break
			}
		}
		if removed {
			deleted = append(deleted, c.ID)
		} else {
			kept = append(kept, c)
		}
	}
	f.chapters = kept
	return deleted, nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTree_NestsChildrenUnderParents(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{
		{ID: 1, Title: "Ice Breakers"},
		{ID: 2, Title: "First Day", ParentID: pointer.To(int64(1))},
		{ID: 3, Title: "Evening Circle", ParentID: pointer.To(int64(1))},
		{ID: 4, Title: "Safety"},
	}}

	tree, err := newTestService(repo).Tree(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 2)
	assert.Equal(t, "Ice Breakers", tree[0].Title)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "First Day", tree[0].Children[0].Title)
	assert.Equal(t, "Evening Circle", tree[0].Children[1].Title)
	assert.Equal(t, "Safety", tree[1].Title)
	assert.Empty(t, tree[1].Children)
}

func TestTree_OrphanChapterBecomesRoot(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{
		{ID: 5, Title: "Stranded", ParentID: pointer.To(int64(99))},
	}}

	tree, err := newTestService(repo).Tree(context.Background())
	require.NoError(t, err)

	require.Len(t, tree, 1)
	assert.Equal(t, "Stranded", tree[0].Title)
}

func TestCreateChapter_RejectsBlankTitle(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).CreateChapter(context.Background(), "   ", nil, nil)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, repo.chapters)
}

func TestCreateChapter_RejectsUnknownParent(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).CreateChapter(context.Background(), "Quests", pointer.To(int64(42)), nil)

	require.ErrorIs(t, err, dberr.ErrNotFound)
	assert.Empty(t, repo.chapters)
}

func TestMoveChapter_RejectsSelfParenting(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{{ID: 1, Title: "Root"}}}

	err := newTestService(repo).MoveChapter(context.Background(), 1, 1)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
}

func TestMoveChapter_RejectsCycle(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{
		{ID: 1, Title: "Root"},
		{ID: 2, Title: "Middle", ParentID: pointer.To(int64(1))},
		{ID: 3, Title: "Leaf", ParentID: pointer.To(int64(2))},
	}}

	// Hanging the root under its own grandchild would close a loop.
	err := newTestService(repo).MoveChapter(context.Background(), 1, 3)

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNPROCESSABLE", appError.Code)
}

func TestMoveChapter_ReparentsChapter(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{
		{ID: 1, Title: "Root"},
		{ID: 2, Title: "Other Root"},
		{ID: 3, Title: "Leaf", ParentID: pointer.To(int64(1))},
	}}

	err := newTestService(repo).MoveChapter(context.Background(), 3, 2)

	require.NoError(t, err)
	moved, err := repo.GetChapter(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, int64(2), *moved.ParentID)
}

func TestUpdateChapter_RejectsBlankTitle(t *testing.T) {
	repo := &fakeRepository{chapters: []Chapter{{ID: 1, Title: "Root"}}}

	_, err := newTestService(repo).UpdateChapter(context.Background(), 1, Changes{
		Title: pointer.To(""),
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Equal(t, "Root", repo.chapters[0].Title)
}
