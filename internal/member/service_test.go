// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package member

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/pkg/pagination"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	members []Member
	reviews []Review
	nextID  int64
}

func (f *fakeRepository) ListMembers(context.Context) ([]Member, error) { return f.members, nil }

func (f *fakeRepository) GetMember(_ context.Context, id int64) (Member, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return Member{}, dberr.ErrNotFound
}

func (f *fakeRepository) MemberByTelegramID(_ context.Context, telegramID int64) (Member, bool, error) {
	for _, m := range f.members {
		if m.TelegramID == telegramID {
			return m, true, nil
		}
	}
	return Member{}, false, nil
}

func (f *fakeRepository) RegisterMember(_ context.Context, draft Draft) (Member, error) {
	f.nextID++
	registered := Member{
		ID:         f.nextID,
		TelegramID: draft.TelegramID,
		FirstName:  draft.FirstName,
		LastName:   draft.LastName,
		Nickname:   draft.Nickname,
	}
	f.members = append(f.members, registered)
	return registered, nil
}

func (f *fakeRepository) UpdateMember(_ context.Context, id int64, changes Changes) error {
	for i := range f.members {
		if f.members[i].ID != id {
			continue
		}
		if changes.FirstName != nil {
			f.members[i].FirstName = *changes.FirstName
		}
		if changes.LastName != nil {
			f.members[i].LastName = changes.LastName
		}
		if changes.Nickname != nil {
			f.members[i].Nickname = changes.Nickname
		}
		return nil
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) DeleteMembers(_ context.Context, ids ...int64) ([]int64, error) {
	deleted := make([]int64, 0)
	kept := f.members[:0]
	for _, m := range f.members {
		removed := false
		for _, id := range ids {
			if m.ID == id {
				removed = true
				break
			}
		}
		if removed {
			deleted = append(deleted, m.ID)
		} else {
			kept = append(kept, m)
		}
	}
	f.members = kept
	return deleted, nil
}

func (f *fakeRepository) ListReviews(context.Context) ([]Review, error) { return f.reviews, nil }

func (f *fakeRepository) PendingReviews(context.Context) ([]Review, error) {
	pending := make([]Review, 0)
	for _, r := range f.reviews {
		if !r.Looked {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (f *fakeRepository) ReviewsByMember(_ context.Context, memberID int64) ([]Review, error) {
	matched := make([]Review, 0)
	for _, r := range f.reviews {
		if r.MemberID == memberID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeRepository) CreateReview(_ context.Context, memberID int64, text string) (Review, error) {
	f.nextID++
	review := Review{ID: f.nextID, MemberID: memberID, Text: text}
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeRepository) MarkReviewLooked(_ context.Context, id int64) error {
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews[i].Looked = true
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeRepository) DeleteReviews(_ context.Context, ids ...int64) ([]int64, error) {
	deleted := make([]int64, 0)
	kept := f.reviews[:0]
	for _, r := range f.reviews {
		removed := false
		for _, id := range ids {
			if r.ID == id {
				removed = true
				break
			}
		}
		if removed {
			deleted = append(deleted, r.ID)
		} else {
			kept = append(kept, r)
		}
	}
	f.reviews = kept
	return deleted, nil
}

func newTestService(repo *fakeRepository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegister_CreatesMember(t *testing.T) {
	repo := &fakeRepository{}

	registered, err := newTestService(repo).Register(context.Background(), Draft{
		TelegramID: 123456789,
		FirstName:  "Alyosha",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(123456789), registered.TelegramID)
	assert.Len(t, repo.members, 1)
}

func TestRegister_DuplicateTelegramIDConflicts(t *testing.T) {
	repo := &fakeRepository{members: []Member{
		{ID: 1, TelegramID: 123456789, FirstName: "Alyosha"},
	}}

	_, err := newTestService(repo).Register(context.Background(), Draft{
		TelegramID: 123456789,
		FirstName:  "Impostor",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "CONFLICT", appError.Code)
	assert.Len(t, repo.members, 1)
}

func TestRegister_RejectsNonPositiveTelegramID(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).Register(context.Background(), Draft{
		TelegramID: 0,
		FirstName:  "Ghost",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, repo.members)
}

func TestLeaveReview_StoresUnlookedReview(t *testing.T) {
	repo := &fakeRepository{members: []Member{{ID: 1, TelegramID: 5, FirstName: "Alyosha"}}}

	review, err := newTestService(repo).LeaveReview(context.Background(), 1, "Great shift!")

	require.NoError(t, err)
	assert.False(t, review.Looked)
	assert.Equal(t, int64(1), review.MemberID)
}

func TestLeaveReview_UnknownMemberIsNotFound(t *testing.T) {
	repo := &fakeRepository{}

	_, err := newTestService(repo).LeaveReview(context.Background(), 42, "Hello?")

	require.ErrorIs(t, err, dberr.ErrNotFound)
	assert.Empty(t, repo.reviews)
}

func TestMarkLooked_RemovesReviewFromPending(t *testing.T) {
	repo := &fakeRepository{reviews: []Review{
		{ID: 1, MemberID: 1, Text: "first"},
		{ID: 2, MemberID: 1, Text: "second"},
	}}
	service := newTestService(repo)

	require.NoError(t, service.MarkLooked(context.Background(), 1))

	pending, err := service.PendingReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].ID)
}

func TestMembersPage_CutsRosterIntoPages(t *testing.T) {
	repo := &fakeRepository{}
	for i := int64(1); i <= 5; i++ {
		repo.members = append(repo.members, Member{ID: i, TelegramID: 1000 + i, FirstName: "Member"})
	}
	service := newTestService(repo)

	page, meta, err := service.MembersPage(context.Background(), pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)

	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)
	assert.Equal(t, int64(4), page[1].ID)
	assert.Equal(t, 5, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestMembersPage_PastTheEndIsEmpty(t *testing.T) {
	repo := &fakeRepository{members: []Member{{ID: 1, TelegramID: 1001, FirstName: "Only"}}}

	page, meta, err := newTestService(repo).MembersPage(context.Background(), pagination.Params{Page: 9, Limit: 20})
	require.NoError(t, err)

	assert.Empty(t, page)
	assert.Equal(t, 1, meta.Total)
}
