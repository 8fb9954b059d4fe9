// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
)

type fakeRepository struct {
	events []Event
	nextID int64

	// lastEndAt records what the service asked to persist as the end date.
	lastEndAt time.Time
}

func (f *fakeRepository) ListEvents(context.Context) ([]Event, error) { return f.events, nil }

func (f *fakeRepository) GetEvent(_ context.Context, id int64) (Event, error) {
	for _, event := range f.events {
		if event.ID == id {
			return event, nil
		}
	}
	return Event{}, dberr.ErrNotFound
}

func (f *fakeRepository) ActualEvents(_ context.Context, now time.Time) ([]Event, error) {
	actual := make([]Event, 0)
	for _, event := range f.events {
		if !event.EndAt.Before(now) {
			actual = append(actual, event)
		}
	}
	return actual, nil
}

func (f *fakeRepository) CreateEvent(_ context.Context, draft Draft, endAt time.Time) (Event, error) {
	f.nextID++
	f.lastEndAt = endAt
	event := Event{
		ID:           f.nextID,
		Title:        draft.Title,
		StartAt:      draft.StartAt,
		DurationDays: draft.DurationDays,
		EndAt:        endAt,
		SongIDs:      draft.SongIDs,
	}
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeRepository) DeleteEvents(_ context.Context, ids ...int64) ([]int64, error) {
	return ids, nil
}

func newTestService(repo Repository, clock clockwork.Clock) *Service {
	return NewService(repo, clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateEvent_DerivesEndDateFromDuration(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo, clockwork.NewFakeClock())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	event, err := service.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      start,
		DurationDays: 5,
	})

	require.NoError(t, err)
	want := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, event.EndAt)
	assert.Equal(t, want, repo.lastEndAt, "derived end date is what gets persisted")
}

func TestCreateEvent_RejectsNonPositiveDuration(t *testing.T) {
	service := newTestService(&fakeRepository{}, clockwork.NewFakeClock())

	_, err := service.CreateEvent(context.Background(), Draft{
		Title:        "Festival",
		StartAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationDays: 0,
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestActualEvents_UsesInjectedClock(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{events: []Event{
		{ID: 1, Title: "Past", EndAt: now.AddDate(0, 0, -1)},
		{ID: 2, Title: "Running", EndAt: now.AddDate(0, 0, 1)},
	}}
	service := newTestService(repo, clockwork.NewFakeClockAt(now))

	events, err := service.ActualEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Running", events[0].Title)
}
