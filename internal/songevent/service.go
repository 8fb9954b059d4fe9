// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/azhdanov/zarnitsa/internal/platform/validate"
)

const maxTitleLength = 200

// Service orchestrates song events. It carries an injectable clock so
// "still running" can be tested without waiting for the calendar.
type Service struct {
	repo   Repository
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, clock clockwork.Clock, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: clock, logger: logger}
}

func (service *Service) ListEvents(context context.Context) ([]Event, error) {
	return service.repo.ListEvents(context)
}

func (service *Service) GetEvent(context context.Context, id int64) (Event, error) {
	return service.repo.GetEvent(context, id)
}

// ActualEvents returns the events whose end date has not yet passed.
func (service *Service) ActualEvents(context context.Context) ([]Event, error) {
	return service.repo.ActualEvents(context, service.clock.Now())
}

/*
CreateEvent schedules a new song event with its program.

Description: The event end is always derived as start plus duration in
days. Any end date supplied by the client is discarded; duration is the
single source of truth for how long an event runs.

Parameters:
  - context: context.Context
  - draft: Draft (Title, start, duration in days, program song ids)

Returns:
  - Event: Created event with the derived end date
  - error: Validation or storage errors
*/
func (service *Service) CreateEvent(context context.Context, draft Draft) (Event, error) {
	validator := &validate.Validator{}
	validator.
		Required("title", draft.Title).
		MaxLen("title", draft.Title, maxTitleLength).
		Custom("start_dt", draft.StartAt.IsZero(), "This field is required").
		Custom("duration_days", draft.DurationDays <= 0, "Must be a positive number of days")
	if err := validator.Err(); err != nil {
		return Event{}, err
	}

	event, err := service.repo.CreateEvent(context, draft, EndOf(draft.StartAt, draft.DurationDays))
	if err != nil {
		return Event{}, err
	}

	service.logger.Info("song_event_created",
		slog.Int64("event_id", event.ID),
		slog.Time("end_dt", event.EndAt),
	)
	return event, nil
}

func (service *Service) DeleteEvents(context context.Context, ids ...int64) ([]int64, error) {
	return service.repo.DeleteEvents(context, ids...)
}
