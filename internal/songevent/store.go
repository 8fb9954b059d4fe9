// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package songevent

import (
	"context"
	"time"
)

type Repository interface {
	ListEvents(context context.Context) ([]Event, error)
	GetEvent(context context.Context, id int64) (Event, error)

	// ActualEvents returns events still running at the given instant,
	// i.e. those whose end date has not passed.
	ActualEvents(context context.Context, now time.Time) ([]Event, error)

	CreateEvent(context context.Context, draft Draft, endAt time.Time) (Event, error)
	DeleteEvents(context context.Context, ids ...int64) ([]int64, error)
}
