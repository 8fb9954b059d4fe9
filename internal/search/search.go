// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package search aggregates fuzzy title lookups across every content catalog.

One query fans out to the four searchable collections (songs, KTDs,
legends, games) concurrently and the hits are grouped per collection. The
response shape is fixed: all four groups are always present, empty when
nothing scored above the threshold.

A failing collection never fails the whole search. Its failure is logged
and its group comes back empty; the other collections still answer.
*/
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/pkg/fuzzy"
)

// Threshold is the minimum 0..100 similarity score for a title to count
// as a hit in the aggregated search. It is deliberately permissive; the
// aggregator favours recall, callers wanting precision filter further.
const Threshold = 60

// Results groups the hits of one query per collection. Every group is
// always present in the JSON form, empty slices included.
type Results struct {
	Songs   []crud.Row `json:"songs"`
	Ktds    []crud.Row `json:"ktds"`
	Legends []crud.Row `json:"legends"`
	Games   []crud.Row `json:"games"`
}

// source binds one searchable collection to its title column.
type source struct {
	descriptor schema.Descriptor
	column     string
}

// sources enumerates the searchable collections in result order:
// songs, ktds, legends, games.
var sources = []source{
	{descriptor: schema.Song, column: schema.Song.Title},
	{descriptor: schema.Ktd, column: schema.Ktd.Title},
	{descriptor: schema.Legend, column: schema.Legend.Title},
	{descriptor: schema.Game, column: schema.Game.Title},
}

// Service runs aggregated searches on top of the generic storage engine.
type Service struct {
	engine *crud.Engine
	logger *slog.Logger
}

// NewService constructs the search [Service].
func NewService(engine *crud.Engine, logger *slog.Logger) *Service {
	return &Service{engine: engine, logger: logger}
}

/*
Search runs query against all four collections concurrently.

Description: Each collection is scanned independently; titles scoring at
least [Threshold] against the query are included. Collections that fail to
load contribute an empty group rather than an error, so partial storage
trouble degrades the search instead of breaking it.

Parameters:
  - context: context.Context
  - query: string (Free-form title fragment)

Returns:
  - Results: Per-collection hits, all groups present
*/
func (service *Service) Search(context context.Context, query string) Results {
	query = strings.TrimSpace(query)

	groups := make([][]crud.Row, len(sources))

	var waitGroup sync.WaitGroup
	for i, src := range sources {
		waitGroup.Add(1)
		go func(i int, src source) {
			defer waitGroup.Done()
			groups[i] = service.searchOne(context, src, query)
		}(i, src)
	}
	waitGroup.Wait()

	return Results{
		Songs:   groups[0],
		Ktds:    groups[1],
		Legends: groups[2],
		Games:   groups[3],
	}
}

// searchOne scans a single collection and returns its hits. Storage
// failures are logged and reported as an empty group.
func (service *Service) searchOne(context context.Context, src source, query string) []crud.Row {
	hits := make([]crud.Row, 0)

	if query == "" {
		return hits
	}

	rows, err := service.engine.Get(context, src.descriptor, crud.Selection{})
	if err != nil {
		service.logger.Error("search_source_failed",
			slog.String("entity", src.descriptor.TableName()),
			slog.Any("error", err),
		)
		return hits
	}

	for _, row := range rows {
		title, ok := row[src.column].(string)
		if !ok {
			continue
		}
		if fuzzy.Match(query, title, Threshold) {
			hits = append(hits, row)
		}
	}

	return hits
}
