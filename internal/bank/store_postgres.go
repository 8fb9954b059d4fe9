// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package bank

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
)

// PostgresRepository implements [Repository].
//
// Simple lookups and deletions go through the generic CRUD engine.
// Creation of tagged content needs its own transactions because a game or
// legend and its junction rows must land together; those paths talk to
// the database handle directly.
type PostgresRepository struct {
	db     crud.DB
	engine *crud.Engine
}

func NewPostgresRepository(db crud.DB, engine *crud.Engine) *PostgresRepository {
	return &PostgresRepository{db: db, engine: engine}
}

// # Age Groups

func (repository *PostgresRepository) ListGroups(context context.Context) ([]AgeGroup, error) {
	rows, err := repository.engine.Get(context, schema.AgeGroup, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_age_groups")
	}

	groups := make([]AgeGroup, len(rows))
	for i, row := range rows {
		groups[i] = ageGroupFromRow(row)
	}
	return groups, nil
}

func (repository *PostgresRepository) CreateGroup(context context.Context, title string) (AgeGroup, error) {
	rows, err := repository.engine.Insert(context, schema.AgeGroup, crud.Row{
		schema.AgeGroup.Title: title,
	})
	if err != nil {
		return AgeGroup{}, dberr.Wrap(err, "create_age_group")
	}
	return ageGroupFromRow(rows[0]), nil
}

func (repository *PostgresRepository) DeleteGroups(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.AgeGroup, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_age_groups")
	}
	return deleted, nil
}

// # Game Types

func (repository *PostgresRepository) ListTypes(context context.Context) ([]GameType, error) {
	rows, err := repository.engine.Get(context, schema.GameType, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_game_types")
	}

	types := make([]GameType, len(rows))
	for i, row := range rows {
		types[i] = gameTypeFromRow(row)
	}
	return types, nil
}

func (repository *PostgresRepository) CreateType(context context.Context, title string) (GameType, error) {
	rows, err := repository.engine.Insert(context, schema.GameType, crud.Row{
		schema.GameType.Title: title,
	})
	if err != nil {
		return GameType{}, dberr.Wrap(err, "create_game_type")
	}
	return gameTypeFromRow(rows[0]), nil
}

func (repository *PostgresRepository) DeleteTypes(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.GameType, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_game_types")
	}
	return deleted, nil
}

// # Games

func (repository *PostgresRepository) ListGames(context context.Context) ([]Game, error) {
	rows, err := repository.engine.Get(context, schema.Game, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_games")
	}
	return repository.hydrateGames(context, rows)
}

func (repository *PostgresRepository) GetGame(context context.Context, id int64) (Game, error) {
	rows, err := repository.engine.Get(context, schema.Game, crud.ByID(id))
	if err != nil {
		return Game{}, dberr.Wrap(err, "get_game")
	}
	if len(rows) == 0 {
		return Game{}, dberr.ErrNotFound
	}

	games, err := repository.hydrateGames(context, rows)
	if err != nil {
		return Game{}, err
	}
	return games[0], nil
}

func (repository *PostgresRepository) GamesByTitle(context context.Context, title string) ([]Game, error) {
	rows, err := repository.engine.Get(context, schema.Game, crud.ByFilter(crud.Row{
		schema.Game.Title: title,
	}))
	if err != nil {
		return nil, dberr.Wrap(err, "games_by_title")
	}
	return repository.hydrateGames(context, rows)
}

func (repository *PostgresRepository) GamesByGroupAndType(context context.Context, groupID, typeID int64) ([]Game, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s, g.%s, g.%s
		FROM %s g
		WHERE EXISTS (SELECT 1 FROM %s lg WHERE lg.%s = g.%s AND lg.%s = $1)
		  AND EXISTS (SELECT 1 FROM %s lt WHERE lt.%s = g.%s AND lt.%s = $2)
		ORDER BY g.%s
	`,
		schema.Game.ID, schema.Game.Title, schema.Game.Description, schema.Game.FilePath, schema.Game.CreatedAt, schema.Game.UpdatedAt,
		schema.Game.Table,
		schema.GameGroup.Table, schema.GameGroup.GameID, schema.Game.ID, schema.GameGroup.GroupID,
		schema.GameTypeLink.Table, schema.GameTypeLink.GameID, schema.Game.ID, schema.GameTypeLink.TypeID,
		schema.Game.ID,
	)

	pgxRows, err := repository.db.Query(context, query, groupID, typeID)
	if err != nil {
		return nil, dberr.Wrap(err, "games_by_group_and_type")
	}
	defer pgxRows.Close()

	rows, err := crud.CollectRows(pgxRows)
	if err != nil {
		return nil, dberr.Wrap(err, "games_by_group_and_type")
	}
	return repository.hydrateGames(context, rows)
}

/*
CreateGames persists a batch of games with their age-group and type links.

Description: Each game row and all of its junction rows are written inside
one shared transaction; a rejected link rolls back every game of the batch.

Parameters:
  - context: context.Context
  - drafts: []GameDraft (Validated game payloads)

Returns:
  - []Game: Created games with generated ids and link ids attached
  - error: Wrapped storage errors; FK violations surface as Unprocessable
*/
func (repository *PostgresRepository) CreateGames(context context.Context, drafts []GameDraft) ([]Game, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "create_games_begin")
	}
	defer transaction.Rollback(context)

	insert := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s, %s, %s`,
		schema.Game.Table, schema.Game.Title, schema.Game.Description, schema.Game.FilePath,
		schema.Game.ID, schema.Game.CreatedAt, schema.Game.UpdatedAt)

	created := make([]Game, 0, len(drafts))
	for _, draft := range drafts {
		pgxRows, err := transaction.Query(context, insert, draft.Title, draft.Description, draft.FilePath)
		if err != nil {
			return nil, dberr.Wrap(err, "create_game")
		}

		// Closed per iteration: a deferred close would hold every result
		// set open until the transaction commits.
		rows, err := crud.CollectRows(pgxRows)
		pgxRows.Close()
		if err != nil {
			return nil, dberr.Wrap(err, "create_game")
		}
		if len(rows) != 1 {
			return nil, dberr.Wrap(fmt.Errorf("insert returned %d rows, expected 1", len(rows)), "create_game")
		}

		game := Game{
			ID:          crud.ID(rows[0], schema.Game.ID),
			Title:       draft.Title,
			Description: draft.Description,
			FilePath:    draft.FilePath,
			GroupIDs:    append([]int64{}, draft.GroupIDs...),
			TypeIDs:     append([]int64{}, draft.TypeIDs...),
			CreatedAt:   crud.Time(rows[0], schema.Game.CreatedAt),
			UpdatedAt:   crud.Time(rows[0], schema.Game.UpdatedAt),
		}

		if err := insertLinks(context, transaction,
			schema.GameGroup.Table, schema.GameGroup.GameID, schema.GameGroup.GroupID,
			game.ID, draft.GroupIDs); err != nil {
			return nil, dberr.Wrap(err, "create_game_groups")
		}
		if err := insertLinks(context, transaction,
			schema.GameTypeLink.Table, schema.GameTypeLink.GameID, schema.GameTypeLink.TypeID,
			game.ID, draft.TypeIDs); err != nil {
			return nil, dberr.Wrap(err, "create_game_types")
		}

		created = append(created, game)
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "create_games_commit")
	}
	return created, nil
}

func (repository *PostgresRepository) DeleteGames(context context.Context, ids ...int64) ([]int64, error) {
	// Junction rows go with the game via ON DELETE CASCADE.
	deleted, err := repository.engine.Delete(context, schema.Game, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_games")
	}
	return deleted, nil
}

// # Legends

func (repository *PostgresRepository) ListLegends(context context.Context) ([]Item, error) {
	return repository.listItems(context, schema.Legend, schema.LegendGroup.Table, schema.LegendGroup.LegendID, schema.LegendGroup.GroupID)
}

func (repository *PostgresRepository) LegendsByGroup(context context.Context, groupID int64) ([]Item, error) {
	return repository.itemsByGroup(context, schema.Legend, schema.LegendGroup.Table, schema.LegendGroup.LegendID, schema.LegendGroup.GroupID, groupID)
}

func (repository *PostgresRepository) CreateLegends(context context.Context, drafts []ItemDraft) ([]Item, error) {
	return repository.createItems(context, schema.Legend, schema.LegendGroup.Table, schema.LegendGroup.LegendID, schema.LegendGroup.GroupID, drafts)
}

func (repository *PostgresRepository) DeleteLegends(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Legend, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_legends")
	}
	return deleted, nil
}

// # KTDs

func (repository *PostgresRepository) ListKtds(context context.Context) ([]Item, error) {
	return repository.listItems(context, schema.Ktd, schema.KtdGroup.Table, schema.KtdGroup.KtdID, schema.KtdGroup.GroupID)
}

func (repository *PostgresRepository) KtdsByGroup(context context.Context, groupID int64) ([]Item, error) {
	return repository.itemsByGroup(context, schema.Ktd, schema.KtdGroup.Table, schema.KtdGroup.KtdID, schema.KtdGroup.GroupID, groupID)
}

func (repository *PostgresRepository) CreateKtds(context context.Context, drafts []ItemDraft) ([]Item, error) {
	return repository.createItems(context, schema.Ktd, schema.KtdGroup.Table, schema.KtdGroup.KtdID, schema.KtdGroup.GroupID, drafts)
}

func (repository *PostgresRepository) DeleteKtds(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Ktd, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_ktds")
	}
	return deleted, nil
}

// # Shared Internals

// listItems loads a whole single-junction collection with group ids attached.
func (repository *PostgresRepository) listItems(context context.Context, d schema.Descriptor, linkTable, ownerColumn, groupColumn string) ([]Item, error) {
	rows, err := repository.engine.Get(context, d, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+d.TableName())
	}
	return repository.hydrateItems(context, rows, linkTable, ownerColumn, groupColumn)
}

// itemsByGroup loads the entries of one collection tagged with groupID.
func (repository *PostgresRepository) itemsByGroup(context context.Context, d schema.Descriptor, linkTable, ownerColumn, groupColumn string, groupID int64) ([]Item, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.title, i.description, i.file_path, i.created_at, i.updated_at
		FROM %s i
		WHERE EXISTS (SELECT 1 FROM %s l WHERE l.%s = i.id AND l.%s = $1)
		ORDER BY i.id
	`, d.TableName(), linkTable, ownerColumn, groupColumn)

	pgxRows, err := repository.db.Query(context, query, groupID)
	if err != nil {
		return nil, dberr.Wrap(err, "items_by_group")
	}
	defer pgxRows.Close()

	rows, err := crud.CollectRows(pgxRows)
	if err != nil {
		return nil, dberr.Wrap(err, "items_by_group")
	}
	return repository.hydrateItems(context, rows, linkTable, ownerColumn, groupColumn)
}

// createItems persists a batch of single-junction entries, one transaction
// for the whole batch.
func (repository *PostgresRepository) createItems(context context.Context, d schema.Descriptor, linkTable, ownerColumn, groupColumn string, drafts []ItemDraft) ([]Item, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "create_items_begin")
	}
	defer transaction.Rollback(context)

	insert := fmt.Sprintf(`INSERT INTO %s (title, description, file_path) VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`,
		d.TableName())

	created := make([]Item, 0, len(drafts))
	for _, draft := range drafts {
		pgxRows, err := transaction.Query(context, insert, draft.Title, draft.Description, draft.FilePath)
		if err != nil {
			return nil, dberr.Wrap(err, "create_item")
		}

		rows, err := crud.CollectRows(pgxRows)
		pgxRows.Close()
		if err != nil {
			return nil, dberr.Wrap(err, "create_item")
		}
		if len(rows) != 1 {
			return nil, dberr.Wrap(fmt.Errorf("insert returned %d rows, expected 1", len(rows)), "create_item")
		}

		item := Item{
			ID:          crud.ID(rows[0], "id"),
			Title:       draft.Title,
			Description: draft.Description,
			FilePath:    draft.FilePath,
			GroupIDs:    append([]int64{}, draft.GroupIDs...),
			CreatedAt:   crud.Time(rows[0], "created_at"),
			UpdatedAt:   crud.Time(rows[0], "updated_at"),
		}

		if err := insertLinks(context, transaction, linkTable, ownerColumn, groupColumn, item.ID, draft.GroupIDs); err != nil {
			return nil, dberr.Wrap(err, "create_item_groups")
		}

		created = append(created, item)
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "create_items_commit")
	}
	return created, nil
}

// insertLinks writes one junction row per linked id.
func insertLinks(context context.Context, transaction pgx.Tx, table, ownerColumn, linkedColumn string, ownerID int64, linkedIDs []int64) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, table, ownerColumn, linkedColumn)
	for _, linkedID := range linkedIDs {
		if _, err := transaction.Exec(context, query, ownerID, linkedID); err != nil {
			return err
		}
	}
	return nil
}

// hydrateGames attaches group and type ids to raw game rows.
func (repository *PostgresRepository) hydrateGames(context context.Context, rows []crud.Row) ([]Game, error) {
	games := make([]Game, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		games[i] = gameFromRow(row)
		ids[i] = games[i].ID
	}
	if len(games) == 0 {
		return games, nil
	}

	groupLinks, err := repository.loadLinks(context, schema.GameGroup.Table, schema.GameGroup.GameID, schema.GameGroup.GroupID, ids)
	if err != nil {
		return nil, err
	}
	typeLinks, err := repository.loadLinks(context, schema.GameTypeLink.Table, schema.GameTypeLink.GameID, schema.GameTypeLink.TypeID, ids)
	if err != nil {
		return nil, err
	}

	for i := range games {
		if linked, ok := groupLinks[games[i].ID]; ok {
			games[i].GroupIDs = linked
		}
		if linked, ok := typeLinks[games[i].ID]; ok {
			games[i].TypeIDs = linked
		}
	}
	return games, nil
}

// hydrateItems attaches group ids to raw legend/KTD rows.
func (repository *PostgresRepository) hydrateItems(context context.Context, rows []crud.Row, linkTable, ownerColumn, groupColumn string) ([]Item, error) {
	items := make([]Item, len(rows))
	ids := make([]int64, len(rows))
	for i, row := range rows {
		items[i] = itemFromRow(row)
		ids[i] = items[i].ID
	}
	if len(items) == 0 {
		return items, nil
	}

	links, err := repository.loadLinks(context, linkTable, ownerColumn, groupColumn, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if linked, ok := links[items[i].ID]; ok {
			items[i].GroupIDs = linked
		}
	}
	return items, nil
}

// loadLinks fetches a junction table's pairs for the given owners.
func (repository *PostgresRepository) loadLinks(context context.Context, table, ownerColumn, linkedColumn string, ownerIDs []int64) (map[int64][]int64, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY id`,
		ownerColumn, linkedColumn, table, ownerColumn)

	pgxRows, err := repository.db.Query(context, query, ownerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load_links")
	}
	defer pgxRows.Close()

	rows, err := crud.CollectRows(pgxRows)
	if err != nil {
		return nil, dberr.Wrap(err, "load_links")
	}

	links := make(map[int64][]int64, len(ownerIDs))
	for _, row := range rows {
		owner := crud.ID(row, ownerColumn)
		links[owner] = append(links[owner], crud.ID(row, linkedColumn))
	}
	return links, nil
}
