// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package crud implements the generic CRUD engine shared by every stored
entity in Zarnitsa.

The engine is parameterized by a [schema.Descriptor] and moves records
across its boundary as plain field mappings ([Row]). Domain packages keep
their closed struct types and convert to/from rows at the edge; the engine
validates every untrusted mapping against the descriptor's column set
before a single byte reaches PostgreSQL.

Contract highlights:

  - Get never errors on an empty match; it returns an empty slice.
  - Insert is atomic for the whole batch: one transaction, no partial rows.
  - Update is single-row by id; multi-row update is deliberately absent.
  - Delete resolves its targets with Get semantics first and reports the
    ids it actually removed.

Failure reporting is typed: [*ValidationError] for bad field names (no I/O
performed), [*PersistenceError] for storage rejections (logged, rolled
back). The engine never panics and never lets a pgx error escape unwrapped.
*/
package crud

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// Row is one record's semantic content: a mapping from column name to value.
type Row = map[string]any

// DB is the subset of [pgxpool.Pool] the engine needs. Narrowing the
// dependency to an interface keeps the engine testable with an in-memory
// spy instead of a live PostgreSQL.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Selection narrows an operation to a subset of one table's rows.
//
// IDs and Filter combine conjunctively. An empty Selection matches the
// whole table.
type Selection struct {
	// IDs selects rows whose primary key is in the set ("IN" semantics).
	IDs []int64

	// Filter adds equality predicates, ANDed together. Every key must be
	// a column of the target table; no range or partial-match operators.
	Filter Row
}

// ByID selects the single row with the given primary key.
func ByID(id int64) Selection { return Selection{IDs: []int64{id}} }

// ByIDs selects the rows whose primary key is in the given set.
func ByIDs(ids ...int64) Selection { return Selection{IDs: ids} }

// ByFilter selects rows matching every given equality predicate.
func ByFilter(filter Row) Selection { return Selection{Filter: filter} }

// Engine executes generic CRUD operations against an injected database
// handle. It holds no per-entity state; one Engine serves every table.
type Engine struct {
	db  DB
	log *slog.Logger
}

// NewEngine constructs the engine around a database handle.
func NewEngine(db DB, logger *slog.Logger) *Engine {
	return &Engine{db: db, log: logger}
}

// # Read Path

// Get fetches the rows of d matched by sel.
//
// A selection that matches nothing yields an empty slice and a nil error;
// absence is not a failure. Unknown filter keys yield a [*ValidationError]
// before any query is issued.
func (engine *Engine) Get(ctx context.Context, d schema.Descriptor, sel Selection) ([]Row, error) {
	if invalid := schema.InvalidFields(d.Columns(), sel.Filter); len(invalid) > 0 {
		return nil, &ValidationError{Entity: d.TableName(), Fields: invalid}
	}

	primaryKey, err := schema.PrimaryKeyOf(d)
	if err != nil {
		return nil, err
	}

	query, args := buildSelect(d, primaryKey, sel)

	rows, err := engine.db.Query(ctx, query, args...)
	if err != nil {
		return nil, engine.fail("get", d, err)
	}
	defer rows.Close()

	out, err := CollectRows(rows)
	if err != nil {
		return nil, engine.fail("get", d, err)
	}
	return out, nil
}

// # Write Path

// Insert persists one or more records of d and returns them fully
// materialized: generated ids and server-stamped timestamps included.
//
// The whole batch is one transaction. If any record is rejected, nothing
// from this call remains persisted.
func (engine *Engine) Insert(ctx context.Context, d schema.Descriptor, bodies ...Row) ([]Row, error) {
	invalidSet := map[string]struct{}{}
	for _, body := range bodies {
		for _, field := range schema.InvalidFields(d.Writable(), body) {
			invalidSet[field] = struct{}{}
		}
	}
	if len(invalidSet) > 0 {
		invalid := make([]string, 0, len(invalidSet))
		for field := range invalidSet {
			invalid = append(invalid, field)
		}
		sort.Strings(invalid)
		return nil, &ValidationError{Entity: d.TableName(), Fields: invalid}
	}

	if len(bodies) == 0 {
		return []Row{}, nil
	}

	transaction, err := engine.db.Begin(ctx)
	if err != nil {
		return nil, engine.fail("insert", d, err)
	}
	defer transaction.Rollback(ctx)

	inserted := make([]Row, 0, len(bodies))
	for _, body := range bodies {
		row, err := insertOne(ctx, transaction, d, body)
		if err != nil {
			return nil, engine.fail("insert", d, err)
		}
		inserted = append(inserted, row)
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, engine.fail("insert", d, err)
	}

	return inserted, nil
}

// Update applies body as a set-update against the single row of d with the
// given id and returns the number of rows affected (0 or 1). A zero count
// with a nil error means the id matched nothing.
//
// There is no batch variant: multi-row update is out of this engine's
// contract.
func (engine *Engine) Update(ctx context.Context, d schema.Descriptor, id int64, body Row) (int64, error) {
	if invalid := schema.InvalidFields(d.Writable(), body); len(invalid) > 0 {
		return 0, &ValidationError{Entity: d.TableName(), Fields: invalid}
	}
	if len(body) == 0 {
		return 0, nil
	}

	primaryKey, err := schema.PrimaryKeyOf(d)
	if err != nil {
		return 0, err
	}

	assignments := make([]string, 0, len(body))
	args := make([]any, 0, len(body)+1)
	for _, column := range sortedKeys(body) {
		args = append(args, body[column])
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		d.TableName(), strings.Join(assignments, ", "), primaryKey, len(args))

	tag, err := engine.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, engine.fail("update", d, err)
	}

	return tag.RowsAffected(), nil
}

// Delete removes the rows of d matched by sel and returns the ids it
// actually deleted.
//
// The targets are resolved with Get semantics first, so requesting ids
// that do not exist is not an error; those ids are simply absent from the
// result. An empty result with a nil error always means "nothing matched";
// a failed commit is a [*PersistenceError] instead.
func (engine *Engine) Delete(ctx context.Context, d schema.Descriptor, sel Selection) ([]int64, error) {
	targets, err := engine.Get(ctx, d, sel)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return []int64{}, nil
	}

	primaryKey, err := schema.PrimaryKeyOf(d)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(targets))
	for _, row := range targets {
		id, ok := asInt64(row[primaryKey])
		if !ok {
			return nil, engine.fail("delete", d, fmt.Errorf("non-integer primary key value %v", row[primaryKey]))
		}
		ids = append(ids, id)
	}

	transaction, err := engine.db.Begin(ctx)
	if err != nil {
		return nil, engine.fail("delete", d, err)
	}
	defer transaction.Rollback(ctx)

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, d.TableName(), primaryKey)
	if _, err := transaction.Exec(ctx, query, ids); err != nil {
		return nil, engine.fail("delete", d, err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, engine.fail("delete", d, err)
	}

	return ids, nil
}

// # Internals

// fail logs a storage rejection with enough context to diagnose it and
// wraps it into a [*PersistenceError]. Validation failures never come
// through here.
func (engine *Engine) fail(op string, d schema.Descriptor, err error) *PersistenceError {
	engine.log.Error("crud_operation_failed",
		slog.String("op", op),
		slog.String("entity", d.TableName()),
		slog.Any("error", err),
	)
	return &PersistenceError{Op: op, Entity: d.TableName(), Err: err}
}

func buildSelect(d schema.Descriptor, primaryKey string, sel Selection) (string, []any) {
	var predicates []string
	var args []any

	switch {
	case len(sel.IDs) == 1:
		args = append(args, sel.IDs[0])
		predicates = append(predicates, fmt.Sprintf("%s = $%d", primaryKey, len(args)))
	case len(sel.IDs) > 1:
		args = append(args, sel.IDs)
		predicates = append(predicates, fmt.Sprintf("%s = ANY($%d)", primaryKey, len(args)))
	}

	for _, column := range sortedKeys(sel.Filter) {
		args = append(args, sel.Filter[column])
		predicates = append(predicates, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(d.Columns(), ", "), d.TableName())
	if len(predicates) > 0 {
		query += " WHERE " + strings.Join(predicates, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s", primaryKey)

	return query, args
}

func insertOne(ctx context.Context, transaction pgx.Tx, d schema.Descriptor, body Row) (Row, error) {
	returning := strings.Join(d.Columns(), ", ")

	var query string
	args := make([]any, 0, len(body))

	if len(body) == 0 {
		query = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`, d.TableName(), returning)
	} else {
		columns := sortedKeys(body)
		placeholders := make([]string, len(columns))
		for i, column := range columns {
			args = append(args, body[column])
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			d.TableName(), strings.Join(columns, ", "), strings.Join(placeholders, ", "), returning)
	}

	rows, err := transaction.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	materialized, err := CollectRows(rows)
	if err != nil {
		return nil, err
	}
	if len(materialized) != 1 {
		return nil, fmt.Errorf("insert returned %d rows, expected 1", len(materialized))
	}

	return materialized[0], nil
}

// CollectRows materializes a pgx result set into field mappings keyed by
// column name. It is used by the engine itself and by stores that run
// custom queries (joins, EXISTS filters) outside the generic operations.
func CollectRows(rows pgx.Rows) ([]Row, error) {
	out := make([]Row, 0)
	fields := rows.FieldDescriptions()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(Row, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func sortedKeys(m Row) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// asInt64 normalizes the integer widths pgx may hand back for a bigint
// primary key.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
