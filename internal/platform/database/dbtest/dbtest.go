// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package dbtest provides in-memory fakes for the narrow pgx surface the
storage layer depends on.

The fakes are deliberately dumb: scripted responses are consumed in call
order and every statement is recorded, so tests can assert both what was
sent to the database and that nothing was sent at all (the validate-before-
I/O property). They implement just enough of [pgx.Tx] and [pgx.Rows] for
the CRUD engine and the transactional stores; unused methods panic.
*/
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call records a single statement sent to the fake.
type Call struct {
	SQL  string
	Args []any
}

// Result scripts the response to one Query call.
type Result struct {
	Fields []string
	Rows   [][]any
	Err    error
}

// ExecResult scripts the response to one Exec call.
type ExecResult struct {
	Tag pgconn.CommandTag
	Err error
}

// Tag builds a [pgconn.CommandTag] from its string form, e.g. "UPDATE 1".
func Tag(s string) pgconn.CommandTag { return pgconn.NewCommandTag(s) }

// # Fake Pool

// FakeDB implements the crud.DB interface.
//
// Query and Exec responses are popped from their queues in order; an
// exhausted queue yields an empty result, which keeps happy-path tests
// short. QueryFn, when set, answers by inspecting the statement instead
// of the queue, which callers issuing concurrent queries need since pop
// order is not deterministic under fan-out. BeginCount and the recorded
// calls expose everything the fake saw. Safe for concurrent use.
type FakeDB struct {
	mu sync.Mutex

	QueryCalls []Call
	ExecCalls  []Call
	BeginCount int

	QueryQueue []Result
	ExecQueue  []ExecResult
	QueryFn    func(sql string, args []any) Result
	BeginErr   error

	// Tx is handed out by Begin. Auto-created on first use.
	Tx *FakeTx
}

func (f *FakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.QueryCalls = append(f.QueryCalls, Call{SQL: sql, Args: args})

	result := Result{}
	switch {
	case f.QueryFn != nil:
		result = f.QueryFn(sql, args)
	case len(f.QueryQueue) > 0:
		result = f.QueryQueue[0]
		f.QueryQueue = f.QueryQueue[1:]
	}
	if result.Err != nil {
		return nil, result.Err
	}
	return NewRows(result.Fields, result.Rows), nil
}

func (f *FakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ExecCalls = append(f.ExecCalls, Call{SQL: sql, Args: args})

	result := ExecResult{}
	if len(f.ExecQueue) > 0 {
		result = f.ExecQueue[0]
		f.ExecQueue = f.ExecQueue[1:]
	}
	return result.Tag, result.Err
}

func (f *FakeDB) Begin(_ context.Context) (pgx.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.BeginCount++
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	if f.Tx == nil {
		f.Tx = &FakeTx{}
	}
	return f.Tx, nil
}

// StatementCount returns the total number of statements and transactions
// the fake has seen. Zero means the code under test performed no I/O.
func (f *FakeDB) StatementCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.QueryCalls) + len(f.ExecCalls) + f.BeginCount
}

// # Fake Transaction

// FakeTx implements [pgx.Tx] with the same scripted-queue behavior as
// [FakeDB], plus commit/rollback bookkeeping.
type FakeTx struct {
	QueryCalls []Call
	ExecCalls  []Call

	QueryQueue []Result
	ExecQueue  []ExecResult

	// Issued records every result set Query handed out, so tests can
	// assert that the store closed each one.
	Issued []*FakeRows

	CommitErr  error
	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.QueryCalls = append(t.QueryCalls, Call{SQL: sql, Args: args})

	result := Result{}
	if len(t.QueryQueue) > 0 {
		result = t.QueryQueue[0]
		t.QueryQueue = t.QueryQueue[1:]
	}
	if result.Err != nil {
		return nil, result.Err
	}
	rows := NewRows(result.Fields, result.Rows)
	t.Issued = append(t.Issued, rows)
	return rows, nil
}

func (t *FakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.ExecCalls = append(t.ExecCalls, Call{SQL: sql, Args: args})

	result := ExecResult{}
	if len(t.ExecQueue) > 0 {
		result = t.ExecQueue[0]
		t.ExecQueue = t.ExecQueue[1:]
	}
	return result.Tag, result.Err
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	rows, err := t.Query(ctx, sql, args...)
	if err != nil {
		return errRow{err: err}
	}
	return rowAdapter{rows: rows}
}

func (t *FakeTx) Commit(context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(context.Context) error {
	// Rollback after a successful commit is a no-op, mirroring pgx.
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

func (t *FakeTx) Begin(context.Context) (pgx.Tx, error) {
	return nil, errors.New("dbtest: nested transactions not supported")
}

func (t *FakeTx) Conn() *pgx.Conn { return nil }

func (t *FakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("dbtest: CopyFrom not implemented")
}

func (t *FakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	panic("dbtest: SendBatch not implemented")
}

func (t *FakeTx) LargeObjects() pgx.LargeObjects {
	panic("dbtest: LargeObjects not implemented")
}

func (t *FakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("dbtest: Prepare not implemented")
}

// # Fake Result Set

// FakeRows implements [pgx.Rows] over a static field list and value grid.
type FakeRows struct {
	fields []pgconn.FieldDescription
	rows   [][]any
	index  int
	err    error
	closed bool
}

// NewRows builds a result set from column names and row values.
func NewRows(fields []string, rows [][]any) *FakeRows {
	descriptions := make([]pgconn.FieldDescription, len(fields))
	for i, name := range fields {
		descriptions[i] = pgconn.FieldDescription{Name: name}
	}
	return &FakeRows{fields: descriptions, rows: rows, index: -1}
}

func (r *FakeRows) Close()     { r.closed = true }
func (r *FakeRows) Err() error { return r.err }

// Closed reports whether the consumer released the result set.
func (r *FakeRows) Closed() bool { return r.closed }

func (r *FakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return r.fields }

func (r *FakeRows) Next() bool {
	if r.closed {
		return false
	}
	r.index++
	return r.index < len(r.rows)
}

func (r *FakeRows) Values() ([]any, error) {
	if r.index < 0 || r.index >= len(r.rows) {
		return nil, errors.New("dbtest: Values called without Next")
	}
	return r.rows[r.index], nil
}

func (r *FakeRows) Scan(dest ...any) error {
	values, err := r.Values()
	if err != nil {
		return err
	}
	if len(dest) != len(values) {
		return errors.New("dbtest: Scan destination count mismatch")
	}
	for i, value := range values {
		if err := scanInto(dest[i], value); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeRows) RawValues() [][]byte { return nil }
func (r *FakeRows) Conn() *pgx.Conn     { return nil }

// rowAdapter turns a Rows into a single-row pgx.Row.
type rowAdapter struct {
	rows pgx.Rows
}

func (a rowAdapter) Scan(dest ...any) error {
	defer a.rows.Close()
	if !a.rows.Next() {
		return pgx.ErrNoRows
	}
	return a.rows.Scan(dest...)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

// scanInto covers the handful of destination types the stores use.
func scanInto(dest, value any) error {
	switch d := dest.(type) {
	case *int64:
		switch v := value.(type) {
		case int64:
			*d = v
		case int:
			*d = int64(v)
		case int32:
			*d = int64(v)
		default:
			return errors.New("dbtest: cannot scan into *int64")
		}
	case *string:
		s, ok := value.(string)
		if !ok {
			return errors.New("dbtest: cannot scan into *string")
		}
		*d = s
	case *any:
		*d = value
	default:
		return errors.New("dbtest: unsupported scan destination")
	}
	return nil
}
