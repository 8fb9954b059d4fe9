// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Services call [Wrap] on anything that comes back from the storage layer.
// Typed engine errors and recognizable PostgreSQL SQLSTATEs become precise
// client-facing errors; everything else is hidden behind a 500.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Field validation failures carry the offending field names.
	var validation *crud.ValidationError
	if errors.As(err, &validation) {
		details := make([]apperr.FieldError, len(validation.Fields))
		for i, field := range validation.Fields {
			details[i] = apperr.FieldError{Field: field, Message: "unknown or read-only field"}
		}
		return apperr.ValidationError(
			fmt.Sprintf("invalid fields for %s", validation.Entity), details...)
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 3. SQLSTATE classification. PersistenceError unwraps to the pgconn
	// error, so errors.As sees through the engine's wrapping.
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.Unprocessable("Referenced resource does not exist")
		}
	}

	// 4. Unknown storage errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
