// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for staff accounts.
//
// # Review Process
//
// This interface is placed in a separate file from account.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
type AccountRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [dberr.ErrNotFound] if the account does not exist.
	FindByID(context context.Context, id int64) (Account, error)

	// FindByUsername returns the account with the given username.
	//
	// Returns [dberr.ErrNotFound] if the username is available.
	FindByUsername(context context.Context, username string) (Account, error)

	// List returns every staff account.
	List(context context.Context) ([]Account, error)

	// Create persists a brand-new staff account and returns it with
	// server-stamped fields filled in.
	Create(context context.Context, username, passwordHash string, role string) (Account, error)

	// UpdatePassword replaces only the account's password hash.
	// This is separate from role updates to prevent accidental overwrites.
	UpdatePassword(context context.Context, id int64, newHash string) error

	// UpdateRole changes the account's authorization level.
	UpdateRole(context context.Context, id int64, role string) error

	// Delete removes accounts by id and reports the ids actually removed.
	Delete(context context.Context, ids ...int64) ([]int64, error)
}

// # Session Data Access

// SessionRepository defines the contract for volatile refresh-token sessions.
//
// # Domain Ownership
//
// Sessions live in Redis keyed by the refresh token hash; expiry is handled
// by the store's TTL, so there is no cleanup worker to run.
type SessionRepository interface {
	// Set stores a session under the refresh token hash for a limited duration.
	Set(context context.Context, tokenHash string, session Session, ttl time.Duration) error

	// Get retrieves the session stored under the given token hash.
	//
	// Returns [apperr.NotFound] when the session is absent or expired.
	Get(context context.Context, tokenHash string) (Session, error)

	// Delete removes a session, revoking its refresh token.
	Delete(context context.Context, tokenHash string) error
}
