// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

/*
Package auth implements staff identity and session management.

It defines the core domain entities (Account, Session) and the logic for
authentication, authorization, and the account lifecycle of camp staff.

# Architecture

  - Service: Orchestrates business logic (Login, Refresh, account admin).
  - Repository: Abstracted interfaces for Postgres (Accounts) and Redis (Sessions).
  - Security: Bcrypt password hashes and RSA-signed JWTs from the sec package.
*/
package auth

import (
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// # Domain Entities

// Account represents a staff login for the admin panel.
type Account struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"-"`
}

// Session represents an active refresh-token session kept in Redis.
// Only the token hash is stored; the raw token lives in the client cookie.
type Session struct {
	AccountID int64
	ExpiresAt time.Time
}

// # Field Identifiers

// Field names shared between validation and JSON payloads in this domain.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldAccount         = "account"
)

func accountFromRow(row crud.Row) Account {
	return Account{
		ID:           crud.ID(row, schema.Account.ID),
		Username:     crud.String(row, schema.Account.Username),
		PasswordHash: crud.String(row, schema.Account.PasswordHash),
		Role:         sec.UserRole(crud.String(row, schema.Account.Role)),
		CreatedAt:    crud.Time(row, schema.Account.CreatedAt),
		UpdatedAt:    crud.Time(row, schema.Account.UpdatedAt),
	}
}
