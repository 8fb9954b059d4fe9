// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// AccountTable represents the 'users.account' table (staff accounts for the admin panel)
type AccountTable struct {
	Table        string
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// Account is the schema definition for users.account
var Account = AccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t AccountTable) TableName() string     { return t.Table }
func (t AccountTable) PrimaryKeys() []string { return []string{t.ID} }

func (t AccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.PasswordHash, t.Role, t.CreatedAt, t.UpdatedAt}
}

func (t AccountTable) Writable() []string { return []string{t.Username, t.PasswordHash, t.Role} }
