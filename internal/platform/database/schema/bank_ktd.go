// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// KtdTable represents the 'bank.ktd' table.
// KTD is a collective creative activity, the third piggy-bank content kind
// next to games and legends.
type KtdTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	FilePath    string
	CreatedAt   string
	UpdatedAt   string
}

// Ktd is the schema definition for bank.ktd
var Ktd = KtdTable{
	Table:       "bank.ktd",
	ID:          "id",
	Title:       "title",
	Description: "description",
	FilePath:    "file_path",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t KtdTable) TableName() string     { return t.Table }
func (t KtdTable) PrimaryKeys() []string { return []string{t.ID} }

func (t KtdTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.FilePath, t.CreatedAt, t.UpdatedAt}
}

func (t KtdTable) Writable() []string { return []string{t.Title, t.Description, t.FilePath} }
