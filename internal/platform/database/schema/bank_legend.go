// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// LegendTable represents the 'bank.legend' table
type LegendTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	FilePath    string
	CreatedAt   string
	UpdatedAt   string
}

// Legend is the schema definition for bank.legend
var Legend = LegendTable{
	Table:       "bank.legend",
	ID:          "id",
	Title:       "title",
	Description: "description",
	FilePath:    "file_path",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t LegendTable) TableName() string     { return t.Table }
func (t LegendTable) PrimaryKeys() []string { return []string{t.ID} }

func (t LegendTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.FilePath, t.CreatedAt, t.UpdatedAt}
}

func (t LegendTable) Writable() []string { return []string{t.Title, t.Description, t.FilePath} }
