// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// SongCategoryTable represents the 'core.songcategory' table
type SongCategoryTable struct {
	Table     string
	ID        string
	Name      string
	ParentID  string
	CreatedAt string
	UpdatedAt string
}

// SongCategory is the schema definition for core.songcategory
var SongCategory = SongCategoryTable{
	Table:     "core.songcategory",
	ID:        "id",
	Name:      "name",
	ParentID:  "parent_id",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t SongCategoryTable) TableName() string     { return t.Table }
func (t SongCategoryTable) PrimaryKeys() []string { return []string{t.ID} }

func (t SongCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.ParentID, t.CreatedAt, t.UpdatedAt}
}

func (t SongCategoryTable) Writable() []string { return []string{t.Name, t.ParentID} }
