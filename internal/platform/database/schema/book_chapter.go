// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// ChapterTable represents the 'book.chapter' table (methodical book tree)
type ChapterTable struct {
	Table     string
	ID        string
	ParentID  string
	Title     string
	FilePath  string
	CreatedAt string
	UpdatedAt string
}

// Chapter is the schema definition for book.chapter
var Chapter = ChapterTable{
	Table:     "book.chapter",
	ID:        "id",
	ParentID:  "parent_id",
	Title:     "title",
	FilePath:  "file_path",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t ChapterTable) TableName() string     { return t.Table }
func (t ChapterTable) PrimaryKeys() []string { return []string{t.ID} }

func (t ChapterTable) Columns() []string {
	return []string{t.ID, t.ParentID, t.Title, t.FilePath, t.CreatedAt, t.UpdatedAt}
}

func (t ChapterTable) Writable() []string { return []string{t.ParentID, t.Title, t.FilePath} }
