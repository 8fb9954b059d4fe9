// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// AgeGroupTable represents the 'bank.agegroup' table.
// An age group is the camp-shift audience bucket content is tagged with.
type AgeGroupTable struct {
	Table     string
	ID        string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// AgeGroup is the schema definition for bank.agegroup
var AgeGroup = AgeGroupTable{
	Table:     "bank.agegroup",
	ID:        "id",
	Title:     "title",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t AgeGroupTable) TableName() string     { return t.Table }
func (t AgeGroupTable) PrimaryKeys() []string { return []string{t.ID} }

func (t AgeGroupTable) Columns() []string {
	return []string{t.ID, t.Title, t.CreatedAt, t.UpdatedAt}
}

func (t AgeGroupTable) Writable() []string { return []string{t.Title} }
