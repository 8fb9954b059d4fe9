// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// ReviewTable represents the 'users.review' table
type ReviewTable struct {
	Table     string
	ID        string
	MemberID  string
	Text      string
	Looked    string
	CreatedAt string
	UpdatedAt string
}

// Review is the schema definition for users.review
var Review = ReviewTable{
	Table:     "users.review",
	ID:        "id",
	MemberID:  "member_id",
	Text:      "text",
	Looked:    "looked",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t ReviewTable) TableName() string     { return t.Table }
func (t ReviewTable) PrimaryKeys() []string { return []string{t.ID} }

func (t ReviewTable) Columns() []string {
	return []string{t.ID, t.MemberID, t.Text, t.Looked, t.CreatedAt, t.UpdatedAt}
}

func (t ReviewTable) Writable() []string { return []string{t.MemberID, t.Text, t.Looked} }
