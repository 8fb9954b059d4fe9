// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// KtdGroupTable represents the 'bank.ktdgroup' junction table (KTD ↔ age group)
type KtdGroupTable struct {
	Table   string
	ID      string
	KtdID   string
	GroupID string
}

// KtdGroup is the schema definition for bank.ktdgroup
var KtdGroup = KtdGroupTable{
	Table:   "bank.ktdgroup",
	ID:      "id",
	KtdID:   "ktd_id",
	GroupID: "group_id",
}

func (t KtdGroupTable) TableName() string     { return t.Table }
func (t KtdGroupTable) PrimaryKeys() []string { return []string{t.ID} }
func (t KtdGroupTable) Columns() []string     { return []string{t.ID, t.KtdID, t.GroupID} }
func (t KtdGroupTable) Writable() []string    { return []string{t.KtdID, t.GroupID} }
