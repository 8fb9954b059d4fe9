// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// LegendGroupTable represents the 'bank.legendgroup' junction table (legend ↔ age group)
type LegendGroupTable struct {
	Table    string
	ID       string
	LegendID string
	GroupID  string
}

// LegendGroup is the schema definition for bank.legendgroup
var LegendGroup = LegendGroupTable{
	Table:    "bank.legendgroup",
	ID:       "id",
	LegendID: "legend_id",
	GroupID:  "group_id",
}

func (t LegendGroupTable) TableName() string     { return t.Table }
func (t LegendGroupTable) PrimaryKeys() []string { return []string{t.ID} }
func (t LegendGroupTable) Columns() []string     { return []string{t.ID, t.LegendID, t.GroupID} }
func (t LegendGroupTable) Writable() []string    { return []string{t.LegendID, t.GroupID} }
