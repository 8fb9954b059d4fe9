// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package schema

// MemberTable represents the 'users.member' table (Telegram bot users)
type MemberTable struct {
	Table      string
	ID         string
	TelegramID string
	FirstName  string
	LastName   string
	Nickname   string
	CreatedAt  string
	UpdatedAt  string
}

// Member is the schema definition for users.member
var Member = MemberTable{
	Table:      "users.member",
	ID:         "id",
	TelegramID: "telegram_id",
	FirstName:  "first_name",
	LastName:   "last_name",
	Nickname:   "nickname",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

func (t MemberTable) TableName() string     { return t.Table }
func (t MemberTable) PrimaryKeys() []string { return []string{t.ID} }

func (t MemberTable) Columns() []string {
	return []string{t.ID, t.TelegramID, t.FirstName, t.LastName, t.Nickname, t.CreatedAt, t.UpdatedAt}
}

func (t MemberTable) Writable() []string {
	return []string{t.TelegramID, t.FirstName, t.LastName, t.Nickname}
}
