// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package member

import (
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
)

// Member is a camp community user known through the Telegram bot.
type Member struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	FirstName  string    `json:"first_name"`
	LastName   *string   `json:"last_name"`
	Nickname   *string   `json:"nickname"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}

// Draft is a member registration payload.
type Draft struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Nickname   *string
}

func (draft Draft) row() crud.Row {
	body := crud.Row{
		schema.Member.TelegramID: draft.TelegramID,
		schema.Member.FirstName:  draft.FirstName,
	}
	if draft.LastName != nil {
		body[schema.Member.LastName] = *draft.LastName
	}
	if draft.Nickname != nil {
		body[schema.Member.Nickname] = *draft.Nickname
	}
	return body
}

// Review is free-form feedback left by a member, with a flag tracking
// whether a methodist has looked at it yet.
type Review struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	Text      string    `json:"text"`
	Looked    bool      `json:"looked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func memberFromRow(row crud.Row) Member {
	return Member{
		ID:         crud.ID(row, schema.Member.ID),
		TelegramID: crud.ID(row, schema.Member.TelegramID),
		FirstName:  crud.String(row, schema.Member.FirstName),
		LastName:   crud.StringPtr(row, schema.Member.LastName),
		Nickname:   crud.StringPtr(row, schema.Member.Nickname),
		CreatedAt:  crud.Time(row, schema.Member.CreatedAt),
		UpdatedAt:  crud.Time(row, schema.Member.UpdatedAt),
	}
}

func reviewFromRow(row crud.Row) Review {
	return Review{
		ID:        crud.ID(row, schema.Review.ID),
		MemberID:  crud.ID(row, schema.Review.MemberID),
		Text:      crud.String(row, schema.Review.Text),
		Looked:    crud.Bool(row, schema.Review.Looked),
		CreatedAt: crud.Time(row, schema.Review.CreatedAt),
		UpdatedAt: crud.Time(row, schema.Review.UpdatedAt),
	}
}
