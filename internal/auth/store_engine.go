// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package auth

import (
	"context"

	"github.com/azhdanov/zarnitsa/internal/platform/database/crud"
	"github.com/azhdanov/zarnitsa/internal/platform/database/schema"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
)

// EngineRepository implements [AccountRepository] on top of the generic CRUD engine.
type EngineRepository struct {
	engine *crud.Engine
}

func NewEngineRepository(engine *crud.Engine) *EngineRepository {
	return &EngineRepository{engine: engine}
}

func (repository *EngineRepository) FindByID(context context.Context, id int64) (Account, error) {
	rows, err := repository.engine.Get(context, schema.Account, crud.ByID(id))
	if err != nil {
		return Account{}, dberr.Wrap(err, "find_account")
	}
	if len(rows) == 0 {
		return Account{}, dberr.ErrNotFound
	}
	return accountFromRow(rows[0]), nil
}

func (repository *EngineRepository) FindByUsername(context context.Context, username string) (Account, error) {
	rows, err := repository.engine.Get(context, schema.Account, crud.ByFilter(crud.Row{
		schema.Account.Username: username,
	}))
	if err != nil {
		return Account{}, dberr.Wrap(err, "find_account_by_username")
	}
	if len(rows) == 0 {
		return Account{}, dberr.ErrNotFound
	}
	return accountFromRow(rows[0]), nil
}

func (repository *EngineRepository) List(context context.Context) ([]Account, error) {
	rows, err := repository.engine.Get(context, schema.Account, crud.Selection{})
	if err != nil {
		return nil, dberr.Wrap(err, "list_accounts")
	}

	accounts := make([]Account, len(rows))
	for i, row := range rows {
		accounts[i] = accountFromRow(row)
	}
	return accounts, nil
}

func (repository *EngineRepository) Create(context context.Context, username, passwordHash string, role string) (Account, error) {
	rows, err := repository.engine.Insert(context, schema.Account, crud.Row{
		schema.Account.Username:     username,
		schema.Account.PasswordHash: passwordHash,
		schema.Account.Role:         role,
	})
	if err != nil {
		return Account{}, dberr.Wrap(err, "create_account")
	}
	return accountFromRow(rows[0]), nil
}

func (repository *EngineRepository) UpdatePassword(context context.Context, id int64, newHash string) error {
	affected, err := repository.engine.Update(context, schema.Account, id, crud.Row{
		schema.Account.PasswordHash: newHash,
	})
	if err != nil {
		return dberr.Wrap(err, "update_account_password")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) UpdateRole(context context.Context, id int64, role string) error {
	affected, err := repository.engine.Update(context, schema.Account, id, crud.Row{
		schema.Account.Role: role,
	})
	if err != nil {
		return dberr.Wrap(err, "update_account_role")
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *EngineRepository) Delete(context context.Context, ids ...int64) ([]int64, error) {
	deleted, err := repository.engine.Delete(context, schema.Account, crud.ByIDs(ids...))
	if err != nil {
		return nil, dberr.Wrap(err, "delete_accounts")
	}
	return deleted, nil
}
