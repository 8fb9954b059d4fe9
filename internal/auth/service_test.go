// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// fakeAccounts is an in-memory AccountRepository for service tests.
type fakeAccounts struct {
	accounts []Account
	nextID   int64
}

func (f *fakeAccounts) FindByID(_ context.Context, id int64) (Account, error) {
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, dberr.ErrNotFound
}

func (f *fakeAccounts) FindByUsername(_ context.Context, username string) (Account, error) {
	for _, a := range f.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return Account{}, dberr.ErrNotFound
}

func (f *fakeAccounts) List(context.Context) ([]Account, error) { return f.accounts, nil }

func (f *fakeAccounts) Create(_ context.Context, username, passwordHash string, role string) (Account, error) {
	f.nextID++
	account := Account{ID: f.nextID, Username: username, PasswordHash: passwordHash, Role: sec.UserRole(role)}
	f.accounts = append(f.accounts, account)
	return account, nil
}

func (f *fakeAccounts) UpdatePassword(_ context.Context, id int64, newHash string) error {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts[i].PasswordHash = newHash
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeAccounts) UpdateRole(_ context.Context, id int64, role string) error {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			f.accounts[i].Role = sec.UserRole(role)
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (f *fakeAccounts) Delete(_ context.Context, ids ...int64) ([]int64, error) {
	deleted := make([]int64, 0)
	kept := f.accounts[:0]
	for _, a := range f.accounts {
		removed := false
		for _, id := range ids {
			if a.ID == id {
				removed = true
				break
			}
		}
		if removed {
			deleted = append(deleted, a.ID)
		} else {
			kept = append(kept, a)
		}
	}
	f.accounts = kept
	return deleted, nil
}

// fakeSessions is an in-memory SessionRepository for service tests.
type fakeSessions struct {
	sessions map[string]Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]Session)}
}

func (f *fakeSessions) Set(_ context.Context, tokenHash string, session Session, _ time.Duration) error {
	f.sessions[tokenHash] = session
	return nil
}

func (f *fakeSessions) Get(_ context.Context, tokenHash string) (Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return Session{}, apperr.NotFound("Session is invalid or expired")
	}
	return session, nil
}

func (f *fakeSessions) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

// fakeTokens issues predictable access tokens without touching RSA keys.
type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

func seedAccount(t *testing.T, accounts *fakeAccounts, username, password string, role sec.UserRole) Account {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	account, err := accounts.Create(context.Background(), username, hash, string(role))
	require.NoError(t, err)
	return account
}

func TestLogin_IssuesTokensAndStoresSession(t *testing.T) {
	accounts := &fakeAccounts{}
	sessions := newFakeSessions()
	seedAccount(t, accounts, "masha", "correct horse", sec.RoleMethodist)
	service := NewService(accounts, sessions, fakeTokens{})

	session, err := service.Login(context.Background(), LoginInput{
		Username: "masha",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, "jwt-for-1", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Len(t, sessions.sessions, 1)

	stored, err := sessions.Get(context.Background(), sec.HashToken(session.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, stored.AccountID)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	accounts := &fakeAccounts{}
	sessions := newFakeSessions()
	seedAccount(t, accounts, "masha", "correct horse", sec.RoleMethodist)
	service := NewService(accounts, sessions, fakeTokens{})

	_, err := service.Login(context.Background(), LoginInput{
		Username: "masha",
		Password: "wrong",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Empty(t, sessions.sessions)
}

func TestLogin_UnknownUsernameIsUnauthorized(t *testing.T) {
	service := NewService(&fakeAccounts{}, newFakeSessions(), fakeTokens{})

	_, err := service.Login(context.Background(), LoginInput{
		Username: "nobody",
		Password: "whatever",
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

func TestRefreshSession_RotatesRefreshToken(t *testing.T) {
	accounts := &fakeAccounts{}
	sessions := newFakeSessions()
	seedAccount(t, accounts, "masha", "correct horse", sec.RoleMethodist)
	service := NewService(accounts, sessions, fakeTokens{})

	first, err := service.Login(context.Background(), LoginInput{
		Username: "masha",
		Password: "correct horse",
	})
	require.NoError(t, err)

	second, err := service.RefreshSession(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The consumed token must not be replayable.
	_, err = service.RefreshSession(context.Background(), first.RefreshToken)
	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

func TestLogout_IsIdempotent(t *testing.T) {
	accounts := &fakeAccounts{}
	sessions := newFakeSessions()
	seedAccount(t, accounts, "masha", "correct horse", sec.RoleMethodist)
	service := NewService(accounts, sessions, fakeTokens{})

	session, err := service.Login(context.Background(), LoginInput{
		Username: "masha",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	accounts := &fakeAccounts{}
	account := seedAccount(t, accounts, "masha", "old password", sec.RoleMethodist)
	service := NewService(accounts, newFakeSessions(), fakeTokens{})

	err := service.ChangePassword(context.Background(), account.ID, "not the password", "new password")

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

func TestChangePassword_RotatesHash(t *testing.T) {
	accounts := &fakeAccounts{}
	account := seedAccount(t, accounts, "masha", "old password", sec.RoleMethodist)
	service := NewService(accounts, newFakeSessions(), fakeTokens{})

	require.NoError(t, service.ChangePassword(context.Background(), account.ID, "old password", "new password"))

	updated, err := accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, sec.CheckPasswordHash("new password", updated.PasswordHash))
}

func TestCreateAccount_DuplicateUsernameConflicts(t *testing.T) {
	accounts := &fakeAccounts{}
	seedAccount(t, accounts, "masha", "password1", sec.RoleMethodist)
	service := NewService(accounts, newFakeSessions(), fakeTokens{})

	_, err := service.CreateAccount(context.Background(), CreateAccountInput{
		Username: "masha",
		Password: "password2",
		Role:     sec.RoleCounselor,
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

func TestCreateAccount_RejectsUnknownRole(t *testing.T) {
	service := NewService(&fakeAccounts{}, newFakeSessions(), fakeTokens{})

	_, err := service.CreateAccount(context.Background(), CreateAccountInput{
		Username: "newbie",
		Password: "password1",
		Role:     sec.UserRole("janitor"),
	})

	var appError *apperr.AppError
	require.ErrorAs(t, err, &appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
