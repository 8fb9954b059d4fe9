// Copyright (c) 2026 Zarnitsa. All rights reserved.
// Author: a.zhdanov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/azhdanov/zarnitsa/internal/platform/apperr"
	"github.com/azhdanov/zarnitsa/internal/platform/dberr"
	"github.com/azhdanov/zarnitsa/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	//
	// # Parameters
	//   - userID: The ID of the account, as a string.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements staff authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed by the security team.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established staff session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Account               Account
}

/*
Login validates staff credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new refresh session in Redis.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	account, err := service.accountRepository.FindByUsername(context, input.Username)

	// Generic message whether the username or the password is wrong,
	// to prevent account enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}
	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, account)
}

/*
Logout permanently revokes the caller's active session.

Description: Idempotent; an unknown or already-revoked token is treated as
a successful logout.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if _, err := service.sessionRepository.Get(context, tokenHash); err != nil {
		return nil
	}

	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessionRepository.Get(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: revoke the old session before issuing a replacement.
	if err := service.sessionRepository.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	account, err := service.accountRepository.FindByID(context, session.AccountID)
	if err != nil {
		return nil, apperr.Unauthorized("Account not found or suspended")
	}

	return service.establishSession(context, account)
}

// establishSession issues an access token and a tracked refresh session.
func (service *Service) establishSession(context context.Context, account Account) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(
		fmt.Sprintf("%d", account.ID),
		account.Username,
		string(account.Role),
		AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := Session{AccountID: account.ID, ExpiresAt: expiresAt}

	if err := service.sessionRepository.Set(context, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		Account:               account,
	}, nil
}

// # Password Management

/*
ChangePassword allows an authenticated staff member to update their credentials.

Description: Verifies the current password before rotating the hash. The
caller's current session stays valid; other devices must log in again with
the new password once their refresh tokens expire.

Parameters:
  - context: context.Context
  - accountID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, accountID int64, currentPassword, newPassword string) error {
	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(context, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}
	return nil
}

// # Account Administration

// CreateAccountInput holds the data required to enroll a new staff account.
type CreateAccountInput struct {
	Username string
	Password string
	Role     sec.UserRole
}

/*
CreateAccount provisions a staff login. Admin-only.

Parameters:
  - context: context.Context
  - input: CreateAccountInput

Returns:
  - Account: Created entity
  - err: Conflict (if the username is taken) or storage errors
*/
func (service *Service) CreateAccount(context context.Context, input CreateAccountInput) (Account, error) {
	// Verify username uniqueness. Return a client-safe Conflict err.
	if _, err := service.accountRepository.FindByUsername(context, input.Username); err == nil {
		return Account{}, apperr.Conflict("Username is already taken")
	} else if !errors.Is(err, dberr.ErrNotFound) {
		return Account{}, err
	}

	if !input.Role.AtLeast(sec.RoleCounselor) {
		return Account{}, apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: counselor, methodist, admin",
		})
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return Account{}, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	return service.accountRepository.Create(context, input.Username, hashedPassword, string(input.Role))
}

// ListAccounts returns every staff account. Admin-only.
func (service *Service) ListAccounts(context context.Context) ([]Account, error) {
	return service.accountRepository.List(context)
}

// ChangeRole updates an account's authorization level. Admin-only.
func (service *Service) ChangeRole(context context.Context, accountID int64, role sec.UserRole) error {
	if !role.AtLeast(sec.RoleCounselor) {
		return apperr.ValidationError("Unknown role", apperr.FieldError{
			Field:   FieldRole,
			Message: "Must be one of: counselor, methodist, admin",
		})
	}
	return service.accountRepository.UpdateRole(context, accountID, string(role))
}

// DeleteAccounts removes staff accounts. Admin-only.
func (service *Service) DeleteAccounts(context context.Context, ids ...int64) ([]int64, error) {
	return service.accountRepository.Delete(context, ids...)
}
