package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	umUtils "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/utils"
)

type LoginResult struct {
	Token     string
	AccountID string
	Pin       int
}

// Login checks the credentials of a verified account and issues a session token.
// Every failure cause yields ErrInvalidCredentials. A non-empty code must match the stored one-time code.
func (s *Service) Login(ctx context.Context, email string, password string, code string) (LoginResult, error) {
	email = umUtils.SanitizeEmail(email)
	if !umUtils.CheckEmailFormat(email) || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	account, err := s.accounts.FindVerifiedAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			slog.Debug("login for unknown or unverified account", slog.String("email", umUtils.BlurEmailAddress(email)))
			if s.placeholderHash != "" {
				_, _ = s.comparePassword(s.placeholderHash, password)
			}
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, apperrors.StoreUnavailable("find account", err)
	}

	match, err := s.comparePassword(account.PasswordHash, password)
	if err != nil {
		slog.Error("stored password hash unreadable", slog.String("accountID", account.ID.Hex()), slog.String("error", err.Error()))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !match {
		slog.Debug("login with wrong password", slog.String("accountID", account.ID.Hex()))
		return LoginResult{}, ErrInvalidCredentials
	}

	code = strings.TrimSpace(code)
	if code != "" && code != account.VerificationCode {
		slog.Debug("login with wrong code", slog.String("accountID", account.ID.Hex()))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateSessionToken(account.ID.Hex(), s.config.SessionTokenTTL)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		slog.Error("failed to update last login", slog.String("accountID", account.ID.Hex()), slog.String("error", err.Error()))
	}

	return LoginResult{
		Token:     token,
		AccountID: account.ID.Hex(),
		Pin:       account.Pin,
	}, nil
}

// LoginAccountByPin is a quick switch gate for the account. It issues no token.
func (s *Service) LoginAccountByPin(ctx context.Context, pin int) error {
	_, err := s.accounts.FindAccountByPin(ctx, pin)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrInvalidPin
		}
		return apperrors.StoreUnavailable("find account by pin", err)
	}
	return nil
}

// LoginProfileByPin is a quick switch gate for a restricted profile. It issues no token.
// An empty ownerID matches profiles of every owner.
func (s *Service) LoginProfileByPin(ctx context.Context, pin string, ownerID string) (userTypes.RestrictedProfile, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return userTypes.RestrictedProfile{}, ErrInvalidPin
	}
	profile, err := s.profiles.FindRestrictedProfileByPin(ctx, pin, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return userTypes.RestrictedProfile{}, ErrInvalidPin
		}
		return userTypes.RestrictedProfile{}, apperrors.StoreUnavailable("find profile by pin", err)
	}
	return profile, nil
}
