package usermanagement

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
)

// ConfirmVerification flips the unverified account named by a confirmation token to verified.
// Confirming an already verified account again succeeds without changing it.
func (s *Service) ConfirmVerification(ctx context.Context, token string) (string, error) {
	claims, err := s.tokens.ValidateVerificationToken(token)
	if err != nil {
		return "", err
	}

	account, err := s.accounts.MarkAccountVerified(ctx, claims.Email, claims.Code)
	if err == nil {
		slog.Info("account verified", slog.String("accountID", account.ID.Hex()))
		return account.ID.Hex(), nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return "", apperrors.StoreUnavailable("mark account verified", err)
	}

	account, err = s.accounts.FindAccountByEmailAndCode(ctx, claims.Email, claims.Code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", apperrors.StoreUnavailable("find account", err)
	}
	if !account.Verified {
		return "", ErrAccountNotFound
	}
	slog.Debug("account already verified", slog.String("accountID", account.ID.Hex()))
	return account.ID.Hex(), nil
}
