package usermanagement

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration creates an unverified account", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		assert.NotEmpty(t, res.VerificationToken)
		assert.NotEmpty(t, res.AccountID)

		acc := env.accounts.get("a@x.com")
		assert.False(t, acc.Verified)
		assert.Equal(t, 1234, acc.Pin)
		assert.Equal(t, "+50688880000", acc.Phone)
		assert.Len(t, acc.VerificationCode, VERIFICATION_CODE_LENGTH)
		assert.NotEqual(t, "p", acc.PasswordHash)
		assert.Equal(t, env.now.Unix(), acc.Timestamps.CreatedAt)

		claims, err := env.tokens.ValidateVerificationToken(res.VerificationToken)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, acc.VerificationCode, claims.Code)
	})

	t.Run("both legs are dispatched", func(t *testing.T) {
		env := newTestEnv(t)

		res, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)

		require.Len(t, env.notifier.sms, 1)
		acc := env.accounts.get("a@x.com")
		assert.Equal(t, "+50688880000", env.notifier.sms[0].To)
		assert.Contains(t, env.notifier.sms[0].Body, acc.VerificationCode)

		require.Len(t, env.notifier.emails, 1)
		assert.Equal(t, "a@x.com", env.notifier.emails[0].To)
		assert.Equal(t, DEFAULT_VERIFICATION_EMAIL_SUBJECT, env.notifier.emails[0].Subject)
		assert.Contains(t, env.notifier.emails[0].Body, "http://localhost:3000/api/verify?token="+url.QueryEscape(res.VerificationToken))
	})

	t.Run("email is sanitized", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.Email = "  A@X.com \n"

		_, err := env.service.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", env.accounts.get("a@x.com").Email)
	})

	t.Run("addresses rejected at login are rejected at registration", func(t *testing.T) {
		for _, email := range []string{"a!b@x.com", "a/b@x.com", "josé@x.com", "a@localhost.x", "a{b}@x.com"} {
			env := newTestEnv(t)
			req := validRegistration()
			req.Email = email

			_, err := env.service.Register(ctx, req)
			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr, email)
			assert.Equal(t, []string{"correoElectronico"}, vErr.FieldNames(), email)
			assert.Equal(t, 0, env.accounts.inserts, email)
		}
	})

	t.Run("missing fields are all listed", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.Email = ""
		req.Pin = nil
		req.Phone = ""
		req.BirthDate = ""

		_, err := env.service.Register(ctx, req)
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"correoElectronico", "fechaNacimiento", "pin", "telefono"}, vErr.FieldNames())
		assert.Equal(t, 0, env.accounts.inserts)
		assert.Empty(t, env.notifier.sms)
	})

	t.Run("pin zero is a valid pin", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.Pin = intPtr(0)

		_, err := env.service.Register(ctx, req)
		require.NoError(t, err)
	})

	t.Run("malformed birth date", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.BirthDate = "01/01/2000"

		_, err := env.service.Register(ctx, req)
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"fechaNacimiento"}, vErr.FieldNames())
	})

	t.Run("under minimum age", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.BirthDate = "2006-06-02"

		_, err := env.service.Register(ctx, req)
		assert.ErrorIs(t, err, ErrAgeRestriction)
		assert.Equal(t, 0, env.accounts.inserts)
	})

	t.Run("turning eighteen today", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.BirthDate = "2006-06-01"

		_, err := env.service.Register(ctx, req)
		assert.NoError(t, err)
	})

	t.Run("password mismatch", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.PasswordRepeat = "q"

		_, err := env.service.Register(ctx, req)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
		assert.Equal(t, 0, env.accounts.inserts)
	})

	t.Run("invalid phone number", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRegistration()
		req.Phone = "123"

		_, err := env.service.Register(ctx, req)
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.ErrorIs(t, err, sms.ErrInvalidPhoneNumber)
		assert.Equal(t, 0, env.accounts.inserts)
	})

	t.Run("duplicate email performs no write", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)

		_, err = env.service.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, ErrDuplicateAccount)
		assert.Equal(t, 1, env.accounts.inserts)
		assert.Len(t, env.notifier.sms, 1)
	})

	t.Run("store unavailable", func(t *testing.T) {
		env := newTestEnv(t)
		env.accounts.failWith = errors.New("connection refused")

		_, err := env.service.Register(ctx, validRegistration())
		assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	})

	t.Run("sms failure keeps the account", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.smsErr = errors.New("gateway down")

		res, err := env.service.Register(ctx, validRegistration())
		var dErr *messaging.DeliveryError
		require.ErrorAs(t, err, &dErr)
		assert.Equal(t, messaging.CHANNEL_SMS, dErr.Channel)
		assert.NotEmpty(t, res.AccountID)
		assert.Equal(t, 1, env.accounts.inserts)
		assert.Len(t, env.notifier.emails, 1)
	})

	t.Run("both legs failing reports both", func(t *testing.T) {
		env := newTestEnv(t)
		env.notifier.smsErr = errors.New("gateway down")
		env.notifier.emailErr = errors.New("smtp down")

		_, err := env.service.Register(ctx, validRegistration())
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "gateway down"))
		assert.True(t, strings.Contains(err.Error(), "smtp down"))
		assert.Equal(t, 1, env.accounts.inserts)
	})
}

func TestResendVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a different code after the cooldown", func(t *testing.T) {
		env := newTestEnv(t)
		first, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		oldCode := env.accounts.get("a@x.com").VerificationCode

		env.now = env.now.Add(2 * time.Minute)
		token, err := env.service.ResendVerification(ctx, "a@x.com")
		require.NoError(t, err)
		assert.NotEqual(t, first.VerificationToken, token)

		newCode := env.accounts.get("a@x.com").VerificationCode
		assert.NotEqual(t, oldCode, newCode)
		assert.Len(t, env.notifier.sms, 2)
		assert.Len(t, env.notifier.emails, 2)

		// the old token no longer matches
		_, err = env.service.ConfirmVerification(ctx, first.VerificationToken)
		assert.ErrorIs(t, err, ErrAccountNotFound)
		_, err = env.service.ConfirmVerification(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("within the cooldown", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)

		_, err = env.service.ResendVerification(ctx, "a@x.com")
		assert.ErrorIs(t, err, ErrResendCooldown)
	})

	t.Run("unknown account", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.ResendVerification(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("already verified", func(t *testing.T) {
		env := newTestEnv(t)
		res, err := env.service.Register(ctx, validRegistration())
		require.NoError(t, err)
		_, err = env.service.ConfirmVerification(ctx, res.VerificationToken)
		require.NoError(t, err)

		env.now = env.now.Add(time.Hour)
		_, err = env.service.ResendVerification(ctx, "a@x.com")
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})

	t.Run("empty email", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.service.ResendVerification(ctx, " ")
		var vErr *apperrors.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
