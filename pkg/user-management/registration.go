package usermanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/templates"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/pwhash"
	userTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/types"
	umUtils "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management/utils"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var birthDateLayouts = []string{"2006-01-02", time.RFC3339}

type RegistrationRequest struct {
	Email          string `json:"correoElectronico"`
	Password       string `json:"contraseña"`
	PasswordRepeat string `json:"repetirContraseña"`
	Pin            *int   `json:"pin"`
	FirstName      string `json:"nombre"`
	LastName       string `json:"apellido"`
	Country        string `json:"pais"`
	BirthDate      string `json:"fechaNacimiento"`
	Phone          string `json:"telefono"`
}

type RegistrationResult struct {
	AccountID         string
	VerificationToken string
}

func (r RegistrationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email, validation.By(validateEmailFormat)),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.PasswordRepeat, validation.Required),
		validation.Field(&r.Pin, validation.NotNil),
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.BirthDate, validation.Required, validation.By(validateBirthDate)),
		validation.Field(&r.Phone, validation.Required),
	)
}

// validateEmailFormat applies the address rule used at login so that every stored address can sign in.
func validateEmailFormat(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !umUtils.CheckEmailFormat(s) {
		return errors.New("must be a valid email address")
	}
	return nil
}

func validateBirthDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseBirthDate(s); err != nil {
		return errors.New("must be a date in the format YYYY-MM-DD")
	}
	return nil
}

func parseBirthDate(s string) (time.Time, error) {
	var err error
	for _, layout := range birthDateLayouts {
		var t time.Time
		t, err = time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Register creates an unverified account and sends its one-time code by SMS and a confirmation link by email.
// When a delivery leg fails, the account is kept and the returned error wraps a *messaging.DeliveryError.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) (RegistrationResult, error) {
	req.Email = umUtils.SanitizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := apperrors.FromValidation(req.Validate()); err != nil {
		return RegistrationResult{}, err
	}

	birthDate, _ := parseBirthDate(req.BirthDate)
	if umUtils.AgeAt(birthDate, s.config.Now()) < s.config.MinimumAge {
		return RegistrationResult{}, ErrAgeRestriction
	}

	if req.Password != req.PasswordRepeat {
		return RegistrationResult{}, ErrPasswordMismatch
	}

	phone, err := sms.NormalizePhoneNumber(req.Phone, s.config.DefaultPhoneRegion)
	if err != nil {
		vErr := apperrors.NewValidationError(map[string]string{"telefono": "must be a valid phone number"})
		vErr.Cause = err
		return RegistrationResult{}, vErr
	}

	// fast pre-check, the unique index on email is authoritative
	_, err = s.accounts.FindAccountByEmail(ctx, req.Email)
	if err == nil {
		return RegistrationResult{}, ErrDuplicateAccount
	} else if !errors.Is(err, db.ErrNotFound) {
		return RegistrationResult{}, apperrors.StoreUnavailable("find account", err)
	}

	code, err := umUtils.GenerateOTPCode(VERIFICATION_CODE_LENGTH)
	if err != nil {
		return RegistrationResult{}, err
	}

	passwordHash, err := pwhash.HashPassword(req.Password)
	if err != nil {
		return RegistrationResult{}, err
	}

	now := s.config.Now().Unix()
	account := userTypes.Account{
		Email:            req.Email,
		PasswordHash:     passwordHash,
		Pin:              *req.Pin,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Country:          strings.TrimSpace(req.Country),
		BirthDate:        birthDate,
		Phone:            phone,
		Verified:         false,
		VerificationCode: code,
		Timestamps: userTypes.Timestamps{
			CreatedAt:    now,
			CodeIssuedAt: now,
		},
	}

	account, err = s.accounts.AddAccount(ctx, account)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return RegistrationResult{}, ErrDuplicateAccount
		}
		return RegistrationResult{}, apperrors.StoreUnavailable("add account", err)
	}
	slog.Info("account registered", slog.String("accountID", account.ID.Hex()), slog.String("email", umUtils.BlurEmailAddress(account.Email)))

	token, err := s.tokens.GenerateVerificationToken(account.Email, code, s.config.VerificationTokenTTL)
	if err != nil {
		return RegistrationResult{}, err
	}

	result := RegistrationResult{
		AccountID:         account.ID.Hex(),
		VerificationToken: token,
	}

	ctx = messaging.WithMessageType(ctx, MESSAGE_TYPE_REGISTRATION)
	if err := s.sendVerificationMessages(ctx, account, code, token); err != nil {
		slog.Error("verification delivery failed", slog.String("accountID", result.AccountID), slog.String("error", err.Error()))
		return result, err
	}
	return result, nil
}

// ResendVerification issues a fresh code for an unverified account and dispatches it again.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	email = umUtils.SanitizeEmail(email)
	if email == "" {
		return "", apperrors.NewValidationError(map[string]string{"correoElectronico": "cannot be blank"})
	}
	if !umUtils.CheckEmailFormat(email) {
		return "", apperrors.NewValidationError(map[string]string{"correoElectronico": "must be a valid email address"})
	}

	account, err := s.accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", apperrors.StoreUnavailable("find account", err)
	}
	if account.Verified {
		return "", ErrAlreadyVerified
	}

	lastIssued := time.Unix(account.Timestamps.CodeIssuedAt, 0)
	if s.config.Now().Sub(lastIssued) < s.config.ResendCooldown {
		return "", ErrResendCooldown
	}

	code, err := umUtils.GenerateDistinctOTPCode(VERIFICATION_CODE_LENGTH, account.VerificationCode)
	if err != nil {
		return "", err
	}
	if err := s.accounts.UpdateVerificationCode(ctx, email, code); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// verified in the meantime
			return "", ErrAlreadyVerified
		}
		return "", apperrors.StoreUnavailable("update verification code", err)
	}

	token, err := s.tokens.GenerateVerificationToken(email, code, s.config.VerificationTokenTTL)
	if err != nil {
		return "", err
	}

	ctx = messaging.WithMessageType(ctx, MESSAGE_TYPE_RESEND_VERIFICATION)
	if err := s.sendVerificationMessages(ctx, account, code, token); err != nil {
		slog.Error("verification delivery failed", slog.String("accountID", account.ID.Hex()), slog.String("error", err.Error()))
		return token, err
	}
	return token, nil
}

func (s *Service) verificationLink(token string) string {
	link := s.config.VerificationLinkURL
	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "token=" + url.QueryEscape(token)
}

// sendVerificationMessages runs the SMS and email legs concurrently and waits for both.
func (s *Service) sendVerificationMessages(ctx context.Context, account userTypes.Account, code string, token string) error {
	smsBody, err := templates.ResolveTextTemplate(
		"verification-sms",
		s.config.Templates.VerificationSMS,
		map[string]string{"name": account.FirstName, "code": code},
	)
	if err != nil {
		return err
	}
	emailBody, err := templates.ResolveTemplate(
		"verification-email",
		s.config.Templates.VerificationEmail,
		map[string]string{"name": account.FirstName, "link": s.verificationLink(token)},
	)
	if err != nil {
		return err
	}

	var (
		wg       sync.WaitGroup
		smsErr   error
		emailErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		smsErr = s.notifier.SendSMS(ctx, account.Phone, smsBody)
	}()
	go func() {
		defer wg.Done()
		emailErr = s.notifier.SendEmail(ctx, account.Email, s.config.Templates.VerificationEmailSubject, emailBody)
	}()
	wg.Wait()

	return errors.Join(smsErr, emailErr)
}
