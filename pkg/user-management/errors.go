package usermanagement

import (
	"errors"
	"fmt"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
)

var (
	ErrDuplicateAccount   = errors.New("an account with this email already exists")
	ErrAgeRestriction     = errors.New("account holder is under the minimum age")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email, password or code")
	ErrInvalidPin         = errors.New("invalid pin")
	ErrAlreadyVerified    = errors.New("account is already verified")
	ErrResendCooldown     = errors.New("verification was sent recently, try again later")
	ErrProfileNameTaken   = errors.New("a profile with this name already exists")

	ErrAccountNotFound = fmt.Errorf("account %w", apperrors.ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile %w", apperrors.ErrNotFound)
)
