package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate account", usermanagement.ErrDuplicateAccount, http.StatusBadRequest},
		{"age", usermanagement.ErrAgeRestriction, http.StatusBadRequest},
		{"password mismatch", usermanagement.ErrPasswordMismatch, http.StatusBadRequest},
		{"duplicate playlist", catalog.ErrDuplicateName, http.StatusBadRequest},
		{"credentials", usermanagement.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", jwthandling.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid token", fmt.Errorf("%w: bad signature", jwthandling.ErrTokenInvalid), http.StatusUnauthorized},
		{"cooldown", usermanagement.ErrResendCooldown, http.StatusTooManyRequests},
		{"other account", apperrors.ErrForbidden, http.StatusForbidden},
		{"playlist not found", catalog.ErrPlaylistNotFound, http.StatusNotFound},
		{"account not found", usermanagement.ErrAccountNotFound, http.StatusNotFound},
		{"store", apperrors.StoreUnavailable("find account", errors.New("connection refused")), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}

	t.Run("internal details are hidden", func(t *testing.T) {
		_, msg := statusFor(apperrors.StoreUnavailable("find account", errors.New("connection refused")))
		assert.Equal(t, "internal server error", msg)
	})
}
