package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/gin-gonic/gin"
)

// writeError maps an error onto a status code and a client safe message.
func writeError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		slog.Debug("invalid request", slog.String("path", c.Request.URL.Path), slog.Any("fields", validationErr.FieldNames()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
		return
	}

	var deliveryErr *messaging.DeliveryError
	if errors.As(err, &deliveryErr) {
		slog.Error("verification message could not be delivered", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification message could not be delivered: " + deliveryErr.Channel})
		return
	}

	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	} else {
		slog.Warn("request rejected", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": msg})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usermanagement.ErrDuplicateAccount),
		errors.Is(err, usermanagement.ErrAgeRestriction),
		errors.Is(err, usermanagement.ErrPasswordMismatch),
		errors.Is(err, usermanagement.ErrAlreadyVerified),
		errors.Is(err, usermanagement.ErrProfileNameTaken),
		errors.Is(err, catalog.ErrDuplicateName):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usermanagement.ErrInvalidCredentials),
		errors.Is(err, usermanagement.ErrInvalidPin):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, jwthandling.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, jwthandling.ErrTokenInvalid):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, usermanagement.ErrResendCooldown):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
