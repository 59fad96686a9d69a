package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	emailsending "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/email-sending"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	rg.POST("/send-email",
		mw.HasValidAPIKey(h.apiKeys),
		mw.RequirePayload(),
		h.sendEmail)
}

func validateSendEmailReq(req emailsending.SendEmailReq) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.To, validation.Required, validation.By(allEmailAddresses)),
		validation.Field(&req.Subject, validation.Required),
		validation.Field(&req.Content, validation.Required),
	)
}

func allEmailAddresses(value interface{}) error {
	addresses, _ := value.([]string)
	for _, addr := range addresses {
		if err := is.Email.Validate(addr); err != nil {
			return err
		}
	}
	return nil
}

func (h *HttpEndpoints) sendEmail(c *gin.Context) {
	var req emailsending.SendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}
	if err := validateSendEmailReq(req); err != nil {
		slog.Warn("invalid send email request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clients := h.smtpClients
	if req.HighPrio && h.highPrioSmtpClients != nil {
		clients = h.highPrioSmtpClients
	}

	if err := clients.SendMail(req.To, req.Subject, req.Content); err != nil {
		slog.Error("error when sending email", slog.Int("recipients", len(req.To)), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "email could not be sent"})
		return
	}

	slog.Debug("email sent", slog.Int("recipients", len(req.To)), slog.Bool("highPrio", req.HighPrio))
	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
