package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MailSender is implemented by the smtp connection pools.
type MailSender interface {
	SendMail(to []string, subject string, htmlContent string) error
}

type HttpEndpoints struct {
	apiKeys             []string
	highPrioSmtpClients MailSender
	smtpClients         MailSender
}

func NewHTTPHandler(
	apiKeys []string,
	highPrioSmtpClients MailSender,
	smtpClients MailSender,
) *HttpEndpoints {
	return &HttpEndpoints{
		apiKeys:             apiKeys,
		highPrioSmtpClients: highPrioSmtpClients,
		smtpClients:         smtpClients,
	}
}
