package emailsending

import (
	"context"
	"errors"
	"fmt"

	httpclient "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/http-client"
	messagingTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
	smtp_client "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/smtp-client"
)

var ErrNotInitialized = errors.New("connection to smtp bridge not initialized")

type SendEmailReq struct {
	To       []string `json:"to"`
	Subject  string   `json:"subject"`
	Content  string   `json:"content"`
	HighPrio bool     `json:"highPrio"`
}

// BridgeSender posts emails to an smtp bridge service.
type BridgeSender struct {
	httpClient *httpclient.ClientConfig
}

func NewBridgeSender(clientConfig *httpclient.ClientConfig) *BridgeSender {
	return &BridgeSender{httpClient: clientConfig}
}

func (s *BridgeSender) Send(ctx context.Context, outgoing *messagingTypes.OutgoingEmail) error {
	if s == nil || s.httpClient == nil || s.httpClient.RootURL == "" {
		return ErrNotInitialized
	}

	sendEmailReq := SendEmailReq{
		To:       outgoing.To,
		Subject:  outgoing.Subject,
		Content:  outgoing.Content,
		HighPrio: true,
	}
	resp, err := s.httpClient.RunHTTPcall(ctx, "/send-email", sendEmailReq)
	if resp != nil {
		if errMsg, hasError := resp["error"]; hasError {
			return fmt.Errorf("smtp bridge: %v", errMsg)
		}
	}
	return err
}

// SmtpSender sends emails directly through the smtp connection pools.
type SmtpSender struct {
	clients *smtp_client.SmtpClients
}

func NewSmtpSender(clients *smtp_client.SmtpClients) *SmtpSender {
	return &SmtpSender{clients: clients}
}

// Send honours ctx only before handing the email to the pool.
func (s *SmtpSender) Send(ctx context.Context, outgoing *messagingTypes.OutgoingEmail) error {
	if s == nil || s.clients == nil {
		return smtp_client.ErrNoServers
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.clients.SendMail(outgoing.To, outgoing.Subject, outgoing.Content)
}
