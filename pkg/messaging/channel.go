package messaging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
)

const (
	CHANNEL_EMAIL = "email"
	CHANNEL_SMS   = "sms"
)

var ErrEmptyRecipient = errors.New("empty recipient")

// DeliveryError reports a failed dispatch on one channel.
type DeliveryError struct {
	Channel string
	Err     error
}

func (e *DeliveryError) Error() string {
	return e.Channel + " delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type EmailSender interface {
	Send(ctx context.Context, email *types.OutgoingEmail) error
}

type SMSGateway interface {
	SendSMS(ctx context.Context, to string, message string) error
}

// DeliveryLog records what was sent. Implemented by the messaging DB service.
type DeliveryLog interface {
	AddToSentSMS(ctx context.Context, sms types.SentSMS) (types.SentSMS, error)
	AddToSentEmails(ctx context.Context, email types.OutgoingEmail) (types.OutgoingEmail, error)
	AddToOutgoingEmails(ctx context.Context, email types.OutgoingEmail) (types.OutgoingEmail, error)
}

// Channel delivers emails and text messages and reports every failure to the caller.
type Channel struct {
	email         EmailSender
	sms           SMSGateway
	log           DeliveryLog
	defaultRegion string
}

// NewChannel creates a notification channel. log may be nil to disable the delivery log.
func NewChannel(email EmailSender, smsGateway SMSGateway, log DeliveryLog, defaultRegion string) *Channel {
	if defaultRegion == "" {
		defaultRegion = sms.DEFAULT_PHONE_REGION
	}
	return &Channel{
		email:         email,
		sms:           smsGateway,
		log:           log,
		defaultRegion: defaultRegion,
	}
}

type messageTypeKey struct{}

// WithMessageType tags the messages sent with ctx in the delivery log.
func WithMessageType(ctx context.Context, messageType string) context.Context {
	return context.WithValue(ctx, messageTypeKey{}, messageType)
}

func messageTypeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(messageTypeKey{}).(string); ok {
		return v
	}
	return ""
}

func (c *Channel) SendEmail(ctx context.Context, to string, subject string, body string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return &DeliveryError{Channel: CHANNEL_EMAIL, Err: ErrEmptyRecipient}
	}
	if c.email == nil {
		return &DeliveryError{Channel: CHANNEL_EMAIL, Err: errors.New("email transport not configured")}
	}

	outgoing := types.OutgoingEmail{
		MessageType: messageTypeFrom(ctx),
		To:          []string{to},
		Subject:     subject,
		Content:     body,
	}

	if err := c.email.Send(ctx, &outgoing); err != nil {
		slog.Error("failed to send email", slog.String("messageType", outgoing.MessageType), slog.String("error", err.Error()))
		if c.log != nil {
			outgoing.LastSendAttempt = time.Now().Unix()
			outgoing.LastError = err.Error()
			// the request may already be cancelled; the record must still be written
			if _, errS := c.log.AddToOutgoingEmails(context.WithoutCancel(ctx), outgoing); errS != nil {
				slog.Error("failed to save outgoing email", slog.String("error", errS.Error()))
			}
		}
		return &DeliveryError{Channel: CHANNEL_EMAIL, Err: err}
	}

	if c.log != nil {
		if _, err := c.log.AddToSentEmails(ctx, outgoing); err != nil {
			slog.Error("failed to save sent email", slog.String("error", err.Error()))
		}
	}
	slog.Debug("email sent", slog.String("messageType", outgoing.MessageType))
	return nil
}

// SendSMS normalises the number before dispatch; an invalid number fails without contacting the gateway.
func (c *Channel) SendSMS(ctx context.Context, to string, body string) error {
	phone, err := sms.NormalizePhoneNumber(to, c.defaultRegion)
	if err != nil {
		return &DeliveryError{Channel: CHANNEL_SMS, Err: err}
	}
	if c.sms == nil {
		return &DeliveryError{Channel: CHANNEL_SMS, Err: sms.ErrGatewayNotConfigured}
	}

	if err := c.sms.SendSMS(ctx, phone, body); err != nil {
		slog.Error("failed to send sms", slog.String("error", err.Error()))
		return &DeliveryError{Channel: CHANNEL_SMS, Err: err}
	}

	if c.log != nil {
		_, err := c.log.AddToSentSMS(ctx, types.SentSMS{
			MessageType: messageTypeFrom(ctx),
			PhoneNumber: phone,
			SentAt:      time.Now().UTC(),
		})
		if err != nil {
			slog.Error("failed to save sent sms", slog.String("error", err.Error()))
		}
	}
	return nil
}
