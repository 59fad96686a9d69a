package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/sms"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) Send(ctx context.Context, email *types.OutgoingEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockSMSGateway struct {
	mock.Mock
}

func (m *mockSMSGateway) SendSMS(ctx context.Context, to string, message string) error {
	args := m.Called(ctx, to, message)
	return args.Error(0)
}

type memoryLog struct {
	sentSMS    []types.SentSMS
	sentEmails []types.OutgoingEmail
	outgoing   []types.OutgoingEmail
}

func (l *memoryLog) AddToSentSMS(_ context.Context, s types.SentSMS) (types.SentSMS, error) {
	l.sentSMS = append(l.sentSMS, s)
	return s, nil
}

func (l *memoryLog) AddToSentEmails(_ context.Context, e types.OutgoingEmail) (types.OutgoingEmail, error) {
	l.sentEmails = append(l.sentEmails, e)
	return e, nil
}

func (l *memoryLog) AddToOutgoingEmails(_ context.Context, e types.OutgoingEmail) (types.OutgoingEmail, error) {
	l.outgoing = append(l.outgoing, e)
	return e, nil
}

func TestChannelSendSMS(t *testing.T) {
	t.Run("normalises number before sending", func(t *testing.T) {
		gw := &mockSMSGateway{}
		gw.On("SendSMS", mock.Anything, "+50688880000", "code").Return(nil)
		log := &memoryLog{}

		c := NewChannel(nil, gw, log, "CR")
		err := c.SendSMS(WithMessageType(context.Background(), "verification-code"), "8888 0000", "code")
		require.NoError(t, err)
		gw.AssertExpectations(t)

		require.Len(t, log.sentSMS, 1)
		assert.Equal(t, "+50688880000", log.sentSMS[0].PhoneNumber)
		assert.Equal(t, "verification-code", log.sentSMS[0].MessageType)
	})

	t.Run("invalid number does not reach the gateway", func(t *testing.T) {
		gw := &mockSMSGateway{}
		c := NewChannel(nil, gw, nil, "CR")

		err := c.SendSMS(context.Background(), "123", "code")
		var delivery *DeliveryError
		require.ErrorAs(t, err, &delivery)
		assert.Equal(t, CHANNEL_SMS, delivery.Channel)
		assert.ErrorIs(t, err, sms.ErrInvalidPhoneNumber)
		gw.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("gateway failure is reported", func(t *testing.T) {
		gw := &mockSMSGateway{}
		cause := errors.New("gateway down")
		gw.On("SendSMS", mock.Anything, mock.Anything, mock.Anything).Return(cause)
		log := &memoryLog{}

		c := NewChannel(nil, gw, log, "CR")
		err := c.SendSMS(context.Background(), "+50688880000", "code")
		assert.ErrorIs(t, err, cause)
		assert.Empty(t, log.sentSMS)
	})

	t.Run("missing gateway", func(t *testing.T) {
		c := NewChannel(nil, nil, nil, "")
		err := c.SendSMS(context.Background(), "+50688880000", "code")
		assert.ErrorIs(t, err, sms.ErrGatewayNotConfigured)
	})
}

func TestChannelSendEmail(t *testing.T) {
	t.Run("success is logged", func(t *testing.T) {
		sender := &mockEmailSender{}
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *types.OutgoingEmail) bool {
			return len(e.To) == 1 && e.To[0] == "a@x.com" && e.Subject == "subject" && e.Content == "body"
		})).Return(nil)
		log := &memoryLog{}

		c := NewChannel(sender, nil, log, "CR")
		require.NoError(t, c.SendEmail(context.Background(), "a@x.com", "subject", "body"))
		sender.AssertExpectations(t)
		assert.Len(t, log.sentEmails, 1)
		assert.Empty(t, log.outgoing)
	})

	t.Run("failure is kept for retry", func(t *testing.T) {
		sender := &mockEmailSender{}
		cause := errors.New("smtp timeout")
		sender.On("Send", mock.Anything, mock.Anything).Return(cause)
		log := &memoryLog{}

		c := NewChannel(sender, nil, log, "CR")
		err := c.SendEmail(context.Background(), "a@x.com", "subject", "body")

		var delivery *DeliveryError
		require.ErrorAs(t, err, &delivery)
		assert.Equal(t, CHANNEL_EMAIL, delivery.Channel)
		assert.ErrorIs(t, err, cause)
		require.Len(t, log.outgoing, 1)
		assert.Equal(t, "smtp timeout", log.outgoing[0].LastError)
		assert.Empty(t, log.sentEmails)
	})

	t.Run("empty recipient", func(t *testing.T) {
		sender := &mockEmailSender{}
		c := NewChannel(sender, nil, nil, "CR")
		err := c.SendEmail(context.Background(), " ", "subject", "body")
		assert.ErrorIs(t, err, ErrEmptyRecipient)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
