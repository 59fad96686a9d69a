package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/messaging/types"
)

const defaultRequestTimeout = 10 * time.Second

var ErrGatewayNotConfigured = errors.New("connection to sms gateway not initialized")

type SMSTo struct {
	Number string `json:"number"`
}

type SMSBody struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type SingleSMS struct {
	AllowedChannels []string `json:"allowedChannels"`
	From            string   `json:"from"`
	To              []SMSTo  `json:"to"`
	Body            SMSBody  `json:"body"`
}

type SMSAuth struct {
	Producttoken string `json:"producttoken"`
}

type SMSMessages struct {
	Authentication SMSAuth     `json:"authentication"`
	Msg            []SingleSMS `json:"msg"`
}

type SMSSendingReq struct {
	Messages SMSMessages `json:"messages"`
}

// Gateway sends text messages through a CM-style JSON HTTP gateway.
type Gateway struct {
	config     types.SMSGatewayConfig
	httpClient *http.Client
}

func NewGateway(config types.SMSGatewayConfig) *Gateway {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Gateway{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SendSMS posts one message to an already normalised number.
func (g *Gateway) SendSMS(ctx context.Context, to string, message string) error {
	if g == nil || g.config.URL == "" {
		return ErrGatewayNotConfigured
	}

	payload := SMSSendingReq{
		Messages: SMSMessages{
			Authentication: SMSAuth{
				Producttoken: g.config.APIKey,
			},
			Msg: []SingleSMS{
				{
					AllowedChannels: []string{"SMS"},
					From:            g.config.From,
					To: []SMSTo{
						{
							Number: to,
						},
					},
					Body: SMSBody{
						Type:    "auto",
						Content: message,
					},
				},
			},
		},
	}

	json_data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.URL, bytes.NewBuffer(json_data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("sms gateway returned error", slog.String("status", resp.Status))
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var res map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&res)
	if err != nil {
		slog.Error("Error decoding response", slog.String("error", err.Error()))
		return err
	}

	errorCode, ok := res["errorCode"]
	if !ok {
		slog.Error("no error code in response")
		return errors.New("no error code in response")
	}

	// JSON numbers decode as float64
	errorCodeNum, ok := errorCode.(float64)
	if !ok {
		slog.Error("error code is not a number")
		return errors.New("error code is not a number")
	}
	if errorCodeNum != 0 {
		slog.Error("sms gateway returned error", slog.Int("errorCode", int(errorCodeNum)))
		return fmt.Errorf("sms gateway returned error code %d", int(errorCodeNum))
	}

	return nil
}
