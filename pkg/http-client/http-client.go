package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers"
)

type ClientConfig struct {
	RootURL              string
	APIKey               string
	MTLSCertificatePaths *apihelpers.CertificatePaths
	Timeout              time.Duration
}

// RunHTTPcall posts payload as JSON to RootURL+pathname and decodes the JSON response.
// Non-2xx responses are returned as errors together with the decoded body, if any.
func (cConfig ClientConfig) RunHTTPcall(ctx context.Context, pathname string, payload interface{}) (map[string]interface{}, error) {
	json_data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	transport, err := getTransportWithMTLSConfig(cConfig.MTLSCertificatePaths)
	if err != nil {
		slog.Error("Error creating transport with mTLS config", slog.String("error", err.Error()))
		return nil, err
	}

	client := &http.Client{
		Timeout: cConfig.Timeout,
	}
	if transport != nil {
		client.Transport = transport
	}

	url := cConfig.RootURL + pathname
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(json_data))
	if err != nil {
		slog.Error("unexpected error in preparing http request", slog.String("error", err.Error()))
		return nil, err
	}
	if cConfig.APIKey != "" {
		req.Header.Set("Api-Key", cConfig.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		slog.Error("unexpected error in http call", slog.String("error", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	var res map[string]interface{}
	decodeErr := json.NewDecoder(resp.Body).Decode(&res)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		slog.Error("Error decoding response", slog.String("error", decodeErr.Error()))
		return nil, decodeErr
	}
	return res, nil
}

func getTransportWithMTLSConfig(mTLSCertificatePaths *apihelpers.CertificatePaths) (*http.Transport, error) {
	if mTLSCertificatePaths == nil {
		return nil, nil
	}

	tlsConfig, err := apihelpers.LoadClientTLSConfig(*mTLSCertificatePaths)
	if err != nil {
		return nil, err
	}

	return &http.Transport{
		TLSClientConfig: tlsConfig,
	}, nil
}
