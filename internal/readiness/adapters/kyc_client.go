package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	id "mintgate/pkg/domain"
	"mintgate/pkg/platform/sentinel"
)

// KycClient queries the KYC provider over HTTP.
type KycClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewKycClient(baseURL, apiKey string) *KycClient {
	return &KycClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: clientTimeout},
	}
}

func (c *KycClient) KycStatus(ctx context.Context, userID id.UserID) (id.KycStatus, error) {
	url := fmt.Sprintf("%s/kyc/%s/status", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build kyc status request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("kyc status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return id.KycNotStarted, nil
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("kyc status request: status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kyc status request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode kyc status response: %w", err)
	}
	status, err := id.ParseKycStatus(body.Status)
	if err != nil {
		return "", fmt.Errorf("kyc status response: %w", err)
	}
	return status, nil
}

// MockKycClient returns a fixed status with configurable latency.
type MockKycClient struct {
	Latency time.Duration
	Status  id.KycStatus
}

func (c MockKycClient) KycStatus(_ context.Context, _ id.UserID) (id.KycStatus, error) {
	time.Sleep(c.Latency)
	if c.Status == "" {
		return id.KycApproved, nil
	}
	return c.Status, nil
}
