// Package adapters provides concrete implementations of the readiness
// collaborator interfaces: HTTP clients for the external account-state and
// KYC providers, and deterministic mocks for development and tests.
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

const clientTimeout = 5 * time.Second

// AccountStateClient queries the provisioning service over HTTP.
type AccountStateClient struct {
	baseURL string
	client  *http.Client
}

func NewAccountStateClient(baseURL string) *AccountStateClient {
	return &AccountStateClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: clientTimeout},
	}
}

func (c *AccountStateClient) AccountState(ctx context.Context, userID id.UserID) (id.AccountState, error) {
	url := fmt.Sprintf("%s/accounts/%s/state", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build account state request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("account state request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return id.AccountNotInitialized, nil
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return "", fmt.Errorf("account state request: status %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("account state request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode account state response: %w", err)
	}
	state := id.AccountState(body.State)
	if !state.IsValid() {
		return "", fmt.Errorf("account state response: unknown state %q", body.State)
	}
	return state, nil
}

// MockAccountStateClient returns a fixed state with configurable latency to
// mimic real-world calls.
type MockAccountStateClient struct {
	Latency time.Duration
	State   id.AccountState
}

func (c MockAccountStateClient) AccountState(_ context.Context, _ id.UserID) (id.AccountState, error) {
	time.Sleep(c.Latency)
	if c.State == "" {
		return id.AccountReady, nil
	}
	return c.State, nil
}
