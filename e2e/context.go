// Package e2e drives black-box scenarios against a running mintgate
// instance. Point MINTGATE_BASE_URL at the server under test; tokens are
// minted locally with the server's signing key.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TestContext carries per-scenario state: the authenticated identity, the
// last response, and its decoded body.
type TestContext struct {
	BaseURL string
	Client  *http.Client

	UserID string
	Token  string

	LastStatus int
	LastBody   map[string]any
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticate mints a fresh user identity and a bearer token the server
// will accept. The signing key must match the server's JWT_SIGNING_KEY.
func (tc *TestContext) Authenticate() error {
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "dev-secret-key-change-in-production"
	}

	tc.UserID = uuid.NewString()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":         tc.UserID,
		"organization_id": uuid.NewString(),
		"iss":             envOr("JWT_ISSUER", "mintgate"),
		"aud":             envOr("JWT_AUDIENCE", "mintgate-api"),
		"iat":             now.Unix(),
		"exp":             now.Add(time.Hour).Unix(),
		"jti":             uuid.NewString(),
	})

	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	tc.Token = signed
	return nil
}

// Do sends a request and decodes the JSON response body.
func (tc *TestContext) Do(method, path string, body any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, tc.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.Token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.Token)
	}

	resp, err := tc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.LastStatus = resp.StatusCode
	tc.LastBody = nil
	if err := json.NewDecoder(resp.Body).Decode(&tc.LastBody); err != nil {
		// Some error responses carry no body; the status checks still work.
		tc.LastBody = map[string]any{}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
