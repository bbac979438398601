// Package e2e drives the running adwatch service end to end over HTTP.
// Scenarios live in features/; step definitions live in steps/.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// TestContext carries shared state across the steps of one scenario: the
// service address, seeded operator credentials, the bearer token once issued,
// and the last HTTP response.
type TestContext struct {
	BaseURL      string
	ClientID     string
	ClientSecret string

	client      *http.Client
	accessToken string

	lastStatus int
	lastBody   map[string]interface{}
	lastRaw    []byte
}

// NewTestContext reads the target service location and seeded credentials
// from the environment.
func NewTestContext() *TestContext {
	return &TestContext{
		BaseURL:      envOr("ADWATCH_E2E_URL", "http://localhost:8080"),
		ClientID:     envOr("ADWATCH_E2E_CLIENT_ID", "e2e-operator"),
		ClientSecret: envOr("ADWATCH_E2E_CLIENT_SECRET", "e2e-secret"),
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.accessToken = ""
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.lastRaw = nil
}

// POST sends a JSON body to the service, attaching the bearer token when one
// has been issued.
func (tc *TestContext) POST(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

// GET sends a GET request with optional extra headers.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	if tc.accessToken != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody = nil
	tc.lastRaw = nil

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return err
	}
	tc.lastRaw = buf.Bytes()
	if len(tc.lastRaw) > 0 {
		// Non-object bodies (arrays, plain text) stay available via lastRaw.
		_ = json.Unmarshal(tc.lastRaw, &tc.lastBody)
	}
	return nil
}

// LastStatus returns the status code of the last response.
func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

// GetResponseField returns a field from the last JSON response body,
// traversing nested objects with dot-separated paths.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	if tc.lastBody == nil {
		return nil, fmt.Errorf("no JSON response recorded")
	}
	var current interface{} = tc.lastBody
	for _, part := range splitPath(field) {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", field, part)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not present in response", field)
		}
	}
	return current, nil
}

func splitPath(field string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == '.' {
			parts = append(parts, field[start:i])
			start = i + 1
		}
	}
	return append(parts, field[start:])
}

// Credentials returns the seeded operator client credentials.
func (tc *TestContext) Credentials() (clientID, clientSecret string) {
	return tc.ClientID, tc.ClientSecret
}

// SetAccessToken stores the bearer token for subsequent requests.
func (tc *TestContext) SetAccessToken(token string) {
	tc.accessToken = token
}

// AccessToken returns the stored bearer token.
func (tc *TestContext) AccessToken() string {
	return tc.accessToken
}
