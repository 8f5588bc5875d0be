// Package api is the HTTP client for the remote form service. It exposes the
// two operations the form client depends on: registering a user and fetching
// that user's form.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dshills/formrunner/internal/models"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the hosted form service
	DefaultBaseURL = "https://dynamic-form-generator-9rl7.onrender.com"

	registerPath = "/create-user"
	formPath     = "/get-form"

	msgRegisterFailed = "Failed to create user"
	msgFetchFailed    = "Failed to fetch form"
)

// Config configures the form service client
type Config struct {
	BaseURL string
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the underlying client, mainly for tests
	HTTPClient *http.Client
}

// Client talks to the form service. Requests are sent once; there are no
// retries and responses are not cached.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a form service client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{baseURL: baseURL, http: httpClient}
}

// BaseURL returns the service root the client sends requests to
func (c *Client) BaseURL() string {
	return c.baseURL
}

type registerResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// RegisterUser registers the user with the form service. A non-2xx status or
// an explicit success=false is returned as an *APIError carrying the
// service's message.
func (c *Client) RegisterUser(ctx context.Context, user models.User) (*models.RegistrationResult, error) {
	const op = "register"

	body, err := json.Marshal(user)
	if err != nil {
		return nil, newAPIError(op, ErrorCodeDecode, 0, msgRegisterFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+registerPath, bytes.NewReader(body))
	if err != nil {
		return nil, newAPIError(op, ErrorCodeNetwork, 0, msgRegisterFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("url", req.URL.String()).
		Str("roll_number", user.RollNumber).
		Msg("Registering user")

	status, data, err := c.do(req)
	if err != nil {
		return nil, newAPIError(op, ErrorCodeNetwork, 0, msgRegisterFailed, err)
	}

	var parsed registerResponse
	decodeErr := decodeBody(data, &parsed)

	if status < 200 || status > 299 {
		msg := parsed.Message
		if decodeErr != nil || msg == "" {
			msg = msgRegisterFailed
		}
		return nil, newAPIError(op, codeForStatus(status), status, msg, nil)
	}
	if decodeErr != nil {
		return nil, newAPIError(op, ErrorCodeDecode, status, msgRegisterFailed, decodeErr)
	}
	if parsed.Success != nil && !*parsed.Success {
		msg := parsed.Message
		if msg == "" {
			msg = msgRegisterFailed
		}
		return nil, newAPIError(op, ErrorCodeRejected, status, msg, nil)
	}

	log.Info().
		Str("roll_number", user.RollNumber).
		Int("status", status).
		Msg("User registered")

	return &models.RegistrationResult{Success: true, Message: parsed.Message}, nil
}

// FetchForm retrieves the form assigned to a roll number
func (c *Client) FetchForm(ctx context.Context, rollNumber string) (*models.FormResponse, error) {
	const op = "fetch_form"

	endpoint := c.baseURL + formPath + "?" + url.Values{"rollNumber": {rollNumber}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newAPIError(op, ErrorCodeNetwork, 0, msgFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", endpoint).Msg("Fetching form")

	status, data, err := c.do(req)
	if err != nil {
		return nil, newAPIError(op, ErrorCodeNetwork, 0, msgFetchFailed, err)
	}
	if status < 200 || status > 299 {
		return nil, newAPIError(op, codeForStatus(status), status, msgFetchFailed, nil)
	}

	var resp models.FormResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newAPIError(op, ErrorCodeDecode, status, msgFetchFailed, err)
	}

	log.Info().
		Str("form_id", resp.Form.FormID).
		Str("version", resp.Form.Version).
		Int("sections", len(resp.Form.Sections)).
		Msg("Form fetched")

	return &resp, nil
}

// do sends the request and reads the whole body
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

// decodeBody decodes JSON, treating an empty body as an empty object
func decodeBody(data []byte, v interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
