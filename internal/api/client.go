// Package api is the typed REST client for the event-registration portal
// backend. Every endpoint gets explicit request and response structures;
// responses that fail to decode surface a malformed-response error
// instead of silently producing zero values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	hderrors "github.com/felixgeelhaar/hackdesk/internal/errors"
)

// Client is the portal API client
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a new portal API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token sent on authenticated requests
func (c *Client) SetToken(token string) {
	c.Token = token
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, wrapNetworkError(err)
	}

	return resp, nil
}

// wrapNetworkError marks err as a transport-level failure
func wrapNetworkError(err error) error {
	return hderrors.Wrap(hderrors.ErrCodeAPINetwork, "network error", err)
}

// APIError represents a non-success HTTP response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// errorResponse is the backend's error body shape
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse decodes the response body into target, turning non-2xx
// statuses into *APIError carrying the backend's message when present.
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		apiErr := &APIError{StatusCode: resp.StatusCode}

		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				apiErr.Message = errResp.Message
			} else if errResp.Error != "" {
				apiErr.Message = errResp.Error
			}
		}

		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return hderrors.Wrap(hderrors.ErrCodeAPIDecode, "malformed response from backend", err)
		}
	}

	return nil
}

// IsNotFound reports whether err is an HTTP 404 from the backend
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an HTTP 409 from the backend,
// the "already decided by someone else" outcome
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsUnauthorized reports whether err is an HTTP 401 or 403, a
// definitive verdict on the session rather than a transport problem
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsMalformed reports whether err came from a response body that could
// not be decoded into the endpoint's typed shape
func IsMalformed(err error) bool {
	var perr *hderrors.PortalError
	return errors.As(err, &perr) && perr.Code == hderrors.ErrCodeAPIDecode
}

// IsNetwork reports whether err is a transport-level failure with no
// HTTP response at all
func IsNetwork(err error) bool {
	var perr *hderrors.PortalError
	return errors.As(err, &perr) && perr.Code == hderrors.ErrCodeAPINetwork
}

// Message extracts the backend-supplied message from err, falling back
// to the given default
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
