// Package waitlist submits an email address to the product waitlist.
package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no endpoint is set.
var ErrNotConfigured = errors.New("waitlist endpoint not configured")

// DefaultTimeout bounds a submission when the caller's client has none.
const DefaultTimeout = 10 * time.Second

// Submitter hands an email address to the waitlist backend.
type Submitter interface {
	Submit(ctx context.Context, email string) error
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("waitlist rejected submission: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("waitlist rejected submission: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// HTTPSubmitter POSTs {"email": ...} to Endpoint.
type HTTPSubmitter struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPSubmitter returns a submitter with its own client bounded by timeout.
func NewHTTPSubmitter(endpoint string, timeout time.Duration) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSubmitter{Endpoint: endpoint, Client: &http.Client{Timeout: timeout}}
}

type request struct {
	Email string `json:"email"`
}

// Submit sends the address as-is. Retries and address validation are left
// to the backend.
func (s *HTTPSubmitter) Submit(ctx context.Context, email string) error {
	if s == nil || strings.TrimSpace(s.Endpoint) == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(request{Email: email})
	if err != nil {
		return fmt.Errorf("encode waitlist request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build waitlist request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit waitlist request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Func adapts a plain function to Submitter.
type Func func(ctx context.Context, email string) error

// Submit calls f.
func (f Func) Submit(ctx context.Context, email string) error {
	return f(ctx, email)
}
