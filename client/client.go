// Package client talks to the leads API. Client wraps the four lead
// operations; Intake adds the submit-then-wait flow used by the public form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phbpx/leadgate"
)

// DefaultPollInterval is how often status and list refreshes are requested.
const DefaultPollInterval = 5 * time.Second

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leads api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Submission is the answer to a lead submission.
type Submission struct {
	LeadID   string `json:"leadId"`
	Approved bool   `json:"approved"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// AdminToken is sent as a bearer token when set.
	AdminToken string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Submit(ctx context.Context, email string) (Submission, error) {
	var out Submission
	err := c.do(ctx, http.MethodPost, "/leads", map[string]string{"email": email}, &out)
	return out, err
}

func (c *Client) List(ctx context.Context) ([]leadgate.Lead, error) {
	var out struct {
		Leads []leadgate.Lead `json:"leads"`
	}
	if err := c.do(ctx, http.MethodGet, "/leads", nil, &out); err != nil {
		return nil, err
	}
	return out.Leads, nil
}

func (c *Client) Get(ctx context.Context, id string) (leadgate.Lead, error) {
	var out struct {
		Lead leadgate.Lead `json:"lead"`
	}
	err := c.do(ctx, http.MethodGet, "/leads/"+url.PathEscape(id), nil, &out)
	return out.Lead, err
}

func (c *Client) SetApproved(ctx context.Context, id string, approved bool) (leadgate.Lead, error) {
	var out struct {
		Lead leadgate.Lead `json:"lead"`
	}
	body := map[string]bool{"approved": approved}
	err := c.do(ctx, http.MethodPatch, "/leads/"+url.PathEscape(id), body, &out)
	return out.Lead, err
}

// Watch hands a fresh lead list to fn immediately and then every interval
// until ctx is done. A failed refresh is passed to fn and polling goes on.
func (c *Client) Watch(ctx context.Context, interval time.Duration, fn func([]leadgate.Lead, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(c.List(ctx))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AdminToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
