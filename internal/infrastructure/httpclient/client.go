// Package httpclient is the JSON-over-HTTP transport shared by the CRM and
// e-signature gateways. Failures come back as *entities.ExternalServiceError.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salespipeline/internal/domain/entities"
)

var ErrMissingToken = errors.New("access token is empty")

type Options struct {
	System     entities.ExternalSystem
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

type Client struct {
	system     entities.ExternalSystem
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxRetries := opts.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelay := opts.BaseDelay
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	maxDelay := opts.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}
	return &Client{
		system:     opts.System,
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		token:      strings.TrimSpace(opts.Token),
		httpClient: httpClient,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		maxDelay:   maxDelay,
	}
}

// DoJSON sends payload (when non-nil) as JSON and decodes a 2xx body into out
// (when non-nil).
func (c *Client) DoJSON(ctx context.Context, op, method, path string, payload, out any) error {
	body, err := c.Do(ctx, op, method, path, payload, "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return entities.NewExternalServiceError(c.system, op, 0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Do runs the request and returns the raw 2xx body. 429 and 5xx responses and
// transport errors are retried up to MaxRetries times.
func (c *Client) Do(ctx context.Context, op, method, path string, payload any, accept string) ([]byte, error) {
	if c.token == "" {
		return nil, entities.NewExternalServiceError(c.system, op, 0, ErrMissingToken)
	}
	var bodyBytes []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, entities.NewExternalServiceError(c.system, op, 0, fmt.Errorf("encode request: %w", err))
		}
		bodyBytes = b
	}
	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if bodyBytes != nil {
			reader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, entities.NewExternalServiceError(c.system, op, 0, err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", accept)
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if attempt < c.maxRetries && ctx.Err() == nil {
				if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, "")); waitErr != nil {
					return nil, entities.NewExternalServiceError(c.system, op, 0, waitErr)
				}
				continue
			}
			return nil, entities.NewExternalServiceError(c.system, op, 0, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, entities.NewExternalServiceError(c.system, op, resp.StatusCode, readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return respBody, nil
		}

		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && attempt < c.maxRetries {
			if waitErr := sleepContext(ctx, c.retryDelay(attempt+1, resp.Header.Get("Retry-After"))); waitErr != nil {
				return nil, entities.NewExternalServiceError(c.system, op, resp.StatusCode, waitErr)
			}
			continue
		}
		return nil, entities.NewExternalServiceError(c.system, op, resp.StatusCode, errors.New(errorMessage(respBody)))
	}
}

func errorMessage(body []byte) string {
	msg := strings.TrimSpace(string(body))
	var parsed map[string]any
	if json.Unmarshal(body, &parsed) == nil {
		for _, k := range []string{"message", "error_description", "error"} {
			if v, ok := parsed[k].(string); ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	if msg == "" {
		return "empty response body"
	}
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return msg
}

func (c *Client) retryDelay(attempt int, retryAfterHeader string) time.Duration {
	if retryAfter := parseRetryAfterSeconds(retryAfterHeader); retryAfter > 0 {
		if retryAfter > c.maxDelay {
			return c.maxDelay
		}
		return retryAfter
	}
	delay := c.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= c.maxDelay {
			return c.maxDelay
		}
	}
	return delay
}

func parseRetryAfterSeconds(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
