package externalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

const DefaultUserAgent = "SampleAPI/1.0"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: request failed with status code %d", e.Method, e.Endpoint, e.StatusCode)
}

// Client sends JSON requests to a single upstream. Every method accepts
// optional per-request headers. JSON methods decode into out; an empty
// response body leaves out untouched.
type Client interface {
	Get(ctx context.Context, endpoint string, headers map[string]string, out any) error
	Post(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error
	Put(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error
	Delete(ctx context.Context, endpoint string, headers map[string]string) bool
	GetRaw(ctx context.Context, endpoint string, headers map[string]string) (string, error)
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	APIKey    string
}

type HTTPClient struct {
	baseURL   string
	userAgent string
	apiKey    string
	http      *http.Client
}

func NewClient(opts Options) (Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("external api base url not configured")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return &HTTPClient{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		apiKey:    opts.APIKey,
		http:      &http.Client{Timeout: opts.Timeout},
	}, nil
}

func (c *HTTPClient) Get(ctx context.Context, endpoint string, headers map[string]string, out any) error {
	logger.Info("Sending GET request", zap.String("endpoint", endpoint))
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, headers, out); err != nil {
		logger.Error("Error in GET request", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	return nil
}

func (c *HTTPClient) Post(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error {
	logger.Info("Sending POST request", zap.String("endpoint", endpoint))
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, headers, out); err != nil {
		logger.Error("Error in POST request", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	return nil
}

func (c *HTTPClient) Put(ctx context.Context, endpoint string, body any, headers map[string]string, out any) error {
	logger.Info("Sending PUT request", zap.String("endpoint", endpoint))
	if err := c.doJSON(ctx, http.MethodPut, endpoint, body, headers, out); err != nil {
		logger.Error("Error in PUT request", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	return nil
}

// Delete reports success instead of returning an error.
func (c *HTTPClient) Delete(ctx context.Context, endpoint string, headers map[string]string) bool {
	logger.Info("Sending DELETE request", zap.String("endpoint", endpoint))
	if _, err := c.do(ctx, http.MethodDelete, endpoint, nil, headers); err != nil {
		logger.Error("Error in DELETE request", zap.String("endpoint", endpoint), zap.Error(err))
		return false
	}
	logger.Info("DELETE request successful", zap.String("endpoint", endpoint))
	return true
}

func (c *HTTPClient) GetRaw(ctx context.Context, endpoint string, headers map[string]string) (string, error) {
	logger.Info("Sending GET request (raw)", zap.String("endpoint", endpoint))
	body, err := c.do(ctx, http.MethodGet, endpoint, nil, headers)
	if err != nil {
		logger.Error("Error in GET request (raw)", zap.String("endpoint", endpoint), zap.Error(err))
		return "", err
	}
	return string(body), nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, payload any, headers map[string]string, out any) error {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	body, err := c.do(ctx, method, endpoint, reqBody, headers)
	if err != nil {
		return err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		logger.Warn("API response content is empty", zap.String("endpoint", endpoint))
		return nil
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body io.Reader, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("API request failed", zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode), zap.ByteString("content", respBody))
		return nil, &StatusError{Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, nil
}

func (c *HTTPClient) url(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
