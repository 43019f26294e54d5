// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package insight provides the HTTP client for the sales insight service.
package insight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Configuration constants for the insight service.
const (
	// DefaultBaseURL is where the service listens in a default deployment.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// DefaultUserAgent identifies this client to the service.
	DefaultUserAgent = "salesbrief/0.1"

	// MaxResponseSize is the maximum accepted response body size.
	MaxResponseSize = 10 * 1024 * 1024

	// RequestIDHeader carries the per-call correlation id.
	RequestIDHeader = "X-Request-ID"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the insight client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api/v1
	BaseURL string

	// Timeout bounds a whole request. Zero leaves the transport defaults in place.
	Timeout time.Duration

	// RequestsPerMinute paces outbound calls. Zero disables pacing.
	RequestsPerMinute int

	// UserAgent is sent with every request.
	UserAgent string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the insight service. It keeps no per-request state and is
// safe for concurrent use. It never retries: every failure is returned as a
// *RequestError on the first attempt.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	newID      func() string
}

// NewClient creates a client. A nil config uses DefaultConfig.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	config.BaseURL = strings.TrimSuffix(config.BaseURL, "/")

	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     zap.NewNop(),
		newID:      func() string { return uuid.NewString() },
	}
	if config.RequestsPerMinute > 0 {
		perSecond := rate.Limit(float64(config.RequestsPerMinute) / 60.0)
		c.limiter = rate.NewLimiter(perSecond, 1)
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// WithLogger attaches a structured logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	if logger != nil {
		c.logger = logger.Named("insight")
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// INSIGHT ENDPOINTS
// =============================================================================

// GenerateFull requests a comprehensive insight brief.
func (c *Client) GenerateFull(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, validationError(ErrEmptyCompany)
	}
	if req.Priority != "" && !req.Priority.Valid() {
		return nil, validationError(fmt.Errorf("unknown priority %q", req.Priority))
	}
	if req.TimeframeDays < 0 {
		return nil, validationError(fmt.Errorf("timeframe_days must be positive, got %d", req.TimeframeDays))
	}
	return c.generate(ctx, KindFull, "/insights/generate", req)
}

// GenerateQuick requests the reduced-latency quick brief.
func (c *Client) GenerateQuick(ctx context.Context, req QuickRequest) (*Result, error) {
	if strings.TrimSpace(req.CompanyName) == "" {
		return nil, validationError(ErrEmptyCompany)
	}
	return c.generate(ctx, KindQuick, "/insights/quick-brief", req)
}

func (c *Client) generate(ctx context.Context, kind Kind, path string, body any) (*Result, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return nil, decodeError(resp.status, err)
	}
	return &Result{
		Kind:       kind,
		Payload:    payload,
		StatusCode: resp.status,
		RequestID:  resp.requestID,
		ReceivedAt: time.Now(),
		Duration:   resp.duration,
	}, nil
}

// History lists previously generated insights for a company.
func (c *Client) History(ctx context.Context, company string, limit int) (*History, error) {
	if strings.TrimSpace(company) == "" {
		return nil, validationError(ErrEmptyCompany)
	}
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	resp, err := c.do(ctx, http.MethodGet, "/insights/history/"+url.PathEscape(company), query, nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data History `json:"data"`
	}
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, decodeError(resp.status, err)
	}
	if envelope.Data.CompanyName == "" {
		envelope.Data.CompanyName = company
	}
	if envelope.Data.Entries == nil {
		envelope.Data.Entries = []any{}
	}
	return &envelope.Data, nil
}

// ClearCache asks the service to drop its cached insights for a company.
// It does not touch any local cache.
func (c *Client) ClearCache(ctx context.Context, company string) error {
	if strings.TrimSpace(company) == "" {
		return validationError(ErrEmptyCompany)
	}
	_, err := c.do(ctx, http.MethodDelete, "/insights/cache/"+url.PathEscape(company), nil, nil)
	return err
}

// =============================================================================
// COLLABORATOR ENDPOINTS
// =============================================================================

// Health checks service liveness.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	resp, err := c.do(ctx, http.MethodGet, "/health/", nil, nil)
	if err != nil {
		return nil, err
	}
	var health Health
	if err := json.Unmarshal(resp.body, &health); err != nil {
		return nil, decodeError(resp.status, err)
	}
	if err := json.Unmarshal(resp.body, &health.Raw); err != nil {
		return nil, decodeError(resp.status, err)
	}
	return &health, nil
}

// AgentStatus lists the upstream agents and their state.
func (c *Client) AgentStatus(ctx context.Context) (*AgentStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, "/agents/status", nil, nil)
	if err != nil {
		return nil, err
	}
	var status AgentStatus
	if err := json.Unmarshal(resp.body, &status); err != nil {
		return nil, decodeError(resp.status, err)
	}
	// Some deployments wrap the reply in the standard envelope.
	if len(status.Agents) == 0 {
		var envelope struct {
			Data AgentStatus `json:"data"`
		}
		if err := json.Unmarshal(resp.body, &envelope); err == nil && len(envelope.Data.Agents) > 0 {
			status = envelope.Data
		}
	}
	return &status, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

type response struct {
	status    int
	body      []byte
	requestID string
	duration  time.Duration
}

// do performs exactly one HTTP exchange and maps failures to *RequestError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(0, "rate limiter", err)
		}
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, validationError(fmt.Errorf("failed to marshal request: %w", err))
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, validationError(fmt.Errorf("failed to create request: %w", err))
	}
	requestID := c.newID()
	c.setHeaders(req, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, transportError(0, "request failed", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("response",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("duration", duration))

	data, err := readResponse(resp)
	if err != nil {
		if errors.Is(err, errResponseTooLarge) {
			return nil, decodeError(resp.StatusCode, err)
		}
		return nil, transportError(resp.StatusCode, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, handleErrorResponse(resp.StatusCode, data)
	}

	return &response{status: resp.StatusCode, body: data, requestID: requestID, duration: duration}, nil
}

// setHeaders sets the headers every service call carries.
func (c *Client) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)
}

var errResponseTooLarge = fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, errResponseTooLarge
	}
	return body, nil
}

// handleErrorResponse converts a non-2xx reply into a transport error,
// preferring the service's own detail message.
func handleErrorResponse(statusCode int, body []byte) error {
	message := http.StatusText(statusCode)
	if detail := errorDetail(body); detail != "" {
		message = detail
	}
	return transportError(statusCode, message, nil)
}

// errorDetail extracts FastAPI-style {"detail": ...} messages. Validation
// failures arrive as a list of {"msg": ...} objects.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	switch d := parsed.Detail.(type) {
	case string:
		return d
	case []any:
		var msgs []string
		for _, item := range d {
			if m, ok := item.(map[string]any); ok {
				if msg, ok := m["msg"].(string); ok && msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
		return strings.Join(msgs, "; ")
	}
	return parsed.Message
}
