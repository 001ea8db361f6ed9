package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 4 << 20

	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

// Config switches the adapter on and points it at a workflow service.
type Config struct {
	Enabled bool          `mapstructure:"enabled" toml:"enabled"`
	BaseURL string        `mapstructure:"base_url" toml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
}

type Option func(*Client)

// WithHTTPClient replaces the default client built from Config.Timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger routes request diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTelemetry records request events into telemetry.
func WithTelemetry(telemetry *Telemetry) Option {
	return func(c *Client) {
		if telemetry != nil {
			c.telemetry = telemetry
		}
	}
}

// WithContract replaces the bundled OpenAPI contract.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// Client calls the workflow service. Routes come from the contract by
// operation id and payloads are validated before they are sent.
type Client struct {
	cfg       Config
	http      *http.Client
	contract  *Contract
	telemetry *Telemetry
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a client. A disabled or unconfigured client is valid; its calls
// fail with ErrDisabled or ErrMissingBaseURL without touching the network.
func New(cfg Config, options ...Option) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(client)
		}
	}

	if client.contract == nil {
		contract, err := LoadContract(context.Background(), bundledContract)
		if err != nil {
			return nil, err
		}
		client.contract = contract
	}
	if client.telemetry == nil {
		telemetry, err := NewTelemetry(nil)
		if err != nil {
			return nil, err
		}
		client.telemetry = telemetry
	}
	return client, nil
}

// Enabled reports whether the adapter is switched on.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Telemetry exposes the request event log.
func (c *Client) Telemetry() *Telemetry {
	return c.telemetry
}

// Generate asks the service for a new card.
func (c *Client) Generate(ctx context.Context, payload GeneratePayload) (GenerateResponse, error) {
	var out GenerateResponse
	err := c.call(ctx, OpGenerate, payload, &out)
	return out, err
}

// Continue asks the service to extend an existing card.
func (c *Client) Continue(ctx context.Context, payload ContinuePayload) (ContinueResponse, error) {
	var out ContinueResponse
	err := c.call(ctx, OpContinue, payload, &out)
	return out, err
}

// Review approves or sends back a workflow step.
func (c *Client) Review(ctx context.Context, payload ReviewPayload) (ReviewResponse, error) {
	var out ReviewResponse
	err := c.call(ctx, OpReview, payload, &out)
	return out, err
}

func (c *Client) call(ctx context.Context, opID string, payload, out any) error {
	if !c.cfg.Enabled {
		return ErrDisabled
	}
	base := strings.TrimRight(strings.TrimSpace(c.cfg.BaseURL), "/")
	if base == "" {
		return ErrMissingBaseURL
	}
	op, ok := c.contract.Operation(opID)
	if !ok {
		return fmt.Errorf("workflow: operation %q not in contract", opID)
	}
	body, err := op.Encode(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, base+op.Path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("workflow: %s: build request: %w", opID, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	event := Event{Operation: opID, Path: op.Path, StartedAt: c.now()}
	defer func() {
		event.EndedAt = c.now()
		c.telemetry.Record(event)
		c.logger.Debug("workflow request",
			"operation", opID,
			"request_id", requestID,
			"status", event.Status,
			"ok", event.OK,
			"correlation_id", event.CorrelationID,
			"duration", event.Duration(),
		)
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("workflow: %s: %w", opID, err)
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	event.Status = resp.StatusCode
	event.CorrelationID = correlationID(resp.Header, raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Operation: opID, StatusCode: resp.StatusCode, CorrelationID: event.CorrelationID}
	}
	if readErr != nil {
		return fmt.Errorf("workflow: %s: read response: %w", opID, readErr)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("workflow: %s: decode response: %w", opID, err)
	}
	event.OK = true
	return nil
}

// correlationID prefers the response header and falls back to a
// correlationId field in a JSON body.
func correlationID(header http.Header, body []byte) string {
	if id := strings.TrimSpace(header.Get(headerCorrelationID)); id != "" {
		return id
	}
	var probe struct {
		CorrelationID string `json:"correlationId"`
	}
	if len(body) > 0 && json.Unmarshal(body, &probe) == nil {
		return probe.CorrelationID
	}
	return ""
}
