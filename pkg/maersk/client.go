package maersk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrVesselNotFound   = errors.New("vessel not found")
	ErrUnexpectedStatus = errors.New("unexpected maersk api status")
	ErrValidation       = errors.New("invalid maersk request")
)

const (
	DefaultBaseURL = "https://api.maersk.com"

	consumerKeyHeader    = "Consumer-Key"
	defaultTimeout       = 30 * time.Second
	maxResponseSizeBytes = 4 << 20
	maxErrorBodyBytes    = 512
)

// Config is loaded with the MAERSK prefix. ConsumerKey falls back to the
// unprefixed CONSUMER_KEY variable.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.maersk.com"`
	ConsumerKey string        `envconfig:"CONSUMER_KEY" split_words:"true" required:"true"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client talks to the Maersk consumer API. Every request carries the
// consumer key given at construction time.
type Client struct {
	baseURL     string
	consumerKey string
	httpClient  *http.Client
}

func NewClient(cfg Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid maersk base url: %w", err)
	}

	consumerKey := strings.TrimSpace(cfg.ConsumerKey)
	if consumerKey == "" {
		return nil, errors.New("maersk consumer key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:     baseURL,
		consumerKey: consumerKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

func MustNew(cfg Config, opts ...Option) *Client {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build maersk request: %w", err)
	}
	req.Header.Set(consumerKeyHeader, c.consumerKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute maersk request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("read maersk response %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("maersk request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: path=%s status=%d body=%s", ErrUnexpectedStatus, path, resp.StatusCode, excerpt(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode maersk response %s: %w", path, err)
	}
	return nil
}

func excerpt(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBodyBytes {
		return s[:maxErrorBodyBytes] + "..."
	}
	return s
}
