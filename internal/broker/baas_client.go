package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	vaultDomain "github.com/allisson/tenantvault/internal/vault/domain"
)

const maxBaaSResponseSize = 4 << 20

// BaaSClientConfig configures requests to a tenant's BaaS REST endpoint.
type BaaSClientConfig struct {
	Timeout  time.Duration
	RetryMax int
}

// DefaultBaaSClientConfig returns the default BaaS client settings.
func DefaultBaaSClientConfig() BaaSClientConfig {
	return BaaSClientConfig{
		Timeout:  10 * time.Second,
		RetryMax: 2,
	}
}

// BaaSClient talks to the PostgREST interface of one tenant's BaaS project.
// Reads are retried on transient failures. Writes are sent exactly once.
type BaaSClient struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	write   *retryablehttp.Client
}

// NewBaaSClient creates a client bound to the tenant's project URL and API key.
func NewBaaSClient(creds vaultDomain.BaaSCredentials, config BaaSClientConfig, logger *slog.Logger) *BaaSClient {
	client := newRetryableClient(config.RetryMax, logger)
	client.HTTPClient.Timeout = config.Timeout

	write := newRetryableClient(0, logger)
	write.HTTPClient = client.HTTPClient

	return &BaaSClient{
		baseURL: strings.TrimRight(creds.URL, "/"),
		apiKey:  creds.APIKey,
		http:    client,
		write:   write,
	}
}

func newRetryableClient(retryMax int, logger *slog.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil
	if logger != nil {
		client.Logger = logger
	}
	return client
}

// Select reads rows of table matching the PostgREST filters into out.
func (c *BaaSClient) Select(ctx context.Context, table string, filters url.Values, out any) error {
	endpoint := c.tableURL(table)
	if len(filters) > 0 {
		endpoint += "?" + filters.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return connectionFailed(ReasonInvalidConfig)
	}
	return c.do(c.http, req, out)
}

// Insert creates row in table and decodes the created representation into out.
func (c *BaaSClient) Insert(ctx context.Context, table string, row, out any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.tableURL(table), bytes.NewReader(body))
	if err != nil {
		return connectionFailed(ReasonInvalidConfig)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(c.write, req, out)
}

// CloseIdleConnections releases keep-alive connections held by the client.
func (c *BaaSClient) CloseIdleConnections() {
	c.http.HTTPClient.CloseIdleConnections()
}

func (c *BaaSClient) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + url.PathEscape(table)
}

func (c *BaaSClient) do(client *retryablehttp.Client, req *retryablehttp.Request, out any) error {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return connectionFailed(ReasonTimeout)
		}
		return connectionFailed(ReasonUnreachable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return connectionFailed(ReasonAuthFailed)
	case resp.StatusCode >= http.StatusInternalServerError:
		return connectionFailed(ReasonRejected)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d", ErrQueryFailed, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBaaSResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response", ErrQueryFailed)
	}
	return nil
}
