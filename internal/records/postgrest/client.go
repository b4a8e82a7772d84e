// Package postgrest implements the records port against a hosted
// record-table API speaking the PostgREST conventions: filters are query
// parameters (user_id=eq.X, id=eq.Y) and mutations return the affected rows
// when asked to with Prefer: return=representation.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sumstra/internal/core"
	"sumstra/internal/records"
)

const tablePath = "/rest/v1/transactions"

type Client struct {
	baseURL string
	apiKey  string
	token   string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithAccessToken sets the bearer token sent with every request. Without it
// the apikey alone authenticates.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) GetAll(ctx context.Context, userID string) ([]core.Transaction, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("user_id", "eq."+userID)
	query.Set("order", "date.desc")

	var rows []core.Transaction
	if err := c.do(ctx, http.MethodGet, query, nil, &rows); err != nil {
		return nil, records.NewError("get_all", "fetch transactions", err)
	}
	if rows == nil {
		rows = []core.Transaction{}
	}
	return rows, nil
}

func (c *Client) Create(ctx context.Context, input core.NewTransaction) (core.Transaction, error) {
	if err := input.Validate(); err != nil {
		return core.Transaction{}, records.NewError("create", "invalid transaction", err)
	}

	var rows []core.Transaction
	if err := c.do(ctx, http.MethodPost, nil, input, &rows); err != nil {
		return core.Transaction{}, records.NewError("create", "insert transaction", err)
	}
	if len(rows) == 0 {
		return core.Transaction{}, records.NewError("create", "no record returned after insert", nil)
	}
	return rows[0], nil
}

func (c *Client) Update(ctx context.Context, id string, update core.TransactionUpdate) (core.Transaction, error) {
	if err := update.Validate(); err != nil {
		return core.Transaction{}, records.NewError("update", "invalid update", err)
	}

	query := url.Values{}
	query.Set("id", "eq."+id)

	var rows []core.Transaction
	if err := c.do(ctx, http.MethodPatch, query, update, &rows); err != nil {
		return core.Transaction{}, records.NewError("update", "update transaction", err)
	}
	if len(rows) == 0 {
		return core.Transaction{}, records.NotFound("update", id)
	}
	return rows[0], nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	var rows []core.Transaction
	if err := c.do(ctx, http.MethodDelete, query, nil, &rows); err != nil {
		return records.NewError("delete", "delete transaction", err)
	}
	if len(rows) == 0 {
		return records.NotFound("delete", id)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body, out any) error {
	endpoint := c.baseURL + tablePath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Mutations return the affected rows so not-found is observable.
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, tablePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, tablePath, apiMessage(resp))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// apiMessage extracts the error message the table API returns as
// {"message": "..."}; it falls back to the HTTP status.
func apiMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(raw) > 0 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Sprintf("%s (status %d)", apiErr.Message, resp.StatusCode)
		}
	}
	return resp.Status
}
