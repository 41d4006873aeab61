package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wj-stack/NetFlow/internal/strategy"
)

// Client is an HTTP client for the NetFlow API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListStrategies retrieves every policy document in store order
func (c *Client) ListStrategies(ctx context.Context) ([]strategy.PolicyDocument, error) {
	var docs []strategy.PolicyDocument
	if err := c.do(ctx, http.MethodGet, "/v1/strategies", nil, &docs); err != nil {
		return nil, fmt.Errorf("failed to list strategies: %w", err)
	}
	return docs, nil
}

// GetStrategy retrieves a single policy document by strategy id
func (c *Client) GetStrategy(ctx context.Context, strategyID string) (*strategy.PolicyDocument, error) {
	var doc strategy.PolicyDocument
	if err := c.do(ctx, http.MethodGet, "/v1/strategies/"+url.PathEscape(strategyID), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetStrategyForm retrieves the editable form representation of a strategy
func (c *Client) GetStrategyForm(ctx context.Context, strategyID string) (*strategy.FormState, error) {
	var form strategy.FormState
	if err := c.do(ctx, http.MethodGet, "/v1/strategies/"+url.PathEscape(strategyID)+"/form", nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// SaveStrategy submits a form for validation, encoding and upsert.
// Returns the strategy id the server stored the document under.
func (c *Client) SaveStrategy(ctx context.Context, form strategy.FormState) (string, error) {
	var resp struct {
		OK         bool   `json:"ok"`
		StrategyID string `json:"strategy_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/strategies", form, &resp); err != nil {
		return "", err
	}
	return resp.StrategyID, nil
}

// DeleteStrategy removes a strategy by id
func (c *Client) DeleteStrategy(ctx context.Context, strategyID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/strategies/"+url.PathEscape(strategyID), nil, nil)
}

// ImportStrategies replaces the whole collection with docs
func (c *Client) ImportStrategies(ctx context.Context, docs []strategy.PolicyDocument) error {
	return c.do(ctx, http.MethodPost, "/v1/strategies/import", docs, nil)
}

// LoadExamples seeds the store with the stock example strategies
func (c *Client) LoadExamples(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/strategies/examples", nil, nil)
}
