// Package history queries a chain indexer for account transfer history.
// Indexer reads are idempotent, so unlike extrinsic submission they ride on
// a retrying HTTP client.
package history

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public taostats indexer.
const DefaultBaseURL = "https://api.taostats.io"

// Transfer is one balance transfer involving the queried address.
type Transfer struct {
	ID          string    `json:"id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      int64     `json:"amount"`
	Fee         int64     `json:"fee"`
	ExtrinsicID string    `json:"extrinsicId"`
	BlockNumber int       `json:"blockNumber"`
	Timestamp   time.Time `json:"timestamp"`
}

type transfersResponse struct {
	Data       []Transfer `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// Client wraps the indexer HTTP API.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	network    string
}

// NewClient builds an indexer client. An empty baseURL selects the public
// indexer.
func NewClient(baseURL, network string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 5
	client.HTTPClient.Timeout = 30 * time.Second
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 20 * time.Second
	client.Logger = nil

	log.Debug().
		Str("base_url", baseURL).
		Int("retry_max", client.RetryMax).
		Msg("history client initialized")

	return &Client{
		httpClient: client,
		baseURL:    baseURL,
		network:    network,
	}
}

func (c *Client) doRequest(endpoint string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + endpoint + "?" + query.Encode()

	req, err := retryablehttp.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", reqURL).Msg("indexer request failed")
		return nil, fmt.Errorf("indexer request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error().
			Int("status_code", resp.StatusCode).
			Str("body", string(respBody)).
			Str("url", reqURL).
			Msg("indexer returned non-200")
		return nil, fmt.Errorf("indexer returned status %d: %s", resp.StatusCode, respBody)
	}
	return respBody, nil
}

// GetTransfers returns the most recent transfers touching the address,
// newest first, up to limit entries.
func (c *Client) GetTransfers(address string, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 25
	}
	query := url.Values{}
	query.Set("address", address)
	query.Set("limit", strconv.Itoa(limit))
	if c.network != "" {
		query.Set("network", c.network)
	}

	respBody, err := c.doRequest("/api/transfer/v1", query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer history: %w", err)
	}

	var result transfersResponse
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		log.Error().Err(err).Int("response_size", len(respBody)).Msg("failed to parse transfer history")
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Debug().
		Str("address", address).
		Int("count", len(result.Data)).
		Int("total", result.Pagination.TotalItems).
		Msg("transfer history fetched")

	return result.Data, nil
}
