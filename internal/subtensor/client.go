// Package subtensor provides the chain client for the CLI. It talks
// JSON-over-HTTP to a subtensor gateway sidecar which holds the actual chain
// connection and signs extrinsics with wallets resolved by name against the
// shared wallets directory.
package subtensor

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/taocli/internal/config"
)

// Client is a wrapper for the gateway HTTP API. One client serves a single
// network; the network name rides along on every request so multi-network
// gateways can route.
type Client struct {
	client  *resty.Client
	Network string
	BaseURL string
}

// NewClient creates a gateway client from the resolved configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetHeader("X-Subtensor-Network", cfg.Network).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetTimeout(60 * time.Second)

	return &Client{
		client:  client,
		Network: cfg.Network,
		BaseURL: cfg.GatewayURL,
	}, nil
}

func postJSON[T any](client *resty.Client, path string, body any) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetBody(body).
		SetResult(&result).
		Post(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("post request failed")
		return Response[T]{}, fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Str("path", path).Msg("post non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		log.Error().Interface("error", result.Error).Str("path", path).Msg("response contains error")
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}

func getJSON[T any](client *resty.Client, path string) (Response[T], error) {
	var result Response[T]
	resp, err := client.R().
		SetResult(&result).
		Get(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("get request failed")
		return Response[T]{}, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("body", resp.String()).Str("path", path).Msg("get non-2xx")
		return Response[T]{}, fmt.Errorf("request returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		log.Error().Interface("error", result.Error).Str("path", path).Msg("response contains error")
		return Response[T]{}, fmt.Errorf("response error: %v", result.Error)
	}
	return result, nil
}
