package ethrpc

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client is a JSON-RPC transport bound to a single endpoint. Raw calls go
// through Call; typed helpers that need go-ethereum decoding use Backend.
type Client struct {
	endpoint Endpoint
	http     *http.Client
	nextID   atomic.Int64

	mu      sync.Mutex
	backend *ethclient.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint.URL == "" {
		return nil, fmt.Errorf("ethrpc: endpoint url is empty")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint: cfg.Endpoint.clone(),
		http:     hc,
	}, nil
}

// Endpoint returns a copy of the configured endpoint.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint.clone()
}

func (c *Client) authorization() (string, bool) {
	if !c.endpoint.BasicAuth && c.endpoint.Username == "" && c.endpoint.Password == "" {
		return "", false
	}
	creds := c.endpoint.Username + ":" + c.endpoint.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds)), true
}

// Backend lazily dials a go-ethereum client that sends the endpoint's headers
// and basic auth with every request.
func (c *Client) Backend(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		return c.backend, nil
	}

	opts := []rpc.ClientOption{
		rpc.WithHTTPClient(c.http),
		rpc.WithHeaders(c.endpoint.header()),
	}
	if auth, ok := c.authorization(); ok {
		opts = append(opts, rpc.WithHTTPAuth(func(h http.Header) error {
			h.Set("Authorization", auth)
			return nil
		}))
	}

	rc, err := rpc.DialOptions(ctx, c.endpoint.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("ethrpc: dial backend %q: %w", c.endpoint.Name, err)
	}
	c.backend = ethclient.NewClient(rc)
	return c.backend, nil
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		c.backend.Close()
		c.backend = nil
	}
}
