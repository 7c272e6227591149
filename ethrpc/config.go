package ethrpc

import (
	"maps"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// Endpoint describes one JSON-RPC endpoint and how to authenticate against it.
type Endpoint struct {
	Name    string            `json:"name" yaml:"name"`
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers" yaml:"headers"`

	// BasicAuth enables the Authorization header even when Username is empty.
	BasicAuth bool   `json:"basicAuth" yaml:"basicAuth"`
	Username  string `json:"-" yaml:"-"`
	Password  string `json:"-" yaml:"-"`
}

func (e Endpoint) clone() Endpoint {
	e.Headers = maps.Clone(e.Headers)
	return e
}

// header builds the static request headers, auth excluded.
func (e Endpoint) header() http.Header {
	h := make(http.Header, len(e.Headers))
	for k, v := range e.Headers {
		h.Set(k, v)
	}
	return h
}

type Config struct {
	Endpoint Endpoint
	// Timeout applies when HTTPClient is nil. Zero means 15s.
	Timeout    time.Duration
	HTTPClient *http.Client
}
