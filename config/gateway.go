package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/quantumauth-io/pocket-gateway/pocket"
	"github.com/quantumauth-io/pocket-gateway/redis"
)

const DefaultNetwork = "homestead"

// GatewayConfig is the on-disk configuration of pocketctl.
type GatewayConfig struct {
	Gateway GatewaySettings `mapstructure:"gateway"`
	RPC     RPCSettings     `mapstructure:"rpc"`
	Redis   RedisSettings   `mapstructure:"redis"`
	Log     LogSettings     `mapstructure:"log"`
}

// GatewaySettings holds the API key either as a structured apiKey map or as
// flat fields, which are easier to set from the environment.
type GatewaySettings struct {
	Network      string         `mapstructure:"network"`
	APIKey       map[string]any `mapstructure:"apiKey" structs:"-"`
	Identifier   string         `mapstructure:"identifier"`
	SecretKey    string         `mapstructure:"secretKey"`
	EndpointKind string         `mapstructure:"endpointKind"`
	Origin       string         `mapstructure:"origin"`
	UserAgent    string         `mapstructure:"userAgent"`
}

type RPCSettings struct {
	TimeoutSeconds int   `mapstructure:"timeoutSeconds"`
	MaxRetries     int32 `mapstructure:"maxRetries"`
}

type RedisSettings struct {
	Enabled       bool   `mapstructure:"enabled"`
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	TLS           bool   `mapstructure:"tls"`
	KeyPrefix     string `mapstructure:"keyPrefix"`
	WindowSeconds int    `mapstructure:"windowSeconds"`
}

type LogSettings struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// LoadGatewayConfig parses the gateway config and rejects it when it could
// not produce a connection.
func LoadGatewayConfig(configFilePaths []string, embeddedYAML []byte) (*GatewayConfig, error) {
	cfg, err := ParseConfigWithEmbedded[GatewayConfig](configFilePaths, embeddedYAML)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "Invalid gateway config")
	}
	return cfg, nil
}

func (c *GatewayConfig) Validate() error {
	if _, err := pocket.LookupNetwork(c.Gateway.NetworkName()); err != nil {
		return err
	}
	key, err := c.Gateway.Key()
	if err != nil {
		return err
	}
	if _, err := pocket.Normalize(key); err != nil {
		return err
	}
	if c.RPC.TimeoutSeconds < 0 {
		return errors.Errorf("rpc.timeoutSeconds must not be negative, got %d", c.RPC.TimeoutSeconds)
	}
	// -1 retries forever.
	if c.RPC.MaxRetries < -1 {
		return errors.Errorf("rpc.maxRetries must be -1 or more, got %d", c.RPC.MaxRetries)
	}
	if c.Redis.Enabled && c.Redis.WindowSeconds < 0 {
		return errors.Errorf("redis.windowSeconds must not be negative, got %d", c.Redis.WindowSeconds)
	}
	return nil
}

func (g GatewaySettings) NetworkName() string {
	if strings.TrimSpace(g.Network) == "" {
		return DefaultNetwork
	}
	return g.Network
}

// Key builds the API key. A non-empty apiKey map wins over the flat fields;
// with neither set the key is absent.
func (g GatewaySettings) Key() (pocket.APIKey, error) {
	if len(g.APIKey) > 0 {
		return pocket.ParseAPIKey(g.APIKey)
	}

	var obj pocket.KeyObject
	set := false
	for _, f := range []struct {
		val string
		dst *any
	}{
		{g.Identifier, &obj.Identifier},
		{g.SecretKey, &obj.SecretKey},
		{g.EndpointKind, &obj.EndpointKind},
		{g.Origin, &obj.Origin},
		{g.UserAgent, &obj.UserAgent},
	} {
		if f.val != "" {
			*f.dst = f.val
			set = true
		}
	}
	if !set {
		return pocket.NoAPIKey(), nil
	}
	return pocket.ObjectKey(obj), nil
}

func (r RPCSettings) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func (r RedisSettings) Client() redis.Config {
	return redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		TLS:      r.TLS,
	}
}

func (r RedisSettings) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}
