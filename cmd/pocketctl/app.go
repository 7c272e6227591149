package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/quantumauth-io/pocket-gateway/config"
	"github.com/quantumauth-io/pocket-gateway/ethrpc"
	"github.com/quantumauth-io/pocket-gateway/log"
	"github.com/quantumauth-io/pocket-gateway/pocket"
	"github.com/quantumauth-io/pocket-gateway/redis"
	"github.com/quantumauth-io/pocket-gateway/retry"
	"github.com/quantumauth-io/pocket-gateway/usage"
)

//go:embed default.yaml
var defaultConfig []byte

// gatewayHTTPClient overrides the transport's HTTP client when set.
var gatewayHTTPClient *http.Client

const usageText = `usage: pocketctl [-config dir[,dir...]] <command>

commands:
  resolve   print the gateway connection for the configured network and api key
  check     call eth_chainId through the gateway and check it against the network
  networks  list supported network names`

type resolved struct {
	Network           string            `json:"network"`
	ChainID           uint64            `json:"chainId"`
	EndpointKind      string            `json:"endpointKind"`
	CommunityResource bool              `json:"communityResource"`
	URL               string            `json:"url"`
	Headers           map[string]string `json:"headers"`
	User              *string           `json:"user,omitempty"`
	Password          string            `json:"password,omitempty"`
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pocketctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configDirs := fs.String("config", ".", "comma separated directories searched for config.yaml")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, usageText)
	}
	if fs.NArg() != 1 {
		return errors.New(usageText)
	}

	cfg, err := config.LoadGatewayConfig(strings.Split(*configDirs, ","), defaultConfig)
	if err != nil {
		return err
	}

	logger, err := log.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log.SetDefault(logger)

	switch cmd := fs.Arg(0); cmd {
	case "networks":
		for _, name := range pocket.SupportedNetworks() {
			fmt.Fprintln(out, name)
		}
		return nil
	case "resolve":
		return resolve(cfg, out)
	case "check":
		return check(ctx, cfg, logger, out)
	default:
		return errors.Errorf("unknown command %q\n%s", cmd, usageText)
	}
}

func gatewayInputs(cfg *config.GatewayConfig) (pocket.Network, pocket.APIKey, error) {
	network, err := pocket.LookupNetwork(cfg.Gateway.NetworkName())
	if err != nil {
		return pocket.Network{}, pocket.APIKey{}, err
	}
	key, err := cfg.Gateway.Key()
	if err != nil {
		return pocket.Network{}, pocket.APIKey{}, err
	}
	return network, key, nil
}

func resolve(cfg *config.GatewayConfig, out io.Writer) error {
	network, key, err := gatewayInputs(cfg)
	if err != nil {
		return err
	}
	cred, err := pocket.Normalize(key)
	if err != nil {
		return err
	}
	conn, err := pocket.Resolve(network, cred)
	if err != nil {
		return err
	}

	r := resolved{
		Network:           network.Name,
		ChainID:           network.ChainID,
		EndpointKind:      cred.EndpointKind.String(),
		CommunityResource: pocket.IsCommunityResource(cred),
		URL:               conn.URL,
		Headers:           conn.Headers,
	}
	if conn.Auth != nil {
		user := conn.Auth.User
		r.User = &user
		r.Password = pocket.RedactedValue
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func check(ctx context.Context, cfg *config.GatewayConfig, logger *log.Logger, out io.Writer) error {
	network, key, err := gatewayInputs(cfg)
	if err != nil {
		return err
	}

	opts := []pocket.Option{pocket.WithLogger(logger), pocket.WithTimeout(cfg.RPC.Timeout())}
	if gatewayHTTPClient != nil {
		opts = append(opts, pocket.WithHTTPClient(gatewayHTTPClient))
	}
	var recorder *usage.RedisRecorder
	if cfg.Redis.Enabled {
		rdb, err := redis.NewClient(ctx, cfg.Redis.Client())
		if err != nil {
			return err
		}
		defer rdb.Close()
		recorder = usage.NewRedisRecorder(rdb, cfg.Redis.KeyPrefix, cfg.Redis.Window())
		opts = append(opts, pocket.WithUsageRecorder(recorder))
	}

	p, err := pocket.NewProvider(network, key, opts...)
	if err != nil {
		return err
	}
	defer p.Close()

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxNumRetries = cfg.RPC.MaxRetries
	retryCfg.Logger = logger

	detected, err := retry.Do(ctx, retryCfg, p.DetectNetwork, isTransient, "detect gateway network")
	if err != nil {
		return err
	}

	backend, err := p.Client().Backend(ctx)
	if err != nil {
		return err
	}
	head, err := backend.BlockNumber(ctx)
	if err != nil {
		return errors.Wrap(err, "Failed to read block number")
	}

	fmt.Fprintf(out, "network=%s chainId=%d block=%d community=%t",
		detected.Name, detected.ChainID, head, p.IsCommunityResource())
	if recorder != nil && p.IsCommunityResource() {
		n, err := recorder.Count(ctx, p.Credential().Identifier)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, " communityRequests=%d", n)
	}
	fmt.Fprintln(out)
	return nil
}

// isTransient keeps retrying on throttling and server errors only.
func isTransient(err error) bool {
	if errors.Is(err, pocket.ErrNetworkMismatch) {
		return false
	}
	var statusErr *ethrpc.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	var rpcErr *ethrpc.RPCError
	return !errors.As(err, &rpcErr)
}
