package pocket

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/quantumauth-io/pocket-gateway/ethrpc"
	"github.com/quantumauth-io/pocket-gateway/log"
	"github.com/quantumauth-io/pocket-gateway/usage"
)

// ErrNetworkMismatch is returned by DetectNetwork when the gateway serves another chain.
var ErrNetworkMismatch = errors.New("network mismatch")

// Provider is a JSON-RPC connection to the gateway for one network and API key.
// It is immutable after construction and safe for concurrent use.
type Provider struct {
	network    Network
	credential Credential
	conn       ConnectionInfo
	client     *ethrpc.Client

	logger   *log.Logger
	recorder usage.Recorder
}

type options struct {
	logger     *log.Logger
	recorder   usage.Recorder
	httpClient *http.Client
	timeout    time.Duration
}

type Option func(*options)

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUsageRecorder counts requests made with a community credential.
func WithUsageRecorder(r usage.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NewProvider normalizes apiKey, resolves the gateway endpoint for network and
// builds the transport.
func NewProvider(network Network, apiKey APIKey, opts ...Option) (*Provider, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	cred, err := Normalize(apiKey)
	if err != nil {
		return nil, err
	}
	conn, err := Resolve(network, cred)
	if err != nil {
		return nil, err
	}

	endpoint := ethrpc.Endpoint{
		Name:    network.Name,
		URL:     conn.URL,
		Headers: conn.Headers,
	}
	if conn.Auth != nil {
		endpoint.BasicAuth = true
		endpoint.Username = conn.Auth.User
		endpoint.Password = conn.Auth.Password
	}
	client, err := ethrpc.New(ethrpc.Config{Endpoint: endpoint, Timeout: o.timeout, HTTPClient: o.httpClient})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create gateway transport")
	}

	p := &Provider{
		network:    network,
		credential: cred,
		conn:       conn,
		client:     client,
		logger:     o.logger.With("network", network.Name, "endpointKind", cred.EndpointKind.String()),
		recorder:   o.recorder,
	}
	if p.IsCommunityResource() {
		p.logger.Warn("Using the shared community identifier; requests are heavily throttled. Supply your own application or load balancer id.",
			"identifier", cred.Identifier)
	}
	return p, nil
}

func (p *Provider) Network() Network {
	return p.network
}

func (p *Provider) Credential() Credential {
	return p.credential
}

// Connection returns a copy of the connection descriptor.
func (p *Provider) Connection() ConnectionInfo {
	return p.conn.Clone()
}

func (p *Provider) Client() *ethrpc.Client {
	return p.client
}

func (p *Provider) IsCommunityResource() bool {
	return IsCommunityResource(p.credential)
}

// Call forwards a raw JSON-RPC request to the gateway.
func (p *Provider) Call(ctx context.Context, method string, params any, out any) error {
	if err := p.client.Call(ctx, method, params, out); err != nil {
		return err
	}
	p.recordUsage(ctx)
	return nil
}

// recordUsage counts one served request against a community identifier.
// Recording failures are logged and never fail the call.
func (p *Provider) recordUsage(ctx context.Context) {
	if p.recorder == nil || !p.IsCommunityResource() {
		return
	}
	if n, err := p.recorder.Record(ctx, p.credential.Identifier); err != nil {
		p.logger.Warn("Failed to record community usage", "error", err)
	} else {
		p.logger.Debug("Community request recorded", "identifier", p.credential.Identifier, "count", n)
	}
}

// DetectNetwork asks the gateway for its chain id and checks it against the
// configured network.
func (p *Provider) DetectNetwork(ctx context.Context) (Network, error) {
	id, err := p.client.ChainID(ctx)
	if err != nil {
		return Network{}, errors.Wrap(err, "Failed to detect network")
	}
	p.recordUsage(ctx)
	if !id.IsUint64() {
		return Network{}, errors.Errorf("gateway chain id %s overflows uint64", id)
	}
	chainID := id.Uint64()
	if p.network.ChainID != 0 && chainID != p.network.ChainID {
		return Network{}, errors.Wrapf(ErrNetworkMismatch, "gateway chain id %d does not match network %s (%d)",
			chainID, p.network.Name, p.network.ChainID)
	}
	return Network{Name: p.network.Name, ChainID: chainID}, nil
}

// Close releases the transport's go-ethereum backend, if one was dialed.
func (p *Provider) Close() {
	p.client.Close()
}
