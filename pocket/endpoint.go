package pocket

import (
	"fmt"
	"maps"
)

// BasicAuth carries HTTP basic credentials. The gateway expects an empty user
// and the application secret as password.
type BasicAuth struct {
	User     string
	Password string
}

func (a BasicAuth) String() string {
	return fmt.Sprintf("{User:%q Password:%s}", a.User, RedactedValue)
}

// ConnectionInfo is everything a JSON-RPC transport needs to reach the gateway.
type ConnectionInfo struct {
	URL     string
	Headers map[string]string
	// Auth is nil when no secret key was supplied.
	Auth *BasicAuth
}

// Clone returns a deep copy so callers can't mutate a provider's descriptor.
func (c ConnectionInfo) Clone() ConnectionInfo {
	out := ConnectionInfo{URL: c.URL, Headers: maps.Clone(c.Headers)}
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	if c.Auth != nil {
		auth := *c.Auth
		out.Auth = &auth
	}
	return out
}

// Resolve maps the network onto its gateway host and composes the connection
// descriptor for the credential.
func Resolve(network Network, cred Credential) (ConnectionInfo, error) {
	host, ok := networkHosts[network.Name]
	if !ok {
		return ConnectionInfo{}, invalidArgument("unsupported network", "network", network)
	}

	id := cred.Identifier
	if id == DefaultLoadBalancerID {
		lb, err := DefaultLoadBalancerForHost(host)
		if err != nil {
			return ConnectionInfo{}, err
		}
		id = lb
	}
	url := fmt.Sprintf("https://%s/v1/lb/%s", host, id)

	if cred.EndpointKind == Application {
		id = cred.Identifier
		if id == DefaultApplicationID {
			app, err := DefaultApplicationForHost(host)
			if err != nil {
				return ConnectionInfo{}, err
			}
			id = app
		}
		url = fmt.Sprintf("https://%s/v1/%s", host, id)
	}

	conn := ConnectionInfo{
		URL:     url,
		Headers: map[string]string{},
	}
	if cred.SecretKey != nil {
		conn.Auth = &BasicAuth{User: "", Password: *cred.SecretKey}
	}
	return conn, nil
}
