package pocket

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNormalize(t *testing.T, k APIKey) Credential {
	t.Helper()
	cred, err := Normalize(k)
	require.NoError(t, err)
	return cred
}

func TestResolveUnsupportedNetwork(t *testing.T) {
	for _, n := range []Network{{Name: "kovan", ChainID: 42}, {}} {
		_, err := Resolve(n, DefaultCredential())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		var argErr *InvalidArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, "network", argErr.Argument)
		assert.Equal(t, n, argErr.Value)
	}
}

func TestResolveDefaultCredentialPerHost(t *testing.T) {
	for _, name := range SupportedNetworks() {
		t.Run(name, func(t *testing.T) {
			host, err := HostForNetwork(name)
			require.NoError(t, err)
			lb, err := DefaultLoadBalancerForHost(host)
			require.NoError(t, err)

			conn, err := Resolve(Network{Name: name}, DefaultCredential())
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("https://%s/v1/lb/%s", host, lb), conn.URL)
			assert.NotNil(t, conn.Headers)
			assert.Empty(t, conn.Headers)
			assert.Nil(t, conn.Auth)
		})
	}
}

func TestResolveWithSecret(t *testing.T) {
	cred := mustNormalize(t, ObjectKey(KeyObject{Identifier: "a", SecretKey: "k"}))

	conn, err := Resolve(Network{Name: "homestead", ChainID: 1}, cred)
	require.NoError(t, err)
	assert.Equal(t, "https://eth-mainnet.gateway.pokt.network/v1/lb/a", conn.URL)
	require.NotNil(t, conn.Auth)
	assert.Equal(t, "", conn.Auth.User)
	assert.Equal(t, "k", conn.Auth.Password)
}

func TestResolveApplicationDefault(t *testing.T) {
	cred := mustNormalize(t, ObjectKey(KeyObject{EndpointKind: "Application"}))

	conn, err := Resolve(Network{Name: "ropsten"}, cred)
	require.NoError(t, err)
	assert.Equal(t, "https://eth-ropsten.gateway.pokt.network/v1/6004b9aa0aea5b606775f4de", conn.URL)
	assert.NotContains(t, conn.URL, "/lb/")
}

func TestResolveApplicationExplicit(t *testing.T) {
	cred := mustNormalize(t, ObjectKey(KeyObject{EndpointKind: "application", Identifier: "app-1"}))

	conn, err := Resolve(Network{Name: "goerli"}, cred)
	require.NoError(t, err)
	assert.Equal(t, "https://eth-goerli.gateway.pokt.network/v1/app-1", conn.URL)
}

func TestResolveApplicationWithLoadBalancerSentinel(t *testing.T) {
	// The load balancer sentinel is only substituted in the /lb/ shape.
	cred := mustNormalize(t, ObjectKey(KeyObject{EndpointKind: "application", Identifier: DefaultLoadBalancerID}))

	conn, err := Resolve(Network{Name: "rinkeby"}, cred)
	require.NoError(t, err)
	assert.Equal(t, "https://eth-rinkeby.gateway.pokt.network/v1/defaultLoadBalancer", conn.URL)
}

func TestResolveApplicationSentinelUnderLoadBalancerKind(t *testing.T) {
	cred := mustNormalize(t, IdentifierKey(DefaultApplicationID))

	conn, err := Resolve(Network{Name: "mainnet"}, cred)
	require.NoError(t, err)
	assert.Equal(t, "https://eth-mainnet.gateway.pokt.network/v1/lb/defaultApp", conn.URL)
}

func TestResolveBareString(t *testing.T) {
	conn, err := Resolve(Network{Name: "homestead"}, mustNormalize(t, IdentifierKey("my-lb")))
	require.NoError(t, err)
	assert.Equal(t, "https://eth-mainnet.gateway.pokt.network/v1/lb/my-lb", conn.URL)
}

func TestDefaultIdentifiersForUnknownHost(t *testing.T) {
	_, err := DefaultLoadBalancerForHost("example.com")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = DefaultApplicationForHost("example.com")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = HostForNetwork("kovan")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestConnectionInfoClone(t *testing.T) {
	orig := ConnectionInfo{URL: "u", Headers: map[string]string{"a": "1"}, Auth: &BasicAuth{Password: "p"}}
	cp := orig.Clone()
	cp.Headers["a"] = "2"
	cp.Auth.Password = "changed"

	assert.Equal(t, "1", orig.Headers["a"])
	assert.Equal(t, "p", orig.Auth.Password)

	assert.NotNil(t, ConnectionInfo{}.Clone().Headers)
}

func TestBasicAuthStringRedactsPassword(t *testing.T) {
	s := fmt.Sprint(BasicAuth{User: "", Password: "hunter2"})
	assert.NotContains(t, s, "hunter2")
	assert.Contains(t, s, RedactedValue)
}

func TestLookupNetwork(t *testing.T) {
	n, err := LookupNetwork("Mainnet")
	require.NoError(t, err)
	assert.Equal(t, Network{Name: "homestead", ChainID: 1}, n)

	n, err = LookupNetwork("goerli")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n.ChainID)

	_, err = LookupNetwork("kovan")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestSupportedNetworksHaveRegistryEntries(t *testing.T) {
	for _, name := range SupportedNetworks() {
		n, err := LookupNetwork(name)
		require.NoError(t, err, name)
		_, err = Resolve(n, DefaultCredential())
		assert.NoError(t, err, name)
	}
}
