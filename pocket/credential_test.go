package pocket

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizeAbsent(t *testing.T) {
	for _, key := range []APIKey{{}, NoAPIKey()} {
		cred, err := Normalize(key)
		require.NoError(t, err)
		assert.Equal(t, DefaultCredential(), cred)
		assert.Equal(t, DefaultLoadBalancerID, cred.Identifier)
		assert.Equal(t, LoadBalancer, cred.EndpointKind)
		assert.Nil(t, cred.SecretKey)
		assert.Nil(t, cred.Origin)
		assert.Nil(t, cred.UserAgent)
	}
}

func TestNormalizeBareString(t *testing.T) {
	for _, s := range []string{"abc123", "", "application", DefaultApplicationID} {
		cred, err := Normalize(IdentifierKey(s))
		require.NoError(t, err)
		assert.Equal(t, s, cred.Identifier)
		assert.Equal(t, LoadBalancer, cred.EndpointKind)
		assert.False(t, cred.HasSecret())
	}
}

func TestNormalizeObject(t *testing.T) {
	tests := []struct {
		name string
		obj  KeyObject
		want Credential
	}{
		{
			name: "empty object",
			obj:  KeyObject{},
			want: DefaultCredential(),
		},
		{
			name: "identifier only",
			obj:  KeyObject{Identifier: "my-lb"},
			want: Credential{Identifier: "my-lb", EndpointKind: LoadBalancer},
		},
		{
			name: "identifier and secret",
			obj:  KeyObject{Identifier: "a", SecretKey: "k"},
			want: Credential{Identifier: "a", EndpointKind: LoadBalancer, SecretKey: strPtr("k")},
		},
		{
			name: "application kind without identifier",
			obj:  KeyObject{EndpointKind: "Application"},
			want: Credential{Identifier: DefaultApplicationID, EndpointKind: Application},
		},
		{
			name: "application kind is case insensitive",
			obj:  KeyObject{EndpointKind: "APPLICATION", Identifier: "app-1"},
			want: Credential{Identifier: "app-1", EndpointKind: Application},
		},
		{
			name: "unknown kind falls back to load balancer",
			obj:  KeyObject{EndpointKind: "relay"},
			want: DefaultCredential(),
		},
		{
			name: "non-string kind is ignored",
			obj:  KeyObject{EndpointKind: 1},
			want: DefaultCredential(),
		},
		{
			name: "textual metadata is copied",
			obj:  KeyObject{Origin: "https://dapp.example", UserAgent: "agent/1.0"},
			want: Credential{
				Identifier:   DefaultLoadBalancerID,
				EndpointKind: LoadBalancer,
				Origin:       strPtr("https://dapp.example"),
				UserAgent:    strPtr("agent/1.0"),
			},
		},
		{
			name: "non-textual metadata is dropped",
			obj:  KeyObject{Origin: 42, UserAgent: []string{"x"}},
			want: DefaultCredential(),
		},
		{
			name: "non-string identifier without secret keeps the default",
			obj:  KeyObject{Identifier: 7, EndpointKind: "application"},
			want: Credential{Identifier: DefaultApplicationID, EndpointKind: Application},
		},
		{
			name: "application kind with secret",
			obj:  KeyObject{EndpointKind: "application", Identifier: "app-2", SecretKey: "k2"},
			want: Credential{Identifier: "app-2", EndpointKind: Application, SecretKey: strPtr("k2")},
		},
		{
			name: "empty secret is still a secret",
			obj:  KeyObject{Identifier: "a", SecretKey: ""},
			want: Credential{Identifier: "a", EndpointKind: LoadBalancer, SecretKey: strPtr("")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := Normalize(ObjectKey(tt.obj))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cred)
		})
	}
}

func TestNormalizeSecretWithoutIdentifier(t *testing.T) {
	for _, obj := range []KeyObject{
		{SecretKey: "k"},
		{SecretKey: "k", Identifier: 12},
		{SecretKey: "k", EndpointKind: "application"},
	} {
		_, err := Normalize(ObjectKey(obj))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		var argErr *InvalidArgumentError
		require.True(t, errors.As(err, &argErr))
		assert.Equal(t, "identifier", argErr.Argument)
		assert.Equal(t, obj.Identifier, argErr.Value)
	}
}

func TestNormalizeNonStringSecretIsRedacted(t *testing.T) {
	secret := []byte("super-secret-bytes")
	_, err := Normalize(ObjectKey(KeyObject{Identifier: "a", SecretKey: secret}))
	require.Error(t, err)

	var argErr *InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "secretKey", argErr.Argument)
	assert.Equal(t, RedactedValue, argErr.Value)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestNormalizeSecretBranchWinsOverIdentifierBranch(t *testing.T) {
	// Both branches match structurally; the secret branch must be taken so the
	// secret is kept.
	cred, err := Normalize(ObjectKey(KeyObject{Identifier: "a", SecretKey: "k"}))
	require.NoError(t, err)
	require.NotNil(t, cred.SecretKey)
	assert.Equal(t, "k", *cred.SecretKey)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []APIKey{
		NoAPIKey(),
		IdentifierKey("abc"),
		ObjectKey(KeyObject{EndpointKind: "application"}),
		ObjectKey(KeyObject{Identifier: "a", SecretKey: "k", Origin: "o", UserAgent: "ua"}),
		ObjectKey(KeyObject{EndpointKind: "application", Identifier: "app", SecretKey: "s"}),
	}
	for _, in := range inputs {
		first, err := Normalize(in)
		require.NoError(t, err)
		second, err := Normalize(first.APIKey())
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestIsCommunityResource(t *testing.T) {
	assert.True(t, IsCommunityResource(DefaultCredential()))
	assert.True(t, IsCommunityResource(Credential{Identifier: DefaultApplicationID, EndpointKind: Application}))
	assert.True(t, IsCommunityResource(Credential{Identifier: DefaultApplicationID, EndpointKind: LoadBalancer}))
	assert.False(t, IsCommunityResource(Credential{Identifier: "mine"}))
}

func TestParseEndpointKind(t *testing.T) {
	assert.Equal(t, Application, ParseEndpointKind("application"))
	assert.Equal(t, Application, ParseEndpointKind("Application"))
	assert.Equal(t, LoadBalancer, ParseEndpointKind("loadbalancer"))
	assert.Equal(t, LoadBalancer, ParseEndpointKind(""))
	assert.Equal(t, "Application", Application.String())
	assert.Equal(t, "LoadBalancer", LoadBalancer.String())
}
