package pocket

import "strings"

// EndpointKind selects the gateway URL shape.
type EndpointKind int

const (
	LoadBalancer EndpointKind = iota
	Application
)

func (k EndpointKind) String() string {
	if k == Application {
		return "Application"
	}
	return "LoadBalancer"
}

// ParseEndpointKind maps "application" (any case) to Application and
// everything else to LoadBalancer.
func ParseEndpointKind(s string) EndpointKind {
	if strings.EqualFold(s, "application") {
		return Application
	}
	return LoadBalancer
}

// Credential is the canonical API key record. Build it with Normalize.
type Credential struct {
	Identifier   string
	EndpointKind EndpointKind
	SecretKey    *string
	Origin       *string
	UserAgent    *string
}

// DefaultCredential is the record Normalize returns for an absent key.
func DefaultCredential() Credential {
	return Credential{Identifier: DefaultLoadBalancerID, EndpointKind: LoadBalancer}
}

// HasSecret reports whether requests must carry basic auth.
func (c Credential) HasSecret() bool {
	return c.SecretKey != nil
}

// APIKey re-expresses the record as an object key. Normalizing the result
// yields an identical record.
func (c Credential) APIKey() APIKey {
	obj := KeyObject{
		Identifier:   c.Identifier,
		EndpointKind: c.EndpointKind.String(),
	}
	if c.SecretKey != nil {
		obj.SecretKey = *c.SecretKey
	}
	if c.Origin != nil {
		obj.Origin = *c.Origin
	}
	if c.UserAgent != nil {
		obj.UserAgent = *c.UserAgent
	}
	return ObjectKey(obj)
}

// Normalize builds the canonical record for apiKey. It only fails when a
// secret key is supplied without a string identifier or is itself not a string.
func Normalize(apiKey APIKey) (Credential, error) {
	cred := DefaultCredential()

	switch apiKey.variant {
	case keyAbsent:
		return cred, nil
	case keyIdentifier:
		cred.Identifier = apiKey.identifier
		return cred, nil
	}

	obj := apiKey.object
	if s, ok := obj.Origin.(string); ok {
		cred.Origin = &s
	}
	if s, ok := obj.UserAgent.(string); ok {
		cred.UserAgent = &s
	}
	if s, ok := obj.EndpointKind.(string); ok && ParseEndpointKind(s) == Application {
		cred.EndpointKind = Application
		cred.Identifier = DefaultApplicationID
	}

	id, idIsString := obj.Identifier.(string)
	switch {
	case obj.SecretKey != nil:
		if !idIsString {
			return Credential{}, invalidArgument("secretKey requires an identifier", "identifier", obj.Identifier)
		}
		secret, ok := obj.SecretKey.(string)
		if !ok {
			return Credential{}, invalidArgument("invalid secretKey", "secretKey", RedactedValue)
		}
		cred.Identifier = id
		cred.SecretKey = &secret
	case idIsString:
		cred.Identifier = id
	}

	return cred, nil
}

// IsCommunityResource reports whether the credential uses one of the shared
// default identifiers, whatever its endpoint kind.
func IsCommunityResource(c Credential) bool {
	return c.Identifier == DefaultLoadBalancerID || c.Identifier == DefaultApplicationID
}
