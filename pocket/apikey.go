package pocket

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

type apiKeyVariant int

const (
	keyAbsent apiKeyVariant = iota
	keyIdentifier
	keyObject
)

// APIKey is the caller-supplied credential before normalization. The zero
// value is the absent key.
type APIKey struct {
	variant    apiKeyVariant
	identifier string
	object     KeyObject
}

// KeyObject is the structured form of an API key. Fields are loosely typed:
// non-string optional fields are ignored by Normalize, while a non-string
// identifier or secret next to a secret is rejected.
type KeyObject struct {
	Identifier   any `mapstructure:"identifier" json:"identifier,omitempty"`
	SecretKey    any `mapstructure:"secretKey" json:"secretKey,omitempty"`
	EndpointKind any `mapstructure:"endpointKind" json:"endpointKind,omitempty"`
	Origin       any `mapstructure:"origin" json:"origin,omitempty"`
	UserAgent    any `mapstructure:"userAgent" json:"userAgent,omitempty"`
}

func NoAPIKey() APIKey {
	return APIKey{}
}

// IdentifierKey is a bare application or load balancer identifier.
func IdentifierKey(id string) APIKey {
	return APIKey{variant: keyIdentifier, identifier: id}
}

func ObjectKey(obj KeyObject) APIKey {
	return APIKey{variant: keyObject, object: obj}
}

func (k APIKey) IsAbsent() bool {
	return k.variant == keyAbsent
}

// keyAliases folds the field names used by older gateway configurations, in
// precedence order. An alias never overrides its canonical field.
var keyAliases = []struct{ alias, canonical string }{
	{"applicationid", "identifier"},
	{"clientid", "identifier"},
	{"applicationsecretkey", "secretKey"},
	{"endpointtype", "endpointKind"},
	{"applicationorigin", "origin"},
	{"applicationuseragent", "userAgent"},
}

var canonicalKeys = []string{"identifier", "secretKey", "endpointKind", "origin", "userAgent"}

// ParseAPIKey converts a decoded configuration value (as produced by viper or
// encoding/json) into an APIKey.
func ParseAPIKey(v any) (APIKey, error) {
	switch t := v.(type) {
	case nil:
		return NoAPIKey(), nil
	case APIKey:
		return t, nil
	case *APIKey:
		if t == nil {
			return NoAPIKey(), nil
		}
		return *t, nil
	case string:
		return IdentifierKey(t), nil
	case KeyObject:
		return ObjectKey(t), nil
	case Credential:
		return t.APIKey(), nil
	case map[string]any:
		return parseKeyMap(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for key, val := range t {
			s, ok := key.(string)
			if !ok {
				return APIKey{}, invalidArgument("api key object has a non-string field name", "apiKey", key)
			}
			m[s] = val
		}
		return parseKeyMap(m)
	default:
		return APIKey{}, invalidArgument("unsupported api key type", "apiKey", v)
	}
}

func parseKeyMap(m map[string]any) (APIKey, error) {
	// Field names match case-insensitively; sorting makes case collisions
	// resolve the same way on every run.
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	lowered := make(map[string]any, len(m))
	for _, name := range names {
		lowered[strings.ToLower(name)] = m[name]
	}

	folded := make(map[string]any, len(canonicalKeys))
	for _, key := range canonicalKeys {
		if val, ok := lowered[strings.ToLower(key)]; ok {
			folded[key] = val
		}
	}
	for _, a := range keyAliases {
		val, ok := lowered[a.alias]
		if !ok {
			continue
		}
		if _, set := folded[a.canonical]; !set {
			folded[a.canonical] = val
		}
	}

	var obj KeyObject
	if err := mapstructure.Decode(folded, &obj); err != nil {
		return APIKey{}, errors.Wrap(err, "Unable to decode api key object")
	}
	return ObjectKey(obj), nil
}
