package pocket

import "strings"

// Network is the part of a chain definition the gateway cares about.
type Network struct {
	Name    string `json:"name" yaml:"name"`
	ChainID uint64 `json:"chainId" yaml:"chainId"`
}

var knownNetworks = map[string]Network{
	"homestead": {Name: "homestead", ChainID: 1},
	"mainnet":   {Name: "homestead", ChainID: 1},
	"ropsten":   {Name: "ropsten", ChainID: 3},
	"rinkeby":   {Name: "rinkeby", ChainID: 4},
	"goerli":    {Name: "goerli", ChainID: 5},
}

// LookupNetwork resolves a network name (case-insensitive) to its registry entry.
func LookupNetwork(name string) (Network, error) {
	n, ok := knownNetworks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Network{}, invalidArgument("unknown network", "network", name)
	}
	return n, nil
}
