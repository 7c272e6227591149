package pocket

import "sort"

// Shared identifiers substituted with per-host defaults at resolve time.
const (
	DefaultLoadBalancerID = "defaultLoadBalancer"
	DefaultApplicationID  = "defaultApp"
)

const (
	HostMainnet = "eth-mainnet.gateway.pokt.network"
	HostRopsten = "eth-ropsten.gateway.pokt.network"
	HostGoerli  = "eth-goerli.gateway.pokt.network"
	HostRinkeby = "eth-rinkeby.gateway.pokt.network"
)

var networkHosts = map[string]string{
	"homestead": HostMainnet,
	"mainnet":   HostMainnet,
	"ropsten":   HostRopsten,
	"goerli":    HostGoerli,
	"rinkeby":   HostRinkeby,
}

var defaultLoadBalancers = map[string]string{
	HostMainnet: "6004bcd10040261633ade990",
	HostRopsten: "6004bd4d0040261633ade991",
	HostGoerli:  "6004bd860040261633ade992",
	HostRinkeby: "6004bda20040261633ade994",
}

var defaultApplications = map[string]string{
	HostMainnet: "6004b7060aea5b606775f4d9",
	HostRopsten: "6004b9aa0aea5b606775f4de",
	HostGoerli:  "6004b9e30aea5b606775f4df",
	HostRinkeby: "6004ba310aea5b606775f4e0",
}

// HostForNetwork returns the gateway host serving the named network.
func HostForNetwork(name string) (string, error) {
	host, ok := networkHosts[name]
	if !ok {
		return "", invalidArgument("unsupported network", "network", name)
	}
	return host, nil
}

func DefaultLoadBalancerForHost(host string) (string, error) {
	id, ok := defaultLoadBalancers[host]
	if !ok {
		return "", invalidArgument("unsupported host for default load balancer", "host", host)
	}
	return id, nil
}

func DefaultApplicationForHost(host string) (string, error) {
	id, ok := defaultApplications[host]
	if !ok {
		return "", invalidArgument("unsupported host for default application", "host", host)
	}
	return id, nil
}

// SupportedNetworks lists the network names the gateway serves, sorted.
func SupportedNetworks() []string {
	out := make([]string, 0, len(networkHosts))
	for name := range networkHosts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
