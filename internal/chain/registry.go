package chain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNetworkNotFound is returned when a network is not in the registry.
var ErrNetworkNotFound = errors.New("network not found")

// Network holds the metadata devmint needs for one EVM network.
type Network struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	ChainID        int64    `json:"chain_id"`
	NativeCurrency string   `json:"native_currency"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer"`
	FaucetURL      string   `json:"faucet_url,omitempty"`
}

// Registry is the network registry.
type Registry struct {
	networks []Network
	byName   map[string]*Network
	byID     map[int64]*Network
}

// NewRegistry returns the registry of supported networks.
func NewRegistry() *Registry {
	networks := allNetworks()
	r := &Registry{
		networks: networks,
		byName:   make(map[string]*Network, len(networks)),
		byID:     make(map[int64]*Network, len(networks)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
		r.byID[n.ChainID] = n
	}
	return r
}

// All returns every network in the registry.
func (r *Registry) All() []Network {
	return r.networks
}

// GetByName finds a network by its slug name (e.g. "sepolia").
func (r *Registry) GetByName(name string) (*Network, error) {
	n, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNetworkNotFound, name)
	}
	return n, nil
}

// GetByChainID finds a network by its numeric chain ID.
func (r *Registry) GetByChainID(id int64) (*Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: chain id %d", ErrNetworkNotFound, id)
	}
	return n, nil
}

// TxURL returns the explorer link for a transaction, or "" if the network has
// no explorer.
func (n *Network) TxURL(hash string) string {
	if n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/tx/" + hash
}

// AddressURL returns the explorer link for an address.
func (n *Network) AddressURL(addr string) string {
	if n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/address/" + addr
}

// NameForChainID returns a display name for id, falling back to "chain <id>".
func (r *Registry) NameForChainID(id int64) string {
	if n, err := r.GetByChainID(id); err == nil {
		return n.DisplayName
	}
	return "chain " + strconv.FormatInt(id, 10)
}

// --- network data ---

func allNetworks() []Network {
	return []Network{
		{
			Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111,
			NativeCurrency: "ETH",
			RPCs: []string{
				"https://ethereum-sepolia-rpc.publicnode.com",
				"https://rpc.sepolia.org",
				"https://sepolia.gateway.tenderly.co",
			},
			Explorer:  "https://sepolia.etherscan.io",
			FaucetURL: "https://sepoliafaucet.com",
		},
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer:       "https://etherscan.io",
		},
		{
			Name: "goerli", DisplayName: "Goerli", ChainID: 5,
			NativeCurrency: "ETH",
			RPCs:           []string{"https://ethereum-goerli-rpc.publicnode.com"},
			Explorer:       "https://goerli.etherscan.io",
		},
		{
			Name: "hardhat", DisplayName: "Hardhat (local)", ChainID: 31337,
			NativeCurrency: "ETH",
			RPCs:           []string{"http://127.0.0.1:8545"},
		},
	}
}
