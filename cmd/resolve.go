package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/rpc"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// openKeystore opens the key storage for signing wallets.
var openKeystore = func(dir string) wallet.KeyStore {
	return wallet.DefaultKeystore(filepath.Join(dir, "keys"))
}

func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeystore(openKeystore(cfg.Dir())),
	)
}

func loadRegistry() (*contract.Registry, error) {
	reg := contract.NewRegistry(cfg.ContractsPath())
	if err := reg.Load(); err != nil {
		return nil, fmt.Errorf("loading contracts: %w", err)
	}
	return reg, nil
}

// currentNetwork returns the configured network.
func currentNetwork() (*chain.Network, error) {
	return chain.NewRegistry().GetByName(cfg.Network)
}

// rpcURLs lists custom endpoints first, then the built-in ones.
func rpcURLs(n *chain.Network) []string {
	urls := append([]string{}, cfg.GetRPCs(n.Name)...)
	return append(urls, n.RPCs...)
}

// pickRPC chooses an endpoint for the current network with the configured
// algorithm.
func pickRPC(ctx context.Context) (string, error) {
	n, err := currentNetwork()
	if err != nil {
		return "", err
	}
	urls := rpcURLs(n)
	if len(urls) == 0 {
		return "", fmt.Errorf("no RPCs configured for %s; add one with `devmint rpc add %s <url>`", n.Name, n.Name)
	}
	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.SelectBest(ctx, urls, cfg.RPCAlgorithm)
	if err != nil {
		return "", err
	}
	log.Debug("Selected RPC", "network", n.Name, "url", url)
	return url, nil
}

// resolveWallet returns the wallet from --wallet, the configured default,
// or the manager's default, in that order.
func resolveWallet(mgr *wallet.Manager) (*wallet.Wallet, error) {
	name := walletFlag
	if name == "" {
		name = cfg.DefaultWallet
	}
	return mgr.Resolve(name)
}

// resolveContract finds a contract address from flag, then config, then the
// registry entry name@network.
func resolveContract(flag, configured, name string) (common.Address, error) {
	for _, s := range []string{flag, configured} {
		if s == "" {
			continue
		}
		if !common.IsHexAddress(s) {
			return common.Address{}, fmt.Errorf("invalid contract address %q", s)
		}
		return common.HexToAddress(s), nil
	}

	reg, err := loadRegistry()
	if err != nil {
		return common.Address{}, err
	}
	e, err := reg.Get(name, cfg.Network)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w; deploy it with `devmint deploy` or pass --contract", err)
	}
	return common.HexToAddress(e.Address), nil
}

func collectionAddress() (common.Address, error) {
	return resolveContract(contractFlag, cfg.ContractAddress, contract.KindCryptoDevs)
}

func whitelistAddress(flag string) (common.Address, error) {
	return resolveContract(flag, cfg.WhitelistAddress, contract.KindWhitelist)
}

// newGateway builds a gateway for the resolved wallet on the picked RPC.
func newGateway(ctx context.Context) (*gateway.Gateway, error) {
	mgr := newWalletManager()
	w, err := resolveWallet(mgr)
	if err != nil {
		return nil, err
	}
	url, err := pickRPC(ctx)
	if err != nil {
		return nil, err
	}
	return gateway.New(gateway.Config{
		URL:             url,
		ExpectedChainID: cfg.ExpectedChainID,
		Account:         wallet.NewSigner(w, mgr.Keys()),
	}), nil
}

// connectBound connects gw and hands its read backend to attach. Any
// failure after dialing leaves gw disconnected.
func connectBound(ctx context.Context, gw *gateway.Gateway, attach func(bind.ContractBackend) error) (*gateway.Session, error) {
	session, err := gw.Connect(ctx)
	if err != nil {
		return nil, err
	}
	backend, err := gw.Reader()
	if err == nil {
		err = attach(backend)
	}
	if err != nil {
		gw.Disconnect()
		return nil, err
	}
	return session, nil
}

// connectCollection connects and binds the collection contract.
func connectCollection(ctx context.Context) (*gateway.Gateway, *gateway.Session, *contract.NFT, error) {
	addr, err := collectionAddress()
	if err != nil {
		return nil, nil, nil, err
	}
	gw, err := newGateway(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	var nft *contract.NFT
	session, err := connectBound(ctx, gw, func(backend bind.ContractBackend) (err error) {
		nft, err = contract.BindCryptoDevs(addr, backend)
		return err
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return gw, session, nft, nil
}

func explorerTx(hash string) string {
	n, err := currentNetwork()
	if err != nil {
		return ""
	}
	return n.TxURL(hash)
}
