// Package gateway owns the wallet session: it dials the node, checks the
// chain identity, and hands out read and signing contexts.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

var (
	ErrChainMismatch = errors.New("connected to the wrong network")
	ErrNotConnected  = errors.New("wallet not connected")
)

// ChainMismatchError carries the chain the node reported and the one
// expected. It matches ErrChainMismatch.
type ChainMismatchError struct {
	Got  int64
	Want int64
}

func (e *ChainMismatchError) Error() string {
	return fmt.Sprintf("%s: node is on %s (%d), expected %s (%d)",
		ErrChainMismatch, chainName(e.Got), e.Got, chainName(e.Want), e.Want)
}

func (e *ChainMismatchError) Is(target error) bool { return target == ErrChainMismatch }

// WantName returns the expected network's display name.
func (e *ChainMismatchError) WantName() string { return chainName(e.Want) }

func chainName(id int64) string {
	return chain.NewRegistry().NameForChainID(id)
}

// Provider is a connection to a JSON-RPC node.
type Provider interface {
	ChainID(ctx context.Context) (int64, error)
	Backend() bind.ContractBackend
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	Close()
}

// DialFunc opens a Provider for url.
type DialFunc func(ctx context.Context, url string) (Provider, error)

// DialEVM dials url with the go-ethereum client.
func DialEVM(ctx context.Context, url string) (Provider, error) {
	c, err := chain.Dial(ctx, url)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Account is the wallet the session acts for.
type Account interface {
	Address() common.Address
	Name() string
	CanSign() bool
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}

// Session is a connected wallet. A nil *Session means disconnected.
type Session struct {
	Address  common.Address
	ChainID  int64
	Wallet   string
	ReadOnly bool
}

// Config configures a Gateway.
type Config struct {
	URL             string
	ExpectedChainID int64
	Account         Account
	Dial            DialFunc   // defaults to DialEVM
	Logger          log.Logger // defaults to the root logger
}

// Gateway is safe for concurrent use.
type Gateway struct {
	cfg Config
	log log.Logger

	mu       sync.Mutex
	provider Provider
	session  *Session
}

// New creates a disconnected Gateway.
func New(cfg Config) *Gateway {
	if cfg.Dial == nil {
		cfg.Dial = DialEVM
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	return &Gateway{cfg: cfg, log: logger.New("component", "gateway")}
}

// Connect dials the node and checks its chain id. While connected it
// returns the cached session without dialing again. On a chain mismatch the
// gateway stays disconnected.
func (g *Gateway) Connect(ctx context.Context) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		return g.session, nil
	}
	if g.cfg.Account == nil {
		return nil, fmt.Errorf("%w: no wallet configured", ErrNotConnected)
	}

	p, err := g.cfg.Dial(ctx, g.cfg.URL)
	if err != nil {
		return nil, err
	}

	id, err := p.ChainID(ctx)
	if err != nil {
		p.Close()
		return nil, err
	}
	if g.cfg.ExpectedChainID != 0 && id != g.cfg.ExpectedChainID {
		p.Close()
		g.log.Warn("Chain mismatch", "got", id, "want", g.cfg.ExpectedChainID)
		return nil, &ChainMismatchError{Got: id, Want: g.cfg.ExpectedChainID}
	}

	g.provider = p
	g.session = &Session{
		Address:  g.cfg.Account.Address(),
		ChainID:  id,
		Wallet:   g.cfg.Account.Name(),
		ReadOnly: !g.cfg.Account.CanSign(),
	}
	g.log.Info("Wallet connected", "address", g.session.Address, "chain", id, "readonly", g.session.ReadOnly)
	return g.session, nil
}

// Session returns the current session, or nil when disconnected.
func (g *Gateway) Session() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Disconnect drops the session and closes the connection.
func (g *Gateway) Disconnect() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disconnectLocked()
}

func (g *Gateway) disconnectLocked() {
	if g.provider != nil {
		g.provider.Close()
	}
	if g.session != nil {
		g.log.Info("Wallet disconnected", "address", g.session.Address)
	}
	g.provider = nil
	g.session = nil
}

// Verify re-reads the chain id. If the node moved to another chain the
// session is invalidated and a *ChainMismatchError returned.
func (g *Gateway) Verify(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verifyLocked(ctx)
}

func (g *Gateway) verifyLocked(ctx context.Context) error {
	if g.session == nil {
		return ErrNotConnected
	}
	id, err := g.provider.ChainID(ctx)
	if err != nil {
		return err
	}
	if id != g.session.ChainID {
		want := g.session.ChainID
		g.log.Warn("Chain changed", "from", want, "to", id)
		g.disconnectLocked()
		return &ChainMismatchError{Got: id, Want: want}
	}
	return nil
}

// Reader returns a backend for read-only calls.
func (g *Gateway) Reader() (bind.ContractBackend, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.provider == nil {
		return nil, ErrNotConnected
	}
	return g.provider.Backend(), nil
}

// Signer re-verifies the chain and returns transact options for the
// session's wallet.
func (g *Gateway) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.verifyLocked(ctx); err != nil {
		return nil, err
	}
	if g.session.ReadOnly {
		return nil, fmt.Errorf("%w: %s", wallet.ErrWatchOnly, g.session.Wallet)
	}
	return g.cfg.Account.TransactOpts(ctx, big.NewInt(g.session.ChainID))
}

// WaitMined blocks until tx is mined. A reverted transaction returns
// chain.ErrTxReverted.
func (g *Gateway) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	g.mu.Lock()
	p := g.provider
	g.mu.Unlock()

	if p == nil {
		return nil, ErrNotConnected
	}
	return p.WaitMined(ctx, tx)
}
