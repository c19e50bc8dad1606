package mint

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

// ErrBusy is returned when an action is requested while a transaction is
// still waiting for confirmation.
var ErrBusy = errors.New("a transaction is already in flight")

// Notices shown after a confirmed transaction.
const (
	NoticeMinted         = "You successfully minted a Crypto Dev!"
	NoticePresaleStarted = "Presale started!"
)

// Writer is the write side of the collection contract.
type Writer interface {
	StartPresale(opts *bind.TransactOpts) (*types.Transaction, error)
	PresaleMint(opts *bind.TransactOpts, value *big.Int) (*types.Transaction, error)
	Mint(opts *bind.TransactOpts, value *big.Int) (*types.Transaction, error)
}

// SignerSource hands out transact options for the connected wallet.
type SignerSource interface {
	Signer(ctx context.Context) (*bind.TransactOpts, error)
}

// Confirmer waits for a transaction to be mined.
type Confirmer interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// DispatcherConfig wires a Dispatcher.
type DispatcherConfig struct {
	Writer    Writer
	Signer    SignerSource
	Confirmer Confirmer
	Store     *Store
	Price     *big.Int // attached to presaleMint and mint
	// Refresh runs after a confirmed startPresale. Usually Poller.CheckPresale.
	Refresh func(ctx context.Context) bool
	Logger  log.Logger
}

// Dispatcher runs the page's actions. Each action signs, sends, and waits
// for the receipt with the store's Loading flag set.
type Dispatcher struct {
	cfg DispatcherConfig
	log log.Logger

	inflight atomic.Bool // held from signing until the receipt wait returns
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Root()
	}
	if cfg.Price == nil {
		cfg.Price = new(big.Int)
	}
	return &Dispatcher{cfg: cfg, log: logger.New("component", "dispatcher")}
}

// Price returns the value attached to mint calls.
func (d *Dispatcher) Price() *big.Int { return new(big.Int).Set(d.cfg.Price) }

// Do runs the action for a, as picked from the rendered presentation.
func (d *Dispatcher) Do(ctx context.Context, a Action) (*types.Receipt, error) {
	switch a {
	case ActionStartPresale:
		return d.StartPresale(ctx)
	case ActionPresaleMint:
		return d.PresaleMint(ctx)
	case ActionPublicMint:
		return d.PublicMint(ctx)
	default:
		return nil, nil
	}
}

// StartPresale opens the presale and then re-reads the presale state.
func (d *Dispatcher) StartPresale(ctx context.Context) (*types.Receipt, error) {
	receipt, err := d.run(ctx, "startPresale", NoticePresaleStarted, d.cfg.Writer.StartPresale)
	if err != nil {
		return receipt, err
	}
	if d.cfg.Refresh != nil {
		d.cfg.Refresh(ctx)
	}
	return receipt, nil
}

// PresaleMint mints during the presale. The contract rejects senders that
// are not whitelisted.
func (d *Dispatcher) PresaleMint(ctx context.Context) (*types.Receipt, error) {
	return d.run(ctx, "presaleMint", NoticeMinted, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return d.cfg.Writer.PresaleMint(opts, d.Price())
	})
}

// PublicMint mints after the presale.
func (d *Dispatcher) PublicMint(ctx context.Context) (*types.Receipt, error) {
	return d.run(ctx, "mint", NoticeMinted, func(opts *bind.TransactOpts) (*types.Transaction, error) {
		return d.cfg.Writer.Mint(opts, d.Price())
	})
}

func (d *Dispatcher) run(ctx context.Context, op, notice string, send func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	if !d.inflight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer d.inflight.Store(false)
	if d.cfg.Store.State().Loading {
		return nil, ErrBusy
	}

	opts, err := d.cfg.Signer.Signer(ctx)
	if err != nil {
		d.log.Error("Cannot sign", "op", op, "err", err)
		return nil, err
	}

	tx, err := send(opts)
	if err != nil {
		d.log.Error("Transaction failed", "op", op, "err", err)
		return nil, err
	}

	d.cfg.Store.SetLoading(true)
	defer d.cfg.Store.SetLoading(false)
	d.log.Info("Transaction sent", "op", op, "hash", tx.Hash())

	receipt, err := d.cfg.Confirmer.WaitMined(ctx, tx)
	if err != nil {
		d.log.Error("Transaction failed", "op", op, "hash", tx.Hash(), "err", err)
		return receipt, err
	}

	d.log.Info("Transaction confirmed", "op", op, "hash", tx.Hash(), "block", receipt.BlockNumber)
	d.cfg.Store.SetNotice(notice)
	return receipt, nil
}
