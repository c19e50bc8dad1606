package mint

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var errRPC = errors.New("rpc unavailable")

type fakeReader struct {
	mu          sync.Mutex
	owner       common.Address
	started     bool
	end         int64
	minted      uint64
	supply      uint64
	failMinted  bool
	failStarted bool
	failSupply  bool

	startedCalls int
	mintedCalls  int
}

func (r *fakeReader) Owner(context.Context) (common.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner, nil
}

func (r *fakeReader) PresaleStarted(context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startedCalls++
	if r.failStarted {
		return false, errRPC
	}
	return r.started, nil
}

func (r *fakeReader) PresaleEnded(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.end, nil
}

func (r *fakeReader) TokenIDs(context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mintedCalls++
	if r.failMinted {
		return 0, errRPC
	}
	return r.minted, nil
}

func (r *fakeReader) MaxTokenIDs(context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSupply {
		return 0, errRPC
	}
	return r.supply, nil
}

func (r *fakeReader) calls() (started, minted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startedCalls, r.mintedCalls
}

type fakeWriter struct {
	mu     sync.Mutex
	err    error
	ops    []string
	values []*big.Int
}

func (w *fakeWriter) record(op string, value *big.Int) (*types.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ops = append(w.ops, op)
	w.values = append(w.values, value)
	if w.err != nil {
		return nil, w.err
	}
	return types.NewTx(&types.LegacyTx{Nonce: uint64(len(w.ops)), Value: value}), nil
}

func (w *fakeWriter) StartPresale(*bind.TransactOpts) (*types.Transaction, error) {
	return w.record("startPresale", nil)
}

func (w *fakeWriter) PresaleMint(_ *bind.TransactOpts, value *big.Int) (*types.Transaction, error) {
	return w.record("presaleMint", value)
}

func (w *fakeWriter) Mint(_ *bind.TransactOpts, value *big.Int) (*types.Transaction, error) {
	return w.record("mint", value)
}

type fakeSigner struct{ err error }

func (s fakeSigner) Signer(context.Context) (*bind.TransactOpts, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &bind.TransactOpts{From: me}, nil
}

// gatedSigner blocks inside Signer until release is closed, announcing
// each entry on entered.
type gatedSigner struct {
	entered chan struct{}
	release chan struct{}
}

func (s gatedSigner) Signer(context.Context) (*bind.TransactOpts, error) {
	s.entered <- struct{}{}
	<-s.release
	return &bind.TransactOpts{From: me}, nil
}

// fakeConfirmer records the store's state while it waits.
type fakeConfirmer struct {
	store         *Store
	err           error
	status        uint64
	sawLoading    bool
	sawUIDuringTx UIState
}

func (c *fakeConfirmer) WaitMined(_ context.Context, tx *types.Transaction) (*types.Receipt, error) {
	st := c.store.State()
	c.sawLoading = st.Loading
	c.sawUIDuringTx = st.UI
	if c.err != nil {
		return nil, c.err
	}
	return &types.Receipt{Status: c.status, TxHash: tx.Hash(), BlockNumber: big.NewInt(1)}, nil
}
