package contract_test

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeBackend answers eth_call by method name and records sent
// transactions. Unused backend methods panic through the nil embed.
type fakeBackend struct {
	bind.ContractBackend

	abi     abi.ABI
	mu      sync.Mutex
	results map[string][]any
	fail    map[string]error
	calls   []ethereum.CallMsg
	sent    []*types.Transaction
}

func newFakeBackend(parsed abi.ABI) *fakeBackend {
	return &fakeBackend{
		abi:     parsed,
		results: make(map[string][]any),
		fail:    make(map[string]error),
	}
}

func (f *fakeBackend) set(method string, values ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = values
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, msg)

	m, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	if err := f.fail[m.Name]; err != nil {
		return nil, err
	}
	values, ok := f.results[m.Name]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return m.Outputs.Pack(values...)
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

// legacyOpts signs with Hardhat's first dev key and pins gas fields so
// Transact goes straight to SendTransaction.
func legacyOpts() *bind.TransactOpts {
	key, _ := cryptoKey()
	opts, _ := bind.NewKeyedTransactorWithChainID(key, big.NewInt(11155111))
	opts.Nonce = big.NewInt(7)
	opts.GasPrice = big.NewInt(1_000_000_000)
	opts.GasLimit = 200_000
	return opts
}
