package contract

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Whitelist is the facade over the presale whitelist contract.
type Whitelist struct {
	address  common.Address
	contract *bind.BoundContract
}

// BindWhitelist binds the embedded Whitelist ABI to address.
func BindWhitelist(address common.Address, backend bind.ContractBackend) (*Whitelist, error) {
	kind, _ := GetBuiltin(KindWhitelist)
	parsed, err := kind.Parse()
	if err != nil {
		return nil, err
	}
	if err := ValidateShape(parsed, kind.Surface); err != nil {
		return nil, err
	}
	return &Whitelist{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// Address returns the contract address.
func (w *Whitelist) Address() common.Address { return w.address }

// Contains reports whether addr has joined.
func (w *Whitelist) Contains(ctx context.Context, addr common.Address) (bool, error) {
	out, err := call(ctx, w.contract, "whitelistedAddresses", addr)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// Count returns how many addresses have joined.
func (w *Whitelist) Count(ctx context.Context) (uint8, error) {
	return w.uint8(ctx, "numAddressesWhitelisted")
}

// Capacity returns the maximum number of addresses.
func (w *Whitelist) Capacity(ctx context.Context) (uint8, error) {
	return w.uint8(ctx, "maxWhitelistedAddresses")
}

// Join adds the sender's address.
func (w *Whitelist) Join(opts *bind.TransactOpts) (*types.Transaction, error) {
	return transact(opts, w.contract, nil, "addAddressToWhitelist")
}

func (w *Whitelist) uint8(ctx context.Context, method string) (uint8, error) {
	out, err := call(ctx, w.contract, method)
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}
