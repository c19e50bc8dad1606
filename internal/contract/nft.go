package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NFT is the typed facade over a deployed CryptoDevs collection. Reads go
// through any backend; writes need transact options from a signer.
type NFT struct {
	address  common.Address
	contract *bind.BoundContract
}

// Bind attaches parsed to address after checking its shape. The address is
// trusted; no code check is made.
func Bind(address common.Address, parsed abi.ABI, backend bind.ContractBackend) (*NFT, error) {
	kind, _ := GetBuiltin(KindCryptoDevs)
	if err := ValidateShape(parsed, kind.Surface); err != nil {
		return nil, err
	}
	return &NFT{
		address:  address,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
	}, nil
}

// BindCryptoDevs binds the embedded CryptoDevs ABI.
func BindCryptoDevs(address common.Address, backend bind.ContractBackend) (*NFT, error) {
	kind, _ := GetBuiltin(KindCryptoDevs)
	parsed, err := kind.Parse()
	if err != nil {
		return nil, err
	}
	return Bind(address, parsed, backend)
}

// Address returns the contract address.
func (n *NFT) Address() common.Address { return n.address }

// Owner returns the collection owner.
func (n *NFT) Owner(ctx context.Context) (common.Address, error) {
	out, err := call(ctx, n.contract, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// PresaleStarted reports whether startPresale has been called.
func (n *NFT) PresaleStarted(ctx context.Context) (bool, error) {
	out, err := call(ctx, n.contract, "presaleStarted")
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// PresaleEnded returns the presale end as unix seconds. Zero means the
// presale was never started.
func (n *NFT) PresaleEnded(ctx context.Context) (int64, error) {
	v, err := n.uint256(ctx, "presaleEnded")
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, fmt.Errorf("presaleEnded out of range: %s", v)
	}
	return v.Int64(), nil
}

// TokenIDs returns how many tokens have been minted.
func (n *NFT) TokenIDs(ctx context.Context) (uint64, error) {
	v, err := n.uint256(ctx, "tokenIds")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("tokenIds out of range: %s", v)
	}
	return v.Uint64(), nil
}

// MaxTokenIDs returns the collection's supply cap.
func (n *NFT) MaxTokenIDs(ctx context.Context) (uint64, error) {
	v, err := n.uint256(ctx, "maxTokenIds")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("maxTokenIds out of range: %s", v)
	}
	return v.Uint64(), nil
}

// Price returns the mint price in wei.
func (n *NFT) Price(ctx context.Context) (*big.Int, error) {
	return n.uint256(ctx, "_price")
}

// StartPresale opens the presale window. Only the owner succeeds on chain.
func (n *NFT) StartPresale(opts *bind.TransactOpts) (*types.Transaction, error) {
	return transact(opts, n.contract, nil, "startPresale")
}

// PresaleMint mints one token for a whitelisted sender, paying value.
func (n *NFT) PresaleMint(opts *bind.TransactOpts, value *big.Int) (*types.Transaction, error) {
	return transact(opts, n.contract, value, "presaleMint")
}

// Mint mints one token after the presale, paying value.
func (n *NFT) Mint(opts *bind.TransactOpts, value *big.Int) (*types.Transaction, error) {
	return transact(opts, n.contract, value, "mint")
}

func (n *NFT) uint256(ctx context.Context, method string) (*big.Int, error) {
	out, err := call(ctx, n.contract, method)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func call(ctx context.Context, c *bind.BoundContract, method string, args ...any) ([]any, error) {
	var out []any
	if err := c.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("calling %s: empty result", method)
	}
	return out, nil
}

// transact sends method with a copy of opts carrying value, so callers can
// reuse their options.
func transact(opts *bind.TransactOpts, c *bind.BoundContract, value *big.Int, method string, args ...any) (*types.Transaction, error) {
	o := *opts
	o.Value = value
	tx, err := c.Transact(&o, method, args...)
	if err != nil {
		return nil, fmt.Errorf("sending %s: %w", method, err)
	}
	return tx, nil
}
