package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrTxReverted is returned when a mined transaction has status 0.
var ErrTxReverted = errors.New("transaction reverted")

// Client is a thin wrapper over ethclient that exposes the pieces devmint
// needs: chain identity, a contract backend, and receipt waiting.
type Client struct {
	url string
	eth *ethclient.Client
}

// Dial connects to an EVM JSON-RPC endpoint (http, ws or ipc).
func Dial(ctx context.Context, url string) (*Client, error) {
	eth, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", url, err)
	}
	return &Client{url: url, eth: eth}, nil
}

// URL returns the endpoint this client talks to.
func (c *Client) URL() string { return c.url }

// Backend returns the client as a contract backend for bound contracts.
func (c *Client) Backend() bind.ContractBackend { return c.eth }

// Eth exposes the go-ethereum client, which also serves as a deploy backend.
func (c *Client) Eth() *ethclient.Client { return c.eth }

// ChainID returns the chain's ID.
func (c *Client) ChainID(ctx context.Context) (int64, error) {
	id, err := c.eth.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading chain id: %w", err)
	}
	return id.Int64(), nil
}

// BlockNumber returns the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// Balance returns the native balance of addr in wei.
func (c *Client) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return c.eth.BalanceAt(ctx, addr, nil)
}

// Ping tests the RPC endpoint and returns latency + block number.
func (c *Client) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	return time.Since(start), blockNum, err
}

// WaitMined blocks until tx is mined or ctx is done. A reverted transaction
// returns its receipt together with ErrTxReverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w (hash: %s)", ErrTxReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	c.eth.Close()
}

// --- math helpers ---

var weiPerETH = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// WeiToETH converts a wei amount to an ETH decimal string.
func WeiToETH(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt(weiPerETH))
	return f.Text('f', -1)
}

// ETHToWei parses an ETH decimal string ("0.01") into wei.
func ETHToWei(eth string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(eth)
	if !ok {
		return nil, fmt.Errorf("invalid ETH value: %q", eth)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative ETH value: %q", eth)
	}
	r.Mul(r, new(big.Rat).SetInt(weiPerETH))
	if !r.IsInt() {
		return nil, fmt.Errorf("ETH value %q has more than 18 decimals", eth)
	}
	return new(big.Int).Set(r.Num()), nil
}
