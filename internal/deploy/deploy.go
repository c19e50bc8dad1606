// Package deploy puts the Whitelist and CryptoDevs contracts on chain.
package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/devmint/internal/chain"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
)

// Backend can both send transactions and fetch receipts.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Result describes a confirmed deployment.
type Result struct {
	Address  common.Address
	TxHash   common.Hash
	Block    uint64
	GasUsed  uint64
	Deployer common.Address
}

// Entry converts r into a registry entry.
func (r *Result) Entry(name, network, kind string) *contract.Entry {
	return &contract.Entry{
		Name:       name,
		Network:    network,
		Address:    r.Address.Hex(),
		Kind:       kind,
		Deployer:   r.Deployer.Hex(),
		TxHash:     r.TxHash.Hex(),
		DeployedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Deployer sends contract creation transactions from one account.
type Deployer struct {
	backend Backend
	opts    *bind.TransactOpts
	log     log.Logger
}

// New creates a Deployer.
func New(backend Backend, opts *bind.TransactOpts, logger log.Logger) *Deployer {
	if logger == nil {
		logger = log.Root()
	}
	return &Deployer{backend: backend, opts: opts, log: logger.New("component", "deploy")}
}

// DeployWhitelist deploys the whitelist capped at maxAddresses.
func (d *Deployer) DeployWhitelist(ctx context.Context, art *contract.Artifact, maxAddresses uint8) (*Result, error) {
	return d.Deploy(ctx, art, maxAddresses)
}

// DeployCollection deploys the collection pointing at metadataURL and the
// already deployed whitelist.
func (d *Deployer) DeployCollection(ctx context.Context, art *contract.Artifact, metadataURL string, whitelist common.Address) (*Result, error) {
	if whitelist == (common.Address{}) {
		return nil, fmt.Errorf("whitelist address is required")
	}
	return d.Deploy(ctx, art, metadataURL, whitelist)
}

// Deploy sends art with constructor args and waits for the receipt.
func (d *Deployer) Deploy(ctx context.Context, art *contract.Artifact, args ...any) (*Result, error) {
	addr, tx, err := d.Send(ctx, art, args...)
	if err != nil {
		return nil, err
	}
	return d.Wait(ctx, addr, tx)
}

// Send submits the creation transaction without waiting.
func (d *Deployer) Send(ctx context.Context, art *contract.Artifact, args ...any) (common.Address, *types.Transaction, error) {
	opts := *d.opts
	opts.Context = ctx

	addr, tx, _, err := bind.DeployContract(&opts, art.ABI, art.Bytecode, d.backend, args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("deploying %s: %w", artifactName(art), err)
	}
	d.log.Info("Deployment sent", "contract", artifactName(art), "address", addr, "hash", tx.Hash())
	return addr, tx, nil
}

// Wait blocks until tx is mined and checks it succeeded.
func (d *Deployer) Wait(ctx context.Context, addr common.Address, tx *types.Transaction) (*Result, error) {
	receipt, err := bind.WaitMined(ctx, d.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for deployment %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: deployment %s", chain.ErrTxReverted, tx.Hash().Hex())
	}
	d.log.Info("Deployment confirmed", "address", addr, "block", receipt.BlockNumber, "gas", receipt.GasUsed)

	res := &Result{
		Address:  addr,
		TxHash:   tx.Hash(),
		GasUsed:  receipt.GasUsed,
		Deployer: d.opts.From,
	}
	if receipt.BlockNumber != nil {
		res.Block = receipt.BlockNumber.Uint64()
	}
	return res, nil
}

func artifactName(art *contract.Artifact) string {
	if art.Name != "" {
		return art.Name
	}
	return "contract"
}
