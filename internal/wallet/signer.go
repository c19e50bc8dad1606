package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrWatchOnly is returned when a signature is requested from a wallet that
// has no key.
var ErrWatchOnly = errors.New("wallet is watch-only and cannot sign")

// Signer produces transaction options for one wallet.
type Signer struct {
	wallet *Wallet
	ks     KeyStore
}

// NewSigner creates a signer for the given wallet.
func NewSigner(w *Wallet, ks KeyStore) *Signer {
	return &Signer{wallet: w, ks: ks}
}

// Address returns the wallet's address.
func (s *Signer) Address() common.Address {
	return common.HexToAddress(s.wallet.Address)
}

// Name returns the wallet's name.
func (s *Signer) Name() string { return s.wallet.Name }

// CanSign reports whether TransactOpts can succeed.
func (s *Signer) CanSign() bool { return s.wallet.CanSign() }

// TransactOpts loads the key and returns options bound to ctx and chainID.
func (s *Signer) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	key, err := s.privateKey()
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("building transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

func (s *Signer) privateKey() (*ecdsa.PrivateKey, error) {
	if !s.wallet.CanSign() {
		return nil, fmt.Errorf("%w: %s", ErrWatchOnly, s.wallet.Name)
	}

	hexKey, err := s.ks.Retrieve(s.wallet.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key: %w", err)
	}

	key, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if crypto.PubkeyToAddress(key.PublicKey) != s.Address() {
		return nil, fmt.Errorf("stored key does not match wallet %s", s.wallet.Name)
	}
	return key, nil
}

// FromPrivateKey builds an ephemeral signer for hexKey without persisting
// anything. Used by the deploy flow, which reads PRIVATE_KEY from .env.
func FromPrivateKey(name, hexKey string) (*Signer, error) {
	key, err := crypto.HexToECDSA(stripHexPrefix(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	ks := NewInMemoryKeystore()
	ref, _ := ks.Store(name, hexKey)
	w := &Wallet{
		Name:    name,
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Type:    TypeSigning,
		KeyRef:  ref,
	}
	return NewSigner(w, ks), nil
}
