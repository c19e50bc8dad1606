package wallet_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerTransactOpts(t *testing.T) {
	mgr := wallet.NewManager()
	w, err := mgr.AddWithKey("main", devKey)
	require.NoError(t, err)

	signer := wallet.NewSigner(w, mgr.Keys())
	assert.True(t, signer.CanSign())
	assert.Equal(t, "main", signer.Name())

	ctx := context.Background()
	opts, err := signer.TransactOpts(ctx, big.NewInt(11155111))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(devAddress), opts.From)
	assert.Equal(t, ctx, opts.Context)

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(11155111),
		Nonce:     0,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})
	signed, err := opts.Signer(opts.From, tx)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(11155111)), signed)
	require.NoError(t, err)
	assert.Equal(t, opts.From, sender)
}

func TestSignerWatchOnly(t *testing.T) {
	mgr := wallet.NewManager()
	w, err := mgr.AddWatchOnly("viewer", devAddress)
	require.NoError(t, err)

	signer := wallet.NewSigner(w, mgr.Keys())
	assert.False(t, signer.CanSign())
	assert.Equal(t, common.HexToAddress(devAddress), signer.Address())

	_, err = signer.TransactOpts(context.Background(), big.NewInt(1))
	assert.ErrorIs(t, err, wallet.ErrWatchOnly)
}

func TestSignerMissingKey(t *testing.T) {
	w := &wallet.Wallet{Name: "lost", Address: devAddress, Type: wallet.TypeSigning, KeyRef: "devmint.lost"}

	_, err := wallet.NewSigner(w, wallet.NewInMemoryKeystore()).TransactOpts(context.Background(), big.NewInt(1))
	assert.ErrorContains(t, err, "retrieving key")
}

func TestSignerMismatchedKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	ref, _ := ks.Store("other", "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	w := &wallet.Wallet{Name: "other", Address: devAddress, Type: wallet.TypeSigning, KeyRef: ref}

	_, err := wallet.NewSigner(w, ks).TransactOpts(context.Background(), big.NewInt(1))
	assert.ErrorContains(t, err, "does not match")
}

func TestFromPrivateKey(t *testing.T) {
	signer, err := wallet.FromPrivateKey("env", devKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(devAddress), signer.Address())

	_, err = wallet.FromPrivateKey("env", "zz")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}
