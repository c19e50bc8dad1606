package gateway_test

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	devKey  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	sepolia = int64(11155111)
)

type fakeProvider struct {
	chainID atomic.Int64
	closed  atomic.Bool
	err     error
}

func (p *fakeProvider) ChainID(context.Context) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.chainID.Load(), nil
}

func (p *fakeProvider) Backend() bind.ContractBackend { return nil }

func (p *fakeProvider) WaitMined(context.Context, *types.Transaction) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (p *fakeProvider) Close() { p.closed.Store(true) }

func newGateway(t *testing.T, chainID int64, account gateway.Account) (*gateway.Gateway, *fakeProvider, *atomic.Int32) {
	t.Helper()
	p := &fakeProvider{}
	p.chainID.Store(chainID)
	dials := &atomic.Int32{}
	gw := gateway.New(gateway.Config{
		URL:             "http://node",
		ExpectedChainID: sepolia,
		Account:         account,
		Dial: func(_ context.Context, url string) (gateway.Provider, error) {
			assert.Equal(t, "http://node", url)
			dials.Add(1)
			return p, nil
		},
	})
	return gw, p, dials
}

func signingAccount(t *testing.T) *wallet.Signer {
	t.Helper()
	s, err := wallet.FromPrivateKey("dev", devKey)
	require.NoError(t, err)
	return s
}

func TestConnectCachesSession(t *testing.T) {
	gw, _, dials := newGateway(t, sepolia, signingAccount(t))
	ctx := context.Background()

	first, err := gw.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, sepolia, first.ChainID)
	assert.Equal(t, "dev", first.Wallet)
	assert.False(t, first.ReadOnly)

	second, err := gw.Connect(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), dials.Load())
	assert.Same(t, first, gw.Session())
}

func TestConnectChainMismatch(t *testing.T) {
	gw, p, _ := newGateway(t, 1, signingAccount(t))

	_, err := gw.Connect(context.Background())
	require.ErrorIs(t, err, gateway.ErrChainMismatch)

	var mismatch *gateway.ChainMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(1), mismatch.Got)
	assert.Equal(t, sepolia, mismatch.Want)
	assert.Equal(t, "Sepolia", mismatch.WantName())

	assert.Nil(t, gw.Session())
	assert.True(t, p.closed.Load())

	_, err = gw.Reader()
	assert.ErrorIs(t, err, gateway.ErrNotConnected)
}

func TestConnectWithoutAccount(t *testing.T) {
	gw, _, dials := newGateway(t, sepolia, nil)

	_, err := gw.Connect(context.Background())
	assert.ErrorIs(t, err, gateway.ErrNotConnected)
	assert.Zero(t, dials.Load())
}

func TestConnectDialError(t *testing.T) {
	gw := gateway.New(gateway.Config{
		Account: signingAccount(t),
		Dial: func(context.Context, string) (gateway.Provider, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := gw.Connect(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.Nil(t, gw.Session())
}

func TestDisconnectInvalidatesSession(t *testing.T) {
	gw, p, dials := newGateway(t, sepolia, signingAccount(t))
	ctx := context.Background()

	_, err := gw.Connect(ctx)
	require.NoError(t, err)

	gw.Disconnect()
	assert.Nil(t, gw.Session())
	assert.True(t, p.closed.Load())

	_, err = gw.Signer(ctx)
	assert.ErrorIs(t, err, gateway.ErrNotConnected)

	_, err = gw.Connect(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), dials.Load())
}

func TestVerifyDetectsChainChange(t *testing.T) {
	gw, p, _ := newGateway(t, sepolia, signingAccount(t))
	ctx := context.Background()

	_, err := gw.Connect(ctx)
	require.NoError(t, err)
	require.NoError(t, gw.Verify(ctx))

	p.chainID.Store(1)
	err = gw.Verify(ctx)
	assert.ErrorIs(t, err, gateway.ErrChainMismatch)
	assert.Nil(t, gw.Session())
}

func TestSignerReturnsOptsForSessionChain(t *testing.T) {
	account := signingAccount(t)
	gw, _, _ := newGateway(t, sepolia, account)
	ctx := context.Background()

	_, err := gw.Connect(ctx)
	require.NoError(t, err)

	opts, err := gw.Signer(ctx)
	require.NoError(t, err)
	assert.Equal(t, account.Address(), opts.From)

	tx := types.NewTx(&types.LegacyTx{Gas: 21000, GasPrice: big.NewInt(1)})
	signed, err := opts.Signer(opts.From, tx)
	require.NoError(t, err)
	assert.Equal(t, sepolia, signed.ChainId().Int64())
}

func TestSignerRechecksChain(t *testing.T) {
	gw, p, _ := newGateway(t, sepolia, signingAccount(t))
	ctx := context.Background()

	_, err := gw.Connect(ctx)
	require.NoError(t, err)

	p.chainID.Store(5)
	_, err = gw.Signer(ctx)
	assert.ErrorIs(t, err, gateway.ErrChainMismatch)
	assert.Nil(t, gw.Session())
}

func TestSignerWatchOnly(t *testing.T) {
	mgr := wallet.NewManager()
	w, err := mgr.AddWatchOnly("viewer", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)

	gw, _, _ := newGateway(t, sepolia, wallet.NewSigner(w, mgr.Keys()))
	ctx := context.Background()

	session, err := gw.Connect(ctx)
	require.NoError(t, err)
	assert.True(t, session.ReadOnly)

	_, err = gw.Signer(ctx)
	assert.ErrorIs(t, err, wallet.ErrWatchOnly)
}

func TestWaitMinedRequiresConnection(t *testing.T) {
	gw, _, _ := newGateway(t, sepolia, signingAccount(t))
	tx := types.NewTx(&types.LegacyTx{})

	_, err := gw.WaitMined(context.Background(), tx)
	assert.ErrorIs(t, err, gateway.ErrNotConnected)

	_, err = gw.Connect(context.Background())
	require.NoError(t, err)
	receipt, err := gw.WaitMined(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)
}
