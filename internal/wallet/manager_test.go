package wallet_test

import (
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hardhat's first dev account.
const (
	devKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestAddWatchOnlyWallet(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())

	w, err := mgr.AddWatchOnly("viewer", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address, "address is checksummed")
	assert.Equal(t, wallet.TypeWatchOnly, w.Type)
	assert.False(t, w.CanSign())
	assert.NotEmpty(t, w.CreatedAt)
}

func TestAddWatchOnlyRejectsBadAddress(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.AddWatchOnly("bad", "0x1234")
	assert.ErrorIs(t, err, wallet.ErrInvalidAddress)
}

func TestAddDuplicateWalletErrors(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.AddWatchOnly("dup", devAddress)
	require.NoError(t, err)

	_, err = mgr.AddWatchOnly("dup", devAddress)
	assert.ErrorIs(t, err, wallet.ErrWalletExists)

	_, err = mgr.AddWithKey("dup", devKey)
	assert.ErrorIs(t, err, wallet.ErrWalletExists)
}

func TestAddSigningWallet(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithKeystore(ks))

	w, err := mgr.AddWithKey("deployer", devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address)
	assert.Equal(t, wallet.TypeSigning, w.Type)
	assert.Equal(t, "devmint.deployer", w.KeyRef)

	stored, err := ks.Retrieve(w.KeyRef)
	require.NoError(t, err)
	assert.Equal(t, devKey[2:], stored)
}

func TestAddSigningWalletInvalidKey(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.AddWithKey("bad", "not-a-key")
	assert.ErrorIs(t, err, wallet.ErrInvalidKey)
}

func TestGenerateWallet(t *testing.T) {
	mgr := wallet.NewManager()

	w, err := mgr.Generate("fresh")
	require.NoError(t, err)
	assert.True(t, w.CanSign())
	assert.Len(t, w.Address, 42)
}

func TestGetMissingWallet(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.Get("ghost")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestRemoveWalletDeletesKey(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithKeystore(ks))

	w, err := mgr.AddWithKey("temp", devKey)
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("temp"))

	_, err = mgr.Get("temp")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
	_, err = ks.Retrieve(w.KeyRef)
	assert.Error(t, err)

	assert.ErrorIs(t, mgr.Remove("temp"), wallet.ErrWalletNotFound)
}

func TestListSortedByName(t *testing.T) {
	mgr := wallet.NewManager()
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := mgr.Generate(name)
		require.NoError(t, err)
	}

	var names []string
	for _, w := range mgr.List() {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names)
}

func TestDefaultWallet(t *testing.T) {
	mgr := wallet.NewManager()
	assert.Nil(t, mgr.Default())

	_, err := mgr.Generate("only")
	require.NoError(t, err)
	assert.Equal(t, "only", mgr.Default().Name, "single wallet is the implicit default")

	_, err = mgr.Generate("second")
	require.NoError(t, err)
	assert.Nil(t, mgr.Default())

	require.NoError(t, mgr.SetDefault("second"))
	assert.Equal(t, "second", mgr.Default().Name)

	assert.ErrorIs(t, mgr.SetDefault("ghost"), wallet.ErrWalletNotFound)
}

func TestResolve(t *testing.T) {
	mgr := wallet.NewManager()

	_, err := mgr.Resolve("")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)

	_, err = mgr.AddWithKey("main", devKey)
	require.NoError(t, err)

	w, err := mgr.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "main", w.Name)

	w, err = mgr.Resolve("main")
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address)
}

func TestJSONStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	ks := wallet.NewInMemoryKeystore()

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeystore(ks))
	_, err := mgr.AddWithKey("main", devKey)
	require.NoError(t, err)
	require.NoError(t, mgr.SetDefault("main"))

	reloaded := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)), wallet.WithKeystore(ks))
	w, err := reloaded.Get("main")
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address)
	assert.True(t, w.IsDefault)
	assert.Equal(t, "devmint.main", w.KeyRef)
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := wallet.NewJSONStore(filepath.Join(t.TempDir(), "none.json"))

	wallets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
