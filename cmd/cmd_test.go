package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/devmint/internal/config"
	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/Mohsinsiddi/devmint/internal/gateway"
	"github.com/Mohsinsiddi/devmint/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey      = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	otherAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// execute runs the root command against a fresh config dir and returns it.
func execute(t *testing.T, dir string, args ...string) error {
	t.Helper()

	keys := wallet.NewInMemoryKeystore()
	openKeystore = func(string) wallet.KeyStore { return keys }
	networkFlag, walletFlag, contractFlag = "", "", ""
	walletKeyFlag, whitelistFlag, whitelistAddrArg = "", "", ""
	yesFlag, verbose = false, false
	deployArtifact, deployEnvFile, deployMax = "", ".env", 0
	deployMetadataURL, deployWhitelist = "", ""

	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	return rootCmd.Execute()
}

func loadConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	c, err := config.Load(dir)
	require.NoError(t, err)
	return c
}

func TestConfigSetNetworkSetsExpectedChain(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "config", "set", "network", "hardhat"))

	c := loadConfig(t, dir)
	assert.Equal(t, "hardhat", c.Network)
	assert.Equal(t, config.ChainIDHardhat, c.ExpectedChainID)
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	err := execute(t, t.TempDir(), "config", "set", "colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestSetConfigValue(t *testing.T) {
	c := loadConfig(t, t.TempDir())

	require.NoError(t, setConfigValue(c, "mint_price", "0.05"))
	assert.Equal(t, "0.05", c.MintPrice)
	assert.Error(t, setConfigValue(c, "mint_price", "lots"))
	assert.Equal(t, "0.05", c.MintPrice)

	require.NoError(t, setConfigValue(c, "poll_interval", "2"))
	assert.Equal(t, 2, c.PollInterval)
	assert.Error(t, setConfigValue(c, "poll_interval", "0"))

	assert.Error(t, setConfigValue(c, "max_whitelisted", "300"))
	require.NoError(t, setConfigValue(c, "max_whitelisted", "12"))
	assert.Equal(t, 12, c.MaxWhitelisted)

	require.NoError(t, setConfigValue(c, "contract_address", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"))
	assert.Equal(t, testAddress, c.ContractAddress)
	assert.Error(t, setConfigValue(c, "contract_address", "0x123"))
	assert.Equal(t, testAddress, c.ContractAddress)

	assert.Error(t, setConfigValue(c, "rpc_algorithm", "random"))
	require.NoError(t, setConfigValue(c, "rpc_algorithm", "failover"))
	assert.Equal(t, "failover", c.RPCAlgorithm)

	assert.Error(t, setConfigValue(c, "network", "narnia"))
}

func TestNetworkFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "--network", "hardhat", "config", "list"))
	assert.Equal(t, "hardhat", cfg.Network)
	assert.Equal(t, config.ChainIDHardhat, cfg.ExpectedChainID)

	// Not persisted.
	assert.Equal(t, "sepolia", loadConfig(t, dir).Network)
}

func TestUnknownNetworkFlag(t *testing.T) {
	err := execute(t, t.TempDir(), "--network", "narnia", "config", "list")
	assert.Error(t, err)
}

func TestWalletAddAndUse(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "wallet", "add", "bob", otherAddress))
	require.NoError(t, execute(t, dir, "wallet", "use", "bob"))

	assert.Equal(t, "bob", loadConfig(t, dir).DefaultWallet)
	assert.FileExists(t, filepath.Join(dir, "wallets.json"))

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(filepath.Join(dir, "wallets.json"))))
	w, err := mgr.Get("bob")
	require.NoError(t, err)
	assert.Equal(t, otherAddress, w.Address)
	assert.False(t, w.CanSign())
	assert.True(t, w.IsDefault)
}

func TestWalletAddWithKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "wallet", "add", "alice", "--key", "0x"+testKey))

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(filepath.Join(dir, "wallets.json"))))
	w, err := mgr.Get("alice")
	require.NoError(t, err)
	assert.Equal(t, testAddress, w.Address)
	assert.True(t, w.CanSign())
}

func TestWalletAddNeedsAddressOrKey(t *testing.T) {
	err := execute(t, t.TempDir(), "wallet", "add", "carol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address required")
}

func TestWalletRemoveClearsDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "wallet", "add", "bob", otherAddress))
	require.NoError(t, execute(t, dir, "wallet", "use", "bob"))
	require.NoError(t, execute(t, dir, "--yes", "wallet", "remove", "bob"))

	assert.Empty(t, loadConfig(t, dir).DefaultWallet)
	err := execute(t, dir, "--yes", "wallet", "remove", "bob")
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestContractUsePinsAddress(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "contract", "use", "cryptodevs", "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"))
	require.NoError(t, execute(t, dir, "contract", "use", "whitelist", otherAddress))

	c := loadConfig(t, dir)
	assert.Equal(t, testAddress, c.ContractAddress)
	assert.Equal(t, otherAddress, c.WhitelistAddress)

	assert.Error(t, execute(t, dir, "contract", "use", "erc20", otherAddress))
	assert.Error(t, execute(t, dir, "contract", "use", "whitelist", "nope"))
}

func TestContractABI(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, execute(t, dir, "contract", "abi"))
	assert.NoError(t, execute(t, dir, "contract", "abi", "whitelist"))
	assert.Error(t, execute(t, dir, "contract", "abi", "erc20"))
}

func TestResolveContractOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "config", "list"))

	reg := contract.NewRegistry(cfg.ContractsPath())
	reg.Add(&contract.Entry{Name: contract.KindCryptoDevs, Network: "sepolia", Address: otherAddress, Kind: contract.KindCryptoDevs})
	require.NoError(t, reg.Save())

	got, err := resolveContract("", "", contract.KindCryptoDevs)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(otherAddress), got)

	got, err = resolveContract("", testAddress, contract.KindCryptoDevs)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testAddress), got)

	got, err = resolveContract(otherAddress, testAddress, contract.KindCryptoDevs)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(otherAddress), got)

	_, err = resolveContract("", "", contract.KindWhitelist)
	assert.ErrorIs(t, err, contract.ErrContractNotFound)

	_, err = resolveContract("0x12", "", contract.KindWhitelist)
	assert.Error(t, err)
}

func TestRPCAddListRemove(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "rpc", "add", "hardhat", "http://localhost:9545"))
	assert.Equal(t, []string{"http://localhost:9545"}, loadConfig(t, dir).GetRPCs("hardhat"))

	assert.Error(t, execute(t, dir, "rpc", "add", "hardhat", "http://localhost:9545"))
	assert.NoError(t, execute(t, dir, "rpc", "list", "hardhat"))

	require.NoError(t, execute(t, dir, "rpc", "remove", "hardhat", "http://localhost:9545"))
	assert.Empty(t, loadConfig(t, dir).GetRPCs("hardhat"))
}

func TestRPCAlgorithmSet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, execute(t, dir, "rpc", "algorithm", "set", "round-robin"))
	assert.Equal(t, "round-robin", loadConfig(t, dir).RPCAlgorithm)
	assert.Error(t, execute(t, dir, "rpc", "algorithm", "set", "random"))
}

func TestDeployWhitelistRejectsCapacity(t *testing.T) {
	err := execute(t, t.TempDir(), "deploy", "whitelist", "--max", "300")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max")
}

func TestDeployMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	err := execute(t, dir, "deploy", "whitelist", "--max", "10", "--artifact", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestErrorLineHintsNetwork(t *testing.T) {
	line := errorLine(&gateway.ChainMismatchError{Got: 1, Want: config.ChainIDSepolia})
	assert.Contains(t, line, "Change the network to Sepolia")

	assert.NotContains(t, errorLine(errors.New("boom")), "Change the network")
}
