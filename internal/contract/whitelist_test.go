package contract_test

import (
	"context"
	"testing"

	"github.com/Mohsinsiddi/devmint/internal/contract"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitelistFacade(t *testing.T) {
	kind, _ := contract.GetBuiltin(contract.KindWhitelist)
	backend := newFakeBackend(kind.MustParse())
	backend.set("whitelistedAddresses", true)
	backend.set("numAddressesWhitelisted", uint8(4))
	backend.set("maxWhitelistedAddresses", uint8(10))

	addr := common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	wl, err := contract.BindWhitelist(addr, backend)
	require.NoError(t, err)
	assert.Equal(t, addr, wl.Address())

	ctx := context.Background()
	joined, err := wl.Contains(ctx, ownerAddress)
	require.NoError(t, err)
	assert.True(t, joined)

	count, err := wl.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(4), count)

	capacity, err := wl.Capacity(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(10), capacity)

	// The address argument is ABI-encoded after the selector.
	last := backend.calls[0]
	assert.Equal(t, contract.Selector("whitelistedAddresses(address)"), "0x"+common.Bytes2Hex(last.Data[:4]))
	assert.Equal(t, ownerAddress, common.BytesToAddress(last.Data[4:36]))

	tx, err := wl.Join(legacyOpts())
	require.NoError(t, err)
	assert.Equal(t, contract.Selector("addAddressToWhitelist()"), "0x"+common.Bytes2Hex(tx.Data()))
}
