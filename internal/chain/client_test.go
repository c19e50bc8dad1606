package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcMock creates a test HTTP server that serves a fixed JSON-RPC response
// per method. Any unknown method returns an RPC error.
func rpcMock(t *testing.T, responses map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			ID     json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if result, ok := responses[req.Method]; ok {
			json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
				"jsonrpc": "2.0",
				"id":      req.ID,
				"result":  result,
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialMock(t *testing.T, responses map[string]interface{}) *Client {
	t.Helper()
	srv := rpcMock(t, responses)
	c, err := Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestClientChainID(t *testing.T) {
	c := dialMock(t, map[string]interface{}{"eth_chainId": "0xaa36a7"})

	id, err := c.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11155111), id)
}

func TestClientChainIDError(t *testing.T) {
	c := dialMock(t, map[string]interface{}{})

	_, err := c.ChainID(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading chain id")
}

func TestClientPing(t *testing.T) {
	c := dialMock(t, map[string]interface{}{"eth_blockNumber": "0x10"})

	latency, block, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(16), block)
	assert.GreaterOrEqual(t, latency.Nanoseconds(), int64(0))
}

func TestClientBalance(t *testing.T) {
	c := dialMock(t, map[string]interface{}{"eth_getBalance": "0xde0b6b3a7640000"})

	bal, err := c.Balance(context.Background(), common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", bal.String())
}

func TestClientURLAndBackend(t *testing.T) {
	srv := rpcMock(t, nil)
	c, err := Dial(context.Background(), srv.URL)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, srv.URL, c.URL())
	assert.NotNil(t, c.Backend())
}

func TestWeiToETH(t *testing.T) {
	tests := []struct {
		wei  *big.Int
		want string
	}{
		{big.NewInt(0), "0"},
		{nil, "0"},
		{new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil), "0.01"},
		{new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil), "1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeiToETH(tt.wei))
	}
}

func TestETHToWei(t *testing.T) {
	wei, err := ETHToWei("0.01")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000", wei.String())

	wei, err = ETHToWei("1")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", wei.String())
}

func TestETHToWeiRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0.0000000000000000001"} {
		_, err := ETHToWei(in)
		assert.Error(t, err, "input %q", in)
	}
}
