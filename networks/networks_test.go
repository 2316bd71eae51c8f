package networks

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNetworkByNameAndAlias(t *testing.T) {
	n, err := GetNetwork("base")
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), n.GetChainID())
	assert.Equal(t, "ETH", n.GetNativeTokenSymbol())

	alias, err := GetNetwork("base-mainnet")
	require.NoError(t, err)
	assert.Equal(t, n.GetChainID(), alias.GetChainID())

	_, err = GetNetwork("nosuchchain")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestGetNetworkByID(t *testing.T) {
	n, err := GetNetworkByID(84532)
	require.NoError(t, err)
	assert.Equal(t, "base-sepolia", n.GetName())

	_, err = GetNetworkByID(999999)
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestSetNetwork(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, SetNetwork("base")) })

	require.NoError(t, SetNetwork("base-sepolia"))
	assert.Equal(t, uint64(84532), CurrentNetwork().GetChainID())
}

// a typoed network name must fail hard, not quietly select mainnet
func TestSetNetworkUnknownNameErrors(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, SetNetwork("base")) })

	require.NoError(t, SetNetwork("base-sepolia"))

	err := SetNetwork("base-sepolai")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
	assert.Contains(t, err.Error(), "base-sepolia")

	// the selection is untouched by the failed switch
	assert.Equal(t, uint64(84532), CurrentNetwork().GetChainID())
}

func TestBridgeAddresses(t *testing.T) {
	assert.Equal(t,
		common.HexToAddress("0x49048044D57e1C92A77f79988d21Fa8fAF74E97e"),
		BaseMainnet.GetBridgeContractAddress(),
	)
	// local devnets carry no bridge deployment
	assert.Equal(t, common.Address{}, Devnet.GetBridgeContractAddress())
}

func TestNewNetworkFromJSON(t *testing.T) {
	content := []byte(`{
		"name": "base-fork",
		"chain_id": 84530,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 2,
		"node_variable_name": "BASE_FORK_NODE",
		"default_nodes": {"fork": "http://127.0.0.1:9545"},
		"bridge_contract_address": "0x49048044d57e1c92a77f79988d21fa8faf74e97e"
	}`)
	n, err := NewNetworkFromJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "base-fork", n.GetName())
	assert.Equal(t, uint64(84530), n.GetChainID())

	_, err = NewNetworkFromJSON([]byte(`{`))
	assert.Error(t, err)
}
