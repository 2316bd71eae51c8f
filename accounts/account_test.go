package accounts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// well-known hardhat/anvil dev key 0, never holds real funds
const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
const devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func TestNewPrivateKeyAccount(t *testing.T) {
	account, err := NewPrivateKeyAccount(devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, account.AddressHex())

	// 0x prefix form resolves to the same wallet
	prefixed, err := NewPrivateKeyAccount("0x" + devKey)
	require.NoError(t, err)
	assert.Equal(t, account.Address(), prefixed.Address())

	_, err = NewPrivateKeyAccount("not-a-key")
	assert.Error(t, err)
}

func TestAccountSignTx(t *testing.T) {
	account, err := NewPrivateKeyAccount(devKey)
	require.NoError(t, err)

	chainID := big.NewInt(31337)
	tx := types.NewTransaction(
		0,
		common.HexToAddress("0x0000000000000000000000000000000000000abc"),
		big.NewInt(1000),
		21000,
		big.NewInt(1_000_000_000),
		nil,
	)
	signed, err := account.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, account.Address(), sender)
}
