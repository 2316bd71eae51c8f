package disburse

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accOne = common.HexToAddress("0x0000000000000000000000000000000000000101")
	accTwo = common.HexToAddress("0x0000000000000000000000000000000000000102")
)

func TestLedgerFundAndBalance(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, uint256.NewInt(0), l.Balance(accOne))

	require.NoError(t, l.Fund(accOne, uint256.NewInt(500)))
	require.NoError(t, l.Fund(accOne, uint256.NewInt(100)))
	assert.Equal(t, uint256.NewInt(600), l.Balance(accOne))
}

func TestLedgerFundOverflow(t *testing.T) {
	l := NewLedger()
	maxU256 := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1))
	require.NoError(t, l.Fund(accOne, maxU256))
	assert.ErrorIs(t, l.Fund(accOne, uint256.NewInt(1)), ErrArithmeticOverflow)
}

func TestTxnStagingIsInvisibleUntilCommit(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Fund(accOne, uint256.NewInt(100)))

	txn := l.Begin()
	require.NoError(t, txn.Debit(accOne, uint256.NewInt(40)))
	require.NoError(t, txn.Credit(accTwo, accOne, uint256.NewInt(40)))
	require.NoError(t, txn.Commit())

	assert.Equal(t, uint256.NewInt(60), l.Balance(accOne))
	assert.Equal(t, uint256.NewInt(40), l.Balance(accTwo))
}

func TestTxnDiscardRestoresEverything(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Fund(accOne, uint256.NewInt(100)))

	txn := l.Begin()
	require.NoError(t, txn.Debit(accOne, uint256.NewInt(40)))
	require.NoError(t, txn.Credit(accTwo, accOne, uint256.NewInt(40)))
	txn.Discard()

	assert.Equal(t, uint256.NewInt(100), l.Balance(accOne))
	assert.Equal(t, uint256.NewInt(0), l.Balance(accTwo))
}

func TestTxnDebitBeyondBalance(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Fund(accOne, uint256.NewInt(10)))

	txn := l.Begin()
	defer txn.Discard()
	assert.ErrorIs(t, txn.Debit(accOne, uint256.NewInt(11)), ErrTransferFailed)
}

func TestTxnCreditConsultsReceiveHook(t *testing.T) {
	l := NewLedger()
	declined := 0
	l.SetReceiveHook(accTwo, func(from common.Address, amount *uint256.Int) error {
		declined++
		return fmt.Errorf("closed for business")
	})

	txn := l.Begin()
	defer txn.Discard()
	err := txn.Credit(accTwo, accOne, uint256.NewInt(5))
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, 1, declined)
}

func TestTxnDoubleCommit(t *testing.T) {
	l := NewLedger()
	txn := l.Begin()
	require.NoError(t, txn.Commit())
	assert.Error(t, txn.Commit())
}
