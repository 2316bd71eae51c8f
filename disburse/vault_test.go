package disburse

import (
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselabs/baseutils/networks"
)

var (
	vaultAddr  = common.HexToAddress("0x00000000000000000000000000000000baba0001")
	senderAddr = common.HexToAddress("0x00000000000000000000000000000000baba0002")
	recipientA = common.HexToAddress("0x00000000000000000000000000000000baba000a")
	recipientB = common.HexToAddress("0x00000000000000000000000000000000baba000b")
)

type fixedBlockSource struct {
	height uint64
	ts     time.Time
}

func (f fixedBlockSource) CurrentBlock() (uint64, time.Time, error) {
	return f.height, f.ts, nil
}

func wei(n uint64) *uint256.Int {
	return uint256.NewInt(n)
}

func newTestVault(t *testing.T, senderBalance uint64) (*Vault, *Ledger, *MemorySink) {
	t.Helper()
	ledger := NewLedger()
	require.NoError(t, ledger.Fund(senderAddr, wei(senderBalance)))
	sink := NewMemorySink()
	vault := NewVault(
		networks.BaseMainnet,
		vaultAddr,
		ledger,
		WithSinks(sink),
		WithBlockSource(fixedBlockSource{height: 1234, ts: time.Unix(1700000000, 0)}),
	)
	return vault, ledger, sink
}

func baseCtx(supplied uint64) DisbursementContext {
	return DisbursementContext{
		ChainID:       networks.BaseMainnet.GetChainID(),
		Sender:        senderAddr,
		SuppliedValue: wei(supplied),
	}
}

func TestBatchTransferHappyPath(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	err := vault.BatchTransfer(
		baseCtx(300),
		[]common.Address{recipientA, recipientB},
		[]*uint256.Int{wei(100), wei(200)},
	)
	require.NoError(t, err)

	assert.Equal(t, wei(100), ledger.Balance(recipientA))
	assert.Equal(t, wei(200), ledger.Balance(recipientB))
	assert.Equal(t, wei(700), ledger.Balance(senderAddr))
	// supplied value exactly covered the batch, nothing left on the vault
	assert.Equal(t, wei(0), vault.Balance())

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventBatchTransfer, events[0].Kind)
	assert.Equal(t, recipientA, events[0].Account)
	assert.Equal(t, wei(100), events[0].Amount)
	assert.Equal(t, recipientB, events[1].Account)
	assert.Equal(t, wei(200), events[1].Amount)
	assert.Less(t, events[0].Seq, events[1].Seq)
}

func TestBatchTransferKeepsRemainderOnVault(t *testing.T) {
	vault, ledger, _ := newTestVault(t, 1000)

	err := vault.BatchTransfer(
		baseCtx(500),
		[]common.Address{recipientA},
		[]*uint256.Int{wei(120)},
	)
	require.NoError(t, err)

	assert.Equal(t, wei(120), ledger.Balance(recipientA))
	assert.Equal(t, wei(380), vault.Balance())
	assert.Equal(t, wei(500), ledger.Balance(senderAddr))
}

func TestBatchTransferWrongNetwork(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	ctx := baseCtx(300)
	ctx.ChainID = 1

	err := vault.BatchTransfer(
		ctx,
		[]common.Address{recipientA},
		[]*uint256.Int{wei(100)},
	)
	assert.ErrorIs(t, err, ErrWrongNetwork)
	assert.Equal(t, wei(1000), ledger.Balance(senderAddr))
	assert.Zero(t, sink.Len())
}

func TestBatchTransferLengthMismatch(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	err := vault.BatchTransfer(
		baseCtx(300),
		[]common.Address{recipientA},
		[]*uint256.Int{wei(50), wei(60)},
	)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, wei(1000), ledger.Balance(senderAddr))
	assert.Zero(t, sink.Len())
}

func TestBatchTransferInsufficientFunds(t *testing.T) {
	// the sender's total balance could cover the batch; the check is
	// against the supplied value only
	vault, ledger, sink := newTestVault(t, 10000)

	err := vault.BatchTransfer(
		baseCtx(250),
		[]common.Address{recipientA, recipientB},
		[]*uint256.Int{wei(100), wei(200)},
	)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, wei(10000), ledger.Balance(senderAddr))
	assert.Equal(t, wei(0), ledger.Balance(recipientA))
	assert.Zero(t, sink.Len())
}

func TestBatchTransferInvalidRecipientAbortsWholeBatch(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	// the zero address sits after a valid transfer; atomicity demands
	// that the earlier transfer is rolled back too
	err := vault.BatchTransfer(
		baseCtx(300),
		[]common.Address{recipientA, {}},
		[]*uint256.Int{wei(100), wei(200)},
	)
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	assert.Equal(t, wei(1000), ledger.Balance(senderAddr))
	assert.Equal(t, wei(0), ledger.Balance(recipientA))
	assert.Equal(t, wei(0), vault.Balance())
	assert.Zero(t, sink.Len())
}

func TestBatchTransferDeclinedRecipientAbortsWholeBatch(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)
	ledger.SetReceiveHook(recipientB, func(from common.Address, amount *uint256.Int) error {
		return fmt.Errorf("no thanks")
	})

	err := vault.BatchTransfer(
		baseCtx(300),
		[]common.Address{recipientA, recipientB},
		[]*uint256.Int{wei(100), wei(200)},
	)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, wei(1000), ledger.Balance(senderAddr))
	assert.Equal(t, wei(0), ledger.Balance(recipientA))
	assert.Zero(t, sink.Len())
}

func TestBatchTransferSumOverflow(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	maxU256 := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1))
	ctx := baseCtx(0)
	ctx.SuppliedValue = maxU256

	err := vault.BatchTransfer(
		ctx,
		[]common.Address{recipientA, recipientB},
		[]*uint256.Int{maxU256, wei(1)},
	)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
	assert.NotErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, wei(1000), ledger.Balance(senderAddr))
	assert.Zero(t, sink.Len())
}

func TestBatchTransferSenderCannotCoverSuppliedValue(t *testing.T) {
	// environment-level failure outside the explicit taxonomy maps to
	// a failed transfer
	vault, _, sink := newTestVault(t, 100)

	err := vault.BatchTransfer(
		baseCtx(300),
		[]common.Address{recipientA},
		[]*uint256.Int{wei(100)},
	)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Zero(t, sink.Len())
}

func TestBatchTransferEmptyBatch(t *testing.T) {
	vault, ledger, sink := newTestVault(t, 1000)

	err := vault.BatchTransfer(baseCtx(50), nil, nil)
	require.NoError(t, err)
	// the whole supplied value is the remainder
	assert.Equal(t, wei(50), vault.Balance())
	assert.Equal(t, wei(950), ledger.Balance(senderAddr))
	assert.Zero(t, sink.Len())
}

func TestDeposit(t *testing.T) {
	vault, _, sink := newTestVault(t, 0)

	require.NoError(t, vault.Deposit(senderAddr, wei(42)))
	assert.Equal(t, wei(42), vault.Balance())

	require.NoError(t, vault.Deposit(recipientA, wei(8)))
	assert.Equal(t, wei(50), vault.Balance())

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventDeposit, events[0].Kind)
	assert.Equal(t, senderAddr, events[0].Account)
	assert.Equal(t, wei(42), events[0].Amount)
	assert.Equal(t, recipientA, events[1].Account)
}

func TestSinkErrorDoesNotUndoCommit(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Fund(senderAddr, wei(1000)))

	var reported []error
	vault := NewVault(
		networks.BaseMainnet,
		vaultAddr,
		ledger,
		WithSinks(failingSink{}),
		WithSinkErrorHandler(func(e Event, err error) {
			reported = append(reported, err)
		}),
	)

	err := vault.BatchTransfer(
		baseCtx(100),
		[]common.Address{recipientA},
		[]*uint256.Int{wei(100)},
	)
	require.NoError(t, err)
	assert.Equal(t, wei(100), ledger.Balance(recipientA))
	assert.Len(t, reported, 1)
}

type failingSink struct{}

func (failingSink) Append(Event) error {
	return fmt.Errorf("sink is down")
}

func TestNetworkInfo(t *testing.T) {
	vault, _, _ := newTestVault(t, 0)

	info, err := vault.NetworkInfo()
	require.NoError(t, err)
	assert.Equal(t, uint64(8453), info.ChainID)
	assert.Equal(t, networks.BaseMainnet.GetBridgeContractAddress(), info.BridgeAddress)
	assert.Equal(t, uint64(1234), info.BlockNumber)
	assert.Equal(t, time.Unix(1700000000, 0), info.BlockTime)
}

func TestCalculateGasCost(t *testing.T) {
	cost, err := CalculateGasCost(wei(21000), wei(3000000000))
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(63000000000000), cost)

	maxU256 := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1))
	_, err = CalculateGasCost(maxU256, wei(2))
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}
