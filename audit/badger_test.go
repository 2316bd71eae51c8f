package audit

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baselabs/baseutils/disburse"
	"github.com/baselabs/baseutils/networks"
)

func newTestSink(t *testing.T) *BadgerSink {
	t.Helper()
	sink, err := NewBadgerSink(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sink.Close() })
	return sink
}

func testEvent(seq uint64, kind string, amount uint64) disburse.Event {
	return disburse.Event{
		Seq:     seq,
		Kind:    kind,
		Account: common.HexToAddress("0x0000000000000000000000000000000000000abc"),
		Amount:  uint256.NewInt(amount),
		Time:    time.Unix(1700000000, 0).UTC(),
	}
}

func TestBadgerSinkAppendAndReplay(t *testing.T) {
	sink := newTestSink(t)

	require.NoError(t, sink.Append(testEvent(1, disburse.EventDeposit, 42)))
	require.NoError(t, sink.Append(testEvent(2, disburse.EventBatchTransfer, 100)))
	require.NoError(t, sink.Append(testEvent(3, disburse.EventBatchTransfer, 200)))

	events, err := sink.Events()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, uint64(1), events[0].Seq)
	assert.Equal(t, disburse.EventDeposit, events[0].Kind)
	assert.Equal(t, uint256.NewInt(42), events[0].Amount)
	assert.Equal(t, uint64(3), events[2].Seq)
	assert.Equal(t, uint256.NewInt(200), events[2].Amount)
}

func TestBadgerSinkRejectsOverwrite(t *testing.T) {
	sink := newTestSink(t)

	require.NoError(t, sink.Append(testEvent(7, disburse.EventDeposit, 1)))
	assert.Error(t, sink.Append(testEvent(7, disburse.EventDeposit, 2)))

	events, err := sink.Events()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint256.NewInt(1), events[0].Amount)
}

func TestBadgerSinkEmptyTrail(t *testing.T) {
	sink := newTestSink(t)
	events, err := sink.Events()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestBadgerSinkLastSeq(t *testing.T) {
	sink := newTestSink(t)

	last, err := sink.LastSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), last)

	require.NoError(t, sink.Append(testEvent(3, disburse.EventDeposit, 1)))
	require.NoError(t, sink.Append(testEvent(7, disburse.EventBatchTransfer, 2)))

	last, err = sink.LastSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), last)
}

// A fresh vault per process run numbers events from 1 again. Seeding
// it from the sink's high-water mark keeps the persisted trail intact
// across runs instead of colliding on reused sequence numbers.
func TestBadgerSinkTrailSpansVaultRuns(t *testing.T) {
	sink := newTestSink(t)
	depositor := common.HexToAddress("0x0000000000000000000000000000000000000d01")

	runDeposit := func() {
		last, err := sink.LastSeq()
		require.NoError(t, err)
		vault := disburse.NewVault(
			networks.Devnet,
			common.HexToAddress("0x0000000000000000000000000000000000000c01"),
			disburse.NewLedger(),
			disburse.WithSinks(sink),
			disburse.WithInitialSeq(last),
		)
		require.NoError(t, vault.Deposit(depositor, uint256.NewInt(5)))
	}

	runDeposit()
	runDeposit()

	events, err := sink.Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint64(1), events[0].Seq)
	assert.Equal(t, uint64(2), events[1].Seq)
}
