package disburse

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/baselabs/baseutils/networks"
)

// BlockSource reports the chain height and timestamp the operation
// observes. Live deployments back it with a node reader; tests use a
// fixed fake.
type BlockSource interface {
	CurrentBlock() (height uint64, timestamp time.Time, err error)
}

// DisbursementContext carries what the caller attaches to one
// operation: the chain the caller believes it is executing on, the
// caller account and the funds supplied to cover the batch. The
// supplied value is owned by the operation for its duration and is
// returned in full when the operation aborts.
type DisbursementContext struct {
	ChainID       uint64
	Sender        common.Address
	SuppliedValue *uint256.Int
}

type NetworkInfo struct {
	ChainID       uint64
	BridgeAddress common.Address
	BlockNumber   uint64
	BlockTime     time.Time
}

// Vault reimplements the BaseUtils batch disbursement semantics over
// a staged-commit ledger: validate everything first, stage transfers
// and audit events, then commit all of it or none of it.
type Vault struct {
	network networks.Network
	address common.Address
	ledger  *Ledger
	blocks  BlockSource
	sinks   []Sink

	pubMu sync.Mutex
	seq   uint64
	now   func() time.Time

	// called when a sink rejects a committed event; never fails the
	// operation itself
	onSinkError func(Event, error)
}

type VaultOption func(*Vault)

func WithSinks(sinks ...Sink) VaultOption {
	return func(v *Vault) {
		v.sinks = append(v.sinks, sinks...)
	}
}

func WithBlockSource(src BlockSource) VaultOption {
	return func(v *Vault) {
		v.blocks = src
	}
}

func WithClock(now func() time.Time) VaultOption {
	return func(v *Vault) {
		v.now = now
	}
}

// WithInitialSeq starts event numbering after seq, so a vault can
// continue a previously persisted trail instead of colliding with it.
func WithInitialSeq(seq uint64) VaultOption {
	return func(v *Vault) {
		v.seq = seq
	}
}

func WithSinkErrorHandler(handler func(Event, error)) VaultOption {
	return func(v *Vault) {
		v.onSinkError = handler
	}
}

func NewVault(
	network networks.Network,
	address common.Address,
	ledger *Ledger,
	options ...VaultOption,
) *Vault {
	v := &Vault{
		network: network,
		address: address,
		ledger:  ledger,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(v)
	}
	return v
}

func (v *Vault) Address() common.Address {
	return v.address
}

// Balance reports the vault account's current held balance.
func (v *Vault) Balance() *uint256.Int {
	return v.ledger.Balance(v.address)
}

// NetworkInfo reports the designated chain id, the bridge contract
// address and the current block as observed by the block source.
func (v *Vault) NetworkInfo() (NetworkInfo, error) {
	info := NetworkInfo{
		ChainID:       v.network.GetChainID(),
		BridgeAddress: v.network.GetBridgeContractAddress(),
	}
	if v.blocks == nil {
		return info, nil
	}
	height, ts, err := v.blocks.CurrentBlock()
	if err != nil {
		return info, fmt.Errorf("reading current block: %w", err)
	}
	info.BlockNumber = height
	info.BlockTime = ts
	return info, nil
}

// CalculateGasCost is the pure units * price computation with
// overflow trapping.
func CalculateGasCost(unitsUsed, unitPrice *uint256.Int) (*uint256.Int, error) {
	cost, overflow := new(uint256.Int).MulOverflow(unitsUsed, unitPrice)
	if overflow {
		return nil, fmt.Errorf("%s * %s: %w", unitsUsed.Dec(), unitPrice.Dec(), ErrArithmeticOverflow)
	}
	return cost, nil
}

// sumAmounts computes the aggregate of the requested amounts in full
// before any transfer, trapping on overflow.
func sumAmounts(amounts []*uint256.Int) (*uint256.Int, error) {
	sum := uint256.NewInt(0)
	for i, amount := range amounts {
		updated, overflow := new(uint256.Int).AddOverflow(sum, amount)
		if overflow {
			return nil, fmt.Errorf("summing amounts at index %d: %w", i, ErrArithmeticOverflow)
		}
		sum = updated
	}
	return sum, nil
}

// BatchTransfer sends amounts[i] to recipients[i] for every i, in
// order, all-or-nothing.
//
// Preconditions are validated before any side effect: the context
// must carry the designated chain id, the two sequences must have
// equal length and the aggregate amount must not exceed the supplied
// value. During execution a zero-address recipient or a declined
// transfer aborts the whole batch; no balance moves and no audit
// events are observable on any failure. On success the remainder
// (supplied value minus the aggregate) stays on the vault account and
// one batch_transfer event per recipient reaches the sinks in input
// order.
func (v *Vault) BatchTransfer(
	ctx DisbursementContext,
	recipients []common.Address,
	amounts []*uint256.Int,
) error {
	if ctx.ChainID != v.network.GetChainID() {
		return fmt.Errorf(
			"call targets chain %d, vault is on chain %d: %w",
			ctx.ChainID, v.network.GetChainID(), ErrWrongNetwork,
		)
	}
	if len(recipients) != len(amounts) {
		return fmt.Errorf(
			"%d recipients, %d amounts: %w",
			len(recipients), len(amounts), ErrLengthMismatch,
		)
	}
	sum, err := sumAmounts(amounts)
	if err != nil {
		return err
	}
	supplied := ctx.SuppliedValue
	if supplied == nil {
		supplied = uint256.NewInt(0)
	}
	if sum.Gt(supplied) {
		return fmt.Errorf(
			"requested %s, supplied %s: %w",
			sum.Dec(), supplied.Dec(), ErrInsufficientFunds,
		)
	}

	txn := v.ledger.Begin()
	defer txn.Discard()

	// take exclusive ownership of the supplied value for the whole
	// operation; Discard hands it back untouched on any abort
	if err := txn.Debit(ctx.Sender, supplied); err != nil {
		return err
	}

	pending := make([]Event, 0, len(recipients))
	for i, recipient := range recipients {
		if recipient == (common.Address{}) {
			return fmt.Errorf("recipient %d: %w", i, ErrInvalidRecipient)
		}
		if err := txn.Credit(recipient, ctx.Sender, amounts[i]); err != nil {
			return fmt.Errorf("recipient %d: %w", i, err)
		}
		pending = append(pending, Event{
			Kind:    EventBatchTransfer,
			Account: recipient,
			Amount:  new(uint256.Int).Set(amounts[i]),
			Time:    v.now(),
		})
	}

	// the remainder stays on the vault account
	remainder := new(uint256.Int).Sub(supplied, sum)
	if err := txn.Credit(v.address, ctx.Sender, remainder); err != nil {
		return err
	}

	if err := txn.Commit(); err != nil {
		return err
	}
	v.publish(pending)
	return nil
}

// Deposit is the passive receive path: any direct inbound value is
// accepted unconditionally, credited to the vault and recorded as one
// deposit audit event.
func (v *Vault) Deposit(sender common.Address, amount *uint256.Int) error {
	txn := v.ledger.Begin()
	defer txn.Discard()

	if err := txn.Credit(v.address, sender, amount); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return err
	}
	v.publish([]Event{{
		Kind:    EventDeposit,
		Account: sender,
		Amount:  new(uint256.Int).Set(amount),
		Time:    v.now(),
	}})
	return nil
}

// publish assigns sequence numbers and hands committed events to the
// sinks. The operation is already committed at this point so sink
// errors are only surfaced through the error handler.
func (v *Vault) publish(events []Event) {
	v.pubMu.Lock()
	defer v.pubMu.Unlock()
	for _, e := range events {
		v.seq++
		e.Seq = v.seq
		for _, sink := range v.sinks {
			if err := sink.Append(e); err != nil && v.onSinkError != nil {
				v.onSinkError(e, err)
			}
		}
	}
}
