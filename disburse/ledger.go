package disburse

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ReceiveHook lets an account decide whether to accept inbound value,
// the way a contract recipient can decline a plain transfer. A nil
// hook accepts everything.
type ReceiveHook func(from common.Address, amount *uint256.Int) error

// Ledger tracks account balances with EVM-width unsigned integers.
// All mutations go through a Txn so a multi-step operation either
// commits every step or none of them.
type Ledger struct {
	mu       sync.Mutex
	balances map[common.Address]*uint256.Int
	hooks    map[common.Address]ReceiveHook
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: map[common.Address]*uint256.Int{},
		hooks:    map[common.Address]ReceiveHook{},
	}
}

// Fund credits an account outside of any operation. It is the genesis
// path for tests and simulations.
func (l *Ledger) Fund(addr common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.balance(addr)
	updated, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return fmt.Errorf("funding %s: %w", addr.Hex(), ErrArithmeticOverflow)
	}
	l.balances[addr] = updated
	return nil
}

func (l *Ledger) SetReceiveHook(addr common.Address, hook ReceiveHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks[addr] = hook
}

func (l *Ledger) Balance(addr common.Address) *uint256.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(uint256.Int).Set(l.balance(addr))
}

// balance must be called with the lock held.
func (l *Ledger) balance(addr common.Address) *uint256.Int {
	if b, found := l.balances[addr]; found {
		return b
	}
	return uint256.NewInt(0)
}

// Begin opens a staged transaction. The ledger is locked until the
// txn is committed or discarded, which matches the strictly
// sequential execution model of one operation at a time.
func (l *Ledger) Begin() *Txn {
	l.mu.Lock()
	return &Txn{
		ledger: l,
		staged: map[common.Address]*uint256.Int{},
	}
}

// Txn stages balance changes against a private view. Nothing is
// visible to other readers until Commit. Use it like a badger txn:
//
//	txn := ledger.Begin()
//	defer txn.Discard()
//	...
//	return txn.Commit()
type Txn struct {
	ledger *Ledger
	staged map[common.Address]*uint256.Int
	done   bool
}

func (t *Txn) stagedBalance(addr common.Address) *uint256.Int {
	if b, found := t.staged[addr]; found {
		return b
	}
	b := new(uint256.Int).Set(t.ledger.balance(addr))
	t.staged[addr] = b
	return b
}

// Debit removes amount from addr's staged balance.
func (t *Txn) Debit(addr common.Address, amount *uint256.Int) error {
	balance := t.stagedBalance(addr)
	if balance.Lt(amount) {
		return fmt.Errorf(
			"account %s holds %s, needs %s: %w",
			addr.Hex(), balance.Dec(), amount.Dec(), ErrTransferFailed,
		)
	}
	balance.Sub(balance, amount)
	return nil
}

// Credit adds amount to addr's staged balance, consulting the
// account's receive hook first. A declined or overflowing credit
// fails the whole txn's step.
func (t *Txn) Credit(addr common.Address, from common.Address, amount *uint256.Int) error {
	if hook := t.ledger.hooks[addr]; hook != nil {
		if err := hook(from, amount); err != nil {
			return fmt.Errorf("account %s declined %s: %s: %w",
				addr.Hex(), amount.Dec(), err, ErrTransferFailed,
			)
		}
	}
	balance := t.stagedBalance(addr)
	updated, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return fmt.Errorf("crediting %s: %w", addr.Hex(), ErrArithmeticOverflow)
	}
	balance.Set(updated)
	return nil
}

// Commit applies every staged balance at once and releases the ledger.
func (t *Txn) Commit() error {
	if t.done {
		return fmt.Errorf("txn is already finished")
	}
	for addr, balance := range t.staged {
		t.ledger.balances[addr] = balance
	}
	t.done = true
	t.ledger.mu.Unlock()
	return nil
}

// Discard drops all staged changes. It is a no-op after Commit so it
// is safe to defer unconditionally.
func (t *Txn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.ledger.mu.Unlock()
}
