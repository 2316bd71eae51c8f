package disburse

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	EventBatchTransfer = "batch_transfer"
	EventDeposit       = "deposit"
)

// Event is one immutable audit trail record. Seq is assigned by the
// vault and is strictly increasing across all committed operations.
type Event struct {
	Seq     uint64         `json:"seq"`
	Kind    string         `json:"kind"`
	Account common.Address `json:"account"`
	Amount  *uint256.Int   `json:"amount"`
	Time    time.Time      `json:"time"`
}

// Sink receives committed audit events in order. Sinks never see
// events from an aborted operation. A sink error is reported to the
// vault's error callback but does not undo the commit.
type Sink interface {
	Append(e Event) error
}

// MemorySink keeps the audit trail in memory, in append order.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]Event, len(s.events))
	copy(res, s.events)
	return res
}

func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}
