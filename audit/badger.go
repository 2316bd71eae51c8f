package audit

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/baselabs/baseutils/disburse"
)

const eventKeyPrefix = "audit/event/"

// BadgerSink persists committed audit events append-only in a local
// BadgerDB. Keys are the zero-padded event sequence numbers so a
// prefix scan returns the trail in commit order.
type BadgerSink struct {
	db *badger.DB
}

func NewBadgerSink(path string) (*BadgerSink, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening audit db at %s: %w", path, err)
	}
	return &BadgerSink{db: db}, nil
}

func eventKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", eventKeyPrefix, seq))
}

func (s *BadgerSink) Append(e disburse.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding audit event %d: %w", e.Seq, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := eventKey(e.Seq)
		// the trail is append-only, never overwrite a sequence number
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("audit event %d already recorded", e.Seq)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		return txn.Set(key, data)
	})
}

// LastSeq reports the highest persisted sequence number, 0 when the
// trail is empty. Writers continuing the trail seed their numbering
// from it so new events never collide with persisted ones.
func (s *BadgerSink) LastSeq() (uint64, error) {
	var last uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventKeyPrefix)
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		// seek past the largest possible key under the prefix
		it.Seek(append([]byte(eventKeyPrefix), 0xFF))
		if !it.Valid() {
			return nil
		}
		key := it.Item().Key()
		seq, err := strconv.ParseUint(string(key[len(eventKeyPrefix):]), 10, 64)
		if err != nil {
			return fmt.Errorf("malformed audit key %q: %w", key, err)
		}
		last = seq
		return nil
	})
	return last, err
}

// Events replays the whole persisted trail in sequence order.
func (s *BadgerSink) Events() ([]disburse.Event, error) {
	events := []disburse.Event{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e disburse.Event
				if err := json.Unmarshal(val, &e); err != nil {
					return fmt.Errorf("decoding audit event: %w", err)
				}
				events = append(events, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *BadgerSink) Close() error {
	return s.db.Close()
}
